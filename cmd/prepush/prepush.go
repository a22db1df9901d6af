package prepush

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	cblog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/prepush/cmd/prepush/version"
	"github.com/yaklabco/prepush/config"
	"github.com/yaklabco/prepush/internal/hooks"
	"github.com/yaklabco/prepush/internal/log"
	"github.com/yaklabco/prepush/pkg/ui"
)

const (
	shortDescription = "Install a Spotless pre-push hook into a git repository."
)

// ErrInstallFailed is returned when the hook could not be written.
var ErrInstallFailed = errors.New("pre-push hook installation failed")

type rootCmdOptions struct {
	fs       afero.Fs
	lookPath hooks.LookPathFunc
}

type Option func(*rootCmdOptions)

// Test-only hooks into the filesystem and PATH lookup.
func withFs(fs afero.Fs) Option {
	return func(opts *rootCmdOptions) {
		opts.fs = fs
	}
}

func withLookPath(fn hooks.LookPathFunc) Option {
	return func(opts *rootCmdOptions) {
		opts.lookPath = fn
	}
}

// globalParams are the flags shared by every subcommand.
type globalParams struct {
	Debug   bool
	Verbose bool
	Dir     string
}

// executorParams are the flags selecting and overriding the executor.
type executorParams struct {
	Executor     string
	Command      string
	CheckCommand string
	ApplyCommand string
}

func NewRootCmd(ctx context.Context, opts ...Option) *cobra.Command {
	rootCmdOpts := &rootCmdOptions{
		fs:       afero.NewOsFs(),
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(rootCmdOpts)
	}

	var params globalParams
	rootCmd := &cobra.Command{
		Use:   "prepush",
		Short: shortDescription,
		Long: shortDescription + "\n\n" +
			"The hook runs the Spotless check through Gradle, Maven or a custom executor before every push.\n" +
			"On violations it applies the fixes and aborts the push so the result can be committed.",
		Example: `	# Install using the detected build tool
	prepush install

	# Install for a Maven project elsewhere
	prepush install -C ../service --executor maven

	# Show the block that would be appended
	prepush render

	# Check whether the hook is installed
	prepush status`,
		Version:       version.OverallVersionStringColorized(ctx),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&params.Debug, "debug", "d", false, "turn on debug messages")
	rootCmd.PersistentFlags().BoolVarP(&params.Verbose, "verbose", "v", false, "add timestamps and callers to log output")
	rootCmd.PersistentFlags().StringVarP(&params.Dir, "dir", "C", "", "directory inside the repository (default: current directory)")

	rootCmd.AddCommand(
		newInstallCmd(&params, rootCmdOpts),
		newRenderCmd(&params, rootCmdOpts),
		newStatusCmd(&params, rootCmdOpts),
		newConfigCmd(&params),
	)

	return rootCmd
}

// ExecuteWithFang runs the root Cobra command with Fang-specific options.
func ExecuteWithFang(ctx context.Context, rootCmd *cobra.Command) error {
	//nolint:wrapcheck // top-level error from cobra, wrapping not needed
	return fang.Execute(
		ctx, rootCmd, fang.WithVersion(rootCmd.Version), fang.WithoutManpage())
}

func addExecutorFlags(cmd *cobra.Command, params *executorParams) {
	cmd.Flags().StringVarP(&params.Executor, "executor", "e", "", "build tool: auto, gradle, maven or custom")
	cmd.Flags().StringVar(&params.Command, "command", "", "executable for the custom executor")
	cmd.Flags().StringVar(&params.CheckCommand, "check", "", "command that checks formatting")
	cmd.Flags().StringVar(&params.ApplyCommand, "apply", "", "command that fixes formatting")
}

// session is the state every subcommand derives from its flags.
type session struct {
	root   string
	cfg    *config.Config
	logger *cblog.Logger
}

// newSession resolves the repository root, loads configuration for it, applies
// flag overrides and sets up logging.
func newSession(cmd *cobra.Command, params *globalParams, execParams *executorParams) (*session, error) {
	root, err := hooks.ResolveRoot(cmd.Context(), params.Dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(&config.LoadOptions{
		ProjectDir: root,
		Stderr:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyFlagOverrides(cmd, cfg, params, execParams)
	if result := cfg.Validate(); result.HasErrors() {
		return nil, errors.New(result.ErrorMessage())
	}

	logger := log.SetupPrettyLogger(cmd.ErrOrStderr(), log.Options{
		Debug:   cfg.Debug,
		Verbose: cfg.Verbose,
	})

	return &session{root: root, cfg: cfg, logger: logger}, nil
}

// applyFlagOverrides gives explicitly set flags precedence over configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, params *globalParams, execParams *executorParams) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = params.Debug
	}
	if flags.Changed("verbose") {
		cfg.Verbose = params.Verbose
	}
	if execParams == nil {
		return
	}
	if flags.Changed("executor") {
		cfg.Executor = execParams.Executor
	}
	if flags.Changed("command") {
		cfg.Command = execParams.Command
	}
	if flags.Changed("check") {
		cfg.CheckCommand = execParams.CheckCommand
	}
	if flags.Changed("apply") {
		cfg.ApplyCommand = execParams.ApplyCommand
	}
}

func (s *session) executor(opts *rootCmdOptions) (hooks.Executor, error) {
	params, err := s.cfg.ExecutorParams(s.root)
	if err != nil {
		return nil, err
	}
	params.Logger = s.logger
	params.Fs = opts.fs
	params.LookPath = opts.lookPath

	return hooks.NewExecutor(params)
}

func newInstallCmd(params *globalParams, opts *rootCmdOptions) *cobra.Command {
	var execParams executorParams
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Append the Spotless block to .git/hooks/pre-push",
		Long: "Append the Spotless block to .git/hooks/pre-push, creating the hook if needed.\n\n" +
			"Existing hook content is preserved. A hook that already carries the block is left unchanged,\n" +
			"even if it was installed with different commands; remove the old block to reinstall.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, params, &execParams)
			if err != nil {
				return err
			}

			executor, err := sess.executor(opts)
			if err != nil {
				return err
			}

			installer := hooks.NewInstaller(sess.logger, sess.root, executor, hooks.WithFs(opts.fs))
			outcome := installer.Install()

			printOutcome(cmd.OutOrStdout(), outcome, installer.HookPath())
			if outcome.Failed() {
				return ErrInstallFailed
			}
			return nil
		},
	}
	addExecutorFlags(cmd, &execParams)
	return cmd
}

func newRenderCmd(params *globalParams, opts *rootCmdOptions) *cobra.Command {
	var execParams executorParams
	var pretty bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the block install would append",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, params, &execParams)
			if err != nil {
				return err
			}

			executor, err := sess.executor(opts)
			if err != nil {
				return err
			}

			block := hooks.BlockFor(executor)
			if !pretty {
				_, err = io.WriteString(cmd.OutOrStdout(), block)
				return err
			}

			titleStyle, blockStyle := ui.GetBlockStyles()
			_, err = lipgloss.Fprintln(cmd.OutOrStdout(),
				titleStyle.Render(string(executor.Kind())+" pre-push block"),
				"\n"+blockStyle.Render(block))
			return err
		},
	}
	addExecutorFlags(cmd, &execParams)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the block inside a styled frame")
	return cmd
}

func newStatusCmd(params *globalParams, opts *rootCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the pre-push hook carries the Spotless block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, params, nil)
			if err != nil {
				return err
			}

			installer := hooks.NewInstaller(sess.logger, sess.root, nil, hooks.WithFs(opts.fs))
			installed, err := installer.Status()
			if err != nil {
				return fmt.Errorf("reading %s: %w", installer.HookPath(), err)
			}

			styles := ui.GetStatusStyles()
			out := cmd.OutOrStdout()
			if installed {
				_, err = lipgloss.Fprintln(out, styles.OK.Render("installed: "+installer.HookPath()))
			} else {
				_, err = lipgloss.Fprintln(out, styles.Skip.Render("not installed: "+installer.HookPath()))
			}
			return err
		},
	}
}

func newConfigCmd(params *globalParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage prepush configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd, params, nil)
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), sess)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default user configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefaultConfig()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	})

	return cmd
}

func printConfig(out io.Writer, sess *session) {
	source := sess.cfg.ConfigFile()
	if source == "" {
		source = "(defaults)"
	}

	_, _ = fmt.Fprintf(out, "root:          %s\n", sess.root)
	_, _ = fmt.Fprintf(out, "config file:   %s\n", source)
	_, _ = fmt.Fprintf(out, "executor:      %s\n", sess.cfg.Executor)
	_, _ = fmt.Fprintf(out, "command:       %s\n", sess.cfg.Command)
	_, _ = fmt.Fprintf(out, "check_command: %s\n", sess.cfg.CheckCommand)
	_, _ = fmt.Fprintf(out, "apply_command: %s\n", sess.cfg.ApplyCommand)
	_, _ = fmt.Fprintf(out, "debug:         %t\n", sess.cfg.Debug)
	_, _ = fmt.Fprintf(out, "verbose:       %t\n", sess.cfg.Verbose)
}

func printOutcome(out io.Writer, outcome hooks.Outcome, hookPath string) {
	styles := ui.GetStatusStyles()

	var line string
	switch outcome {
	case hooks.OutcomeInstalled:
		line = styles.OK.Render("installed: " + hookPath)
	case hooks.OutcomeAlreadyInstalled:
		line = styles.Skip.Render("already installed: " + hookPath)
	case hooks.OutcomeNotGitRepo:
		line = styles.Skip.Render("skipped: not a git repository")
	case hooks.OutcomeExecutorUnavailable:
		line = styles.Skip.Render("skipped: executor unavailable")
	default:
		line = styles.Fail.Render("failed: " + hookPath)
	}
	_, _ = lipgloss.Fprintln(out, line)
}
