package hooks

// Outcome summarises what a call to Installer.Install did.
type Outcome int

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Outcome -trimprefix=Outcome
const (
	// OutcomeInstalled means the managed block was appended.
	OutcomeInstalled Outcome = iota

	// OutcomeAlreadyInstalled means the hook already held a managed block.
	OutcomeAlreadyInstalled

	// OutcomeNotGitRepo means <root>/.git/config was missing.
	OutcomeNotGitRepo

	// OutcomeExecutorUnavailable means the executor could not be found.
	OutcomeExecutorUnavailable

	// OutcomeFilesystemFailure means creating, reading or writing the hook failed.
	OutcomeFilesystemFailure
)

// Failed reports whether the outcome stems from an error rather than a
// deliberate skip.
func (o Outcome) Failed() bool {
	return o == OutcomeFilesystemFailure
}

// Changed reports whether the hook file gained a managed block.
func (o Outcome) Changed() bool {
	return o == OutcomeInstalled
}
