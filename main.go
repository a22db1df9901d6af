package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/prepush/cmd/prepush"
)

func main() {
	os.Exit(actualMain())
}

func actualMain() int {
	ctx := context.Background()

	rootCmd := prepush.NewRootCmd(ctx)

	if err := prepush.ExecuteWithFang(ctx, rootCmd); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
