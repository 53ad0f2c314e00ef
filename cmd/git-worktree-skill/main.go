package main

import (
	"os"

	"github.com/worktree-skill/installer/cmd/git-worktree-skill/cmd"
	ierrors "github.com/worktree-skill/installer/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(ierrors.ExitCode(err))
	}
}
