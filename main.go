package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lugassawan/lintargs/cmd"
	"github.com/lugassawan/lintargs/internal/output"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var silent *output.SilentError
	switch {
	case errors.As(err, &silent):
	case cmd.IsJSONMode():
		_ = output.WriteJSONError(os.Stdout, cmd.Version(), cmd.CommandName(), err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(output.ExitCode(err))
}
