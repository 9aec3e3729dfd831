package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/msto63/spellgym/cmd/spellgym/cmd"
	"github.com/msto63/spellgym/internal/capture"
)

func main() {
	err := cmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, capture.ErrInterrupted), errors.Is(err, context.Canceled):
		fmt.Println("\nInterrupted. Exiting.")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
