package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mcncl/jsonlens/internal/cli"
	"github.com/mcncl/jsonlens/internal/errors"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonlens --help\n")
		os.Exit(1)
	}
}
