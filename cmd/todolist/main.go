// Command todolist is the CLI entrypoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/oklog/run"

	"github.com/nibzard/todolist/cmd"
)

func main() {
	var g run.Group

	// OS signals.
	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	// Execute command.
	{
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		g.Add(
			func() error {
				return cmd.Run(ctx, os.Args[1:])
			},
			func(_ error) {
				cancel()
			},
		)
	}

	err := g.Run()
	if err == nil {
		return
	}
	var sigErr run.SignalError
	if errors.As(err, &sigErr) || errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "\nInterrupted\n")
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
