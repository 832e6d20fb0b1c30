package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sortify/internal/sorter"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		// Cancellations have already been announced by the flow or signal
		// handling; repeating the wrapped chain here is noise.
		if !errors.Is(err, context.Canceled) && !errors.Is(err, sorter.ErrCancelled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
