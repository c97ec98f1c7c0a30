// Command rateconv converts 16-bit PCM WAV files between sample rates with a
// windowed-sinc rational L/M converter.
//
// Usage:
//
//	rateconv [flags] <command> [args]
//
// Commands:
//
//	convert  - convert a WAV file or a directory of WAV files
//	design   - design the anti-aliasing filter and dump its taps
//	analyze  - measure tone levels per channel of a WAV file
//	windows  - compare window tapers for a conversion
//	init     - write a job file with the default settings
//	version  - show version information
//
// Examples:
//
//	rateconv convert input.wav
//	rateconv convert --dir ./music --rate 16000 -o ./out
//	rateconv design --response
//	rateconv analyze input_8000.wav --tone 1000
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-rateconv/cmd/rateconv/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
