// Command noisesynth lists, probes, renders and plays the sound algorithms.
//
// Usage:
//
//	noisesynth list
//	noisesynth probe  [-algorithm name] [-rate hz] [-n samples] [-set Name=value ...]
//	noisesynth render [-config job.toml] [-o out.wav] [-format wav|raw] [-duration 2s] [-set Name=value ...]
//	noisesynth play   [-config job.toml] [-duration 2s | -forever] [-set Name=value ...]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// Registers the oscillator variants
	_ "github.com/justyntemme/noisesynth/pkg/dsp/oscillator"
)

var errUsage = errors.New("usage: noisesynth list|probe|render|play [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "noisesynth: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		return runList(stdout)
	case "probe":
		return runProbe(args[1:], stdout, stderr)
	case "render":
		return runRender(ctx, args[1:], stdout, stderr)
	case "play":
		return runPlay(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, errUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q; %w", args[0], errUsage)
	}
}
