package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/justyntemme/noisesynth/internal/config"
	"github.com/justyntemme/noisesynth/pkg/audio"
	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/debug"
	"github.com/justyntemme/noisesynth/pkg/framework/param"
)

// errTerminal is returned when raw PCM would be written to a terminal
var errTerminal = errors.New("refusing to write raw audio to a terminal")

func runList(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range algorithm.Names() {
		alg, err := algorithm.New(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\n", name)
		for _, d := range alg.Parameters() {
			bounds := "unbounded"
			if r, ok := d.Range(); ok {
				bounds = fmt.Sprintf("[%s, %s]",
					param.FormatValue(r.Min, d.Unit, d.Integer),
					param.FormatValue(r.Max, d.Unit, d.Integer))
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", d.Name, d.Format(), bounds)
		}
	}
	return tw.Flush()
}

// runProbe drives the algorithm directly and prints every sample with the
// diagnostics a test harness would poll.
func runProbe(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("algorithm", config.Default().Algorithm, "algorithm name (see list)")
	rate := fs.Uint("rate", 44100, "sample rate in Hz")
	n := fs.Int("n", 32, "number of samples")
	logLevel := fs.String("log-level", "info", "debug, info, warn, error or off")
	var params paramFlags
	fs.Var(&params, "set", "parameter assignment Name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := debug.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	debug.SetOutput(stderr)
	debug.SetLevel(level)

	alg, err := algorithm.New(*name)
	if err != nil {
		return err
	}
	values, err := params.resolve(alg.Parameters())
	if err != nil {
		return err
	}
	for _, a := range params {
		if err := alg.UpdateParameter(a.name, values[a.name]); err != nil {
			return err
		}
	}
	for _, d := range alg.Parameters() {
		if msg, ok := outOfRange(d); ok {
			debug.Warn("%s", msg)
		}
	}
	alg.SetSampleRate(uint32(*rate))

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	fmt.Fprintf(w, "# %s, %d Hz, frequency %s\n", alg.Name(), *rate, param.FrequencyFormatter(alg.DebugFrequency()))
	wraps := 0
	for i := 0; i < *n; i++ {
		s, err := alg.GenerateSample()
		if err != nil {
			return err
		}
		marker := ""
		if alg.DebugTakeRollover() {
			marker = "  wrap"
			wraps++
		}
		fmt.Fprintf(w, "%6d  %+.6f%s\n", i, s, marker)
	}
	fmt.Fprintf(w, "# %d wraps\n", wraps)
	return nil
}

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	jf := newJobFlags("render", stderr)
	def := config.Default()
	output := jf.fs.String("o", def.Output, `output path, "-" for stdout`)
	format := jf.fs.String("format", def.Format, "wav or raw (float32 little-endian)")
	bits := jf.fs.Int("bits", def.BitDepth, "WAV bit depth, 16 or 24")
	if err := jf.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := jf.load()
	if err != nil {
		return err
	}
	jf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "bits":
			cfg.BitDepth = *bits
		}
	})
	if cfg.Output == "-" && cfg.Format == config.FormatWAV {
		return fmt.Errorf("wav output needs a file; use -format raw for stdout")
	}

	j, err := jf.open(cfg, stderr)
	if err != nil {
		return err
	}
	defer j.Close()

	total, fade := cfg.Samples(), cfg.FadeSamples()
	samples, err := j.ctx.Render(ctx, total-fade)
	if err != nil {
		return err
	}
	j.ctx.FadeOut(fade)
	tail, err := j.ctx.Render(ctx, fade)
	if err != nil {
		return err
	}
	samples = append(samples, tail...)

	if err := writeSamples(cfg, samples, stdout); err != nil {
		return err
	}
	j.report()
	j.logger.Info("wrote %s", cfg.Output)
	return nil
}

func writeSamples(cfg *config.Config, samples []float32, stdout io.Writer) error {
	if cfg.Output == "-" {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errTerminal
		}
		return audio.WriteRaw(stdout, samples)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatRaw {
		err = audio.WriteRaw(f, samples)
	} else {
		err = audio.WriteWAV(f, samples, int(cfg.SampleRate), cfg.BitDepth)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// errFinished stops the play group once the duration has elapsed
var errFinished = errors.New("finished")

func runPlay(ctx context.Context, args []string, stderr io.Writer) error {
	jf := newJobFlags("play", stderr)
	forever := jf.fs.Bool("forever", false, "play until interrupted")
	if err := jf.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := jf.load()
	if err != nil {
		return err
	}
	j, err := jf.open(cfg, stderr)
	if err != nil {
		return err
	}
	defer j.Close()

	player, err := audio.NewPlayer(int(cfg.SampleRate), 50*time.Millisecond)
	if err != nil {
		return err
	}
	defer player.Close()
	player.Start(j.ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var done <-chan time.Time
		if !*forever {
			timer := time.NewTimer(cfg.Duration.Duration)
			defer timer.Stop()
			done = timer.C
		}
		select {
		case <-gctx.Done():
			return nil
		case <-done:
			return errFinished
		}
	})
	g.Go(func() error {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := player.Err(); err != nil {
					return fmt.Errorf("playback: %w", err)
				}
				if stats := j.ctx.Stats(); stats.Last.NonFinite > 0 {
					j.logger.Warn("%d non-finite samples in the last block", stats.Last.NonFinite)
				}
			}
		}
	})

	err = g.Wait()
	if errors.Is(err, errFinished) {
		err = nil
	}
	if err == nil && player.IsPlaying() {
		// Let the fade reach the device before closing it
		j.ctx.FadeOut(cfg.FadeSamples())
		time.Sleep(cfg.Fade.Duration + 50*time.Millisecond)
	}
	j.report()
	return err
}
