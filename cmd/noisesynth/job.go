package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/justyntemme/noisesynth/internal/config"
	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/debug"
	"github.com/justyntemme/noisesynth/pkg/framework/param"
	"github.com/justyntemme/noisesynth/pkg/framework/process"
)

// paramAssignment is one -set Name=value flag, parsed once the algorithm is known
type paramAssignment struct {
	name  string
	value string
}

// paramFlags collects repeated -set flags
type paramFlags []paramAssignment

func (p *paramFlags) String() string {
	parts := make([]string, len(*p))
	for i, a := range *p {
		parts[i] = a.name + "=" + a.value
	}
	return strings.Join(parts, ",")
}

func (p *paramFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected Name=value, got %q", s)
	}
	*p = append(*p, paramAssignment{name: name, value: value})
	return nil
}

// resolve parses each value with the unit of the matching descriptor.
// Names the algorithm does not declare are still passed through so that
// UpdateParameter reports them.
func (p paramFlags) resolve(params param.List) (map[string]float64, error) {
	out := make(map[string]float64, len(p))
	for _, a := range p {
		d, ok := params.Lookup(a.name)
		if !ok {
			d = param.Descriptor{Name: a.name}
		}
		v, err := param.ParseValue(d, a.value)
		if err != nil {
			return nil, fmt.Errorf("-set %s: %w", a.name, err)
		}
		out[a.name] = v
	}
	return out, nil
}

// jobFlags registers the flags shared by render and play
type jobFlags struct {
	fs *flag.FlagSet

	configPath string
	algorithm  string
	sampleRate uint
	blockSize  int
	duration   time.Duration
	gain       float64
	fade       time.Duration
	logLevel   string
	logFile    string
	profile    bool
	params     paramFlags
}

func newJobFlags(name string, stderr io.Writer) *jobFlags {
	j := &jobFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	j.fs.SetOutput(stderr)

	def := config.Default()
	j.fs.StringVar(&j.configPath, "config", "", "TOML job file")
	j.fs.StringVar(&j.algorithm, "algorithm", def.Algorithm, "algorithm name (see list)")
	j.fs.UintVar(&j.sampleRate, "rate", uint(def.SampleRate), "sample rate in Hz")
	j.fs.IntVar(&j.blockSize, "block", def.BlockSize, "samples per render block")
	j.fs.DurationVar(&j.duration, "duration", def.Duration.Duration, "length to render or play")
	j.fs.Float64Var(&j.gain, "gain", def.Gain, "output level in dB")
	j.fs.DurationVar(&j.fade, "fade", def.Fade.Duration, "fade in and out over this long")
	j.fs.StringVar(&j.logLevel, "log-level", def.LogLevel, "debug, info, warn, error or off")
	j.fs.StringVar(&j.logFile, "log-file", "", "append logs to this file instead of stderr")
	j.fs.BoolVar(&j.profile, "profile", false, "report render timing")
	j.fs.Var(&j.params, "set", "parameter assignment Name=value (repeatable)")
	return j
}

// load reads the config file, if any, then applies flags the user set.
func (j *jobFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if j.configPath != "" {
		var err error
		if cfg, err = config.Load(j.configPath); err != nil {
			return nil, err
		}
	}

	j.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algorithm":
			cfg.Algorithm = j.algorithm
		case "rate":
			cfg.SampleRate = uint32(j.sampleRate)
		case "block":
			cfg.BlockSize = j.blockSize
		case "duration":
			cfg.Duration.Duration = j.duration
		case "gain":
			cfg.Gain = j.gain
		case "fade":
			cfg.Fade.Duration = j.fade
		case "log-level":
			cfg.LogLevel = j.logLevel
		case "log-file":
			cfg.LogFile = j.logFile
		}
	})
	return cfg, nil
}

// job is a configured algorithm wrapped in a render context
type job struct {
	cfg      *config.Config
	ctx      *process.Context
	logger   *debug.Logger
	profiler *debug.Profiler
	closeLog func() error
}

func (j *job) Close() error {
	if j.closeLog != nil {
		return j.closeLog()
	}
	return nil
}

// open validates cfg, builds the algorithm and applies every parameter
func (j *jobFlags) open(cfg *config.Config, stderr io.Writer) (*job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := &job{cfg: cfg}
	level, _ := debug.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		l, closer, err := debug.NewFileLogger(cfg.LogFile, "noisesynth", debug.DefaultFlags)
		if err != nil {
			return nil, err
		}
		out.logger, out.closeLog = l, closer.Close
		out.logger.SetLevel(level)
	} else {
		debug.SetOutput(stderr)
		debug.SetLevel(level)
		out.logger = debug.Default()
	}

	alg, err := algorithm.New(cfg.Algorithm)
	if err != nil {
		out.Close()
		return nil, err
	}

	flagParams, err := j.params.resolve(alg.Parameters())
	if err != nil {
		out.Close()
		return nil, err
	}
	for name, v := range flagParams {
		cfg.Params[name] = v
	}

	opts := []process.Option{
		process.WithLogger(out.logger),
		process.WithGain(cfg.Gain, cfg.FadeSamples()),
	}
	if j.profile {
		out.profiler = debug.NewProfiler()
		opts = append(opts, process.WithProfiler(out.profiler))
	}
	out.ctx = process.NewContext(alg, cfg.SampleRate, cfg.BlockSize, opts...)

	if err := cfg.ApplyParams(out.ctx.SetParameter); err != nil {
		out.Close()
		return nil, err
	}

	out.logger.Info("%s at %d Hz", alg.Name(), cfg.SampleRate)
	for _, d := range out.ctx.Parameters() {
		out.logger.Debug("  %s = %s", d.Name, d.Format())
		if msg, ok := outOfRange(d); ok {
			out.logger.Warn("%s", msg)
		}
	}
	return out, nil
}

// outOfRange describes a value outside its advisory range. Such values are
// still used as given.
func outOfRange(d param.Descriptor) (string, bool) {
	r, ok := d.Range()
	if !ok || d.InRange() {
		return "", false
	}
	return fmt.Sprintf("%s = %s is outside [%s, %s]", d.Name, d.Format(),
		param.FormatValue(r.Min, d.Unit, d.Integer),
		param.FormatValue(r.Max, d.Unit, d.Integer)), true
}

// report logs what the job rendered
func (j *job) report() {
	stats := j.ctx.Stats()
	j.logger.Info("rendered %d samples, %d cycles", stats.Samples, stats.Cycles)
	debug.LogBufferStats(j.logger, stats.Total, j.ctx.Algorithm())

	if j.profiler != nil {
		j.logger.Info("realtime load %.2f%%", j.profiler.RealtimeLoad(process.ProfileSection, j.cfg.SampleRate, j.cfg.BlockSize))
		j.logger.Info("%s", strings.TrimRight(j.profiler.Report(), "\n"))
	}
}
