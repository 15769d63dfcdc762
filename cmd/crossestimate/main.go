package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/cross-attack-cost/internal/logger"
	"github.com/mahdiidarabi/cross-attack-cost/internal/paramset"
	"github.com/mahdiidarabi/cross-attack-cost/internal/progress"
	"github.com/mahdiidarabi/cross-attack-cost/internal/report"
	"github.com/mahdiidarabi/cross-attack-cost/internal/workerpool"
	"github.com/mahdiidarabi/cross-attack-cost/pkg/crossattack"
	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

var Version = "DEV"

const (
	flagP          = "p"
	flagT          = "t"
	flagW          = "w"
	flagThreads    = "threads"
	flagQuiet      = "quiet"
	flagBackend    = "backend"
	flagOutput     = "output"
	flagParamsFile = "params-file"
	flagSet        = "set"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "crossestimate"
	app.Usage = "Estimate the cost of forgery attacks on CROSS parameter sets"
	app.UsageText = "crossestimate -p P -t T -w W [options]\n" +
		"   crossestimate --params-file FILE [options]\n" +
		"   crossestimate --set NAME [--set NAME ...] [options]"
	app.Version = Version
	app.Flags = flags()
	app.Action = action
	return app
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:    flagP,
			Usage:   "Prime order of the finite field",
			EnvVars: []string{"CROSS_P"},
		},
		&cli.Int64Flag{
			Name:    flagT,
			Usage:   "Number of parallel repetitions",
			EnvVars: []string{"CROSS_T"},
		},
		&cli.Int64Flag{
			Name:    flagW,
			Usage:   "Fixed weight of the second challenge",
			EnvVars: []string{"CROSS_W"},
		},
		&cli.IntFlag{
			Name:    flagThreads,
			Usage:   "Number of worker threads (0 = all logical CPUs)",
			EnvVars: []string{"CROSS_THREADS"},
		},
		&cli.BoolFlag{
			Name:    flagQuiet,
			Aliases: []string{"q"},
			Usage:   "Do not show progress bars",
		},
		&cli.StringFlag{
			Name:    flagBackend,
			Value:   string(numeric.DefaultBackend),
			Usage:   "Numeric backend {f64, big32, big64, big113}",
			EnvVars: []string{"CROSS_BACKEND"},
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Value:   string(report.FormatText),
			Usage:   "Output format {text, json}",
			EnvVars: []string{"CROSS_OUTPUT"},
		},
		&cli.StringFlag{
			Name:    flagParamsFile,
			Usage:   "YAML file with named parameter sets to estimate in order",
			EnvVars: []string{"CROSS_PARAMS_FILE"},
		},
		&cli.StringSliceFlag{
			Name:    flagSet,
			Usage:   "Built-in parameter set to estimate, may be repeated {" + strings.Join(paramset.Names(), ", ") + "}",
			EnvVars: []string{"CROSS_SET"},
		},
		&cli.StringFlag{
			Name:    logger.LogLevelFlag,
			Value:   logger.DefaultLevel,
			Usage:   "Application logging level {debug, info, warn, error}",
			EnvVars: []string{"CROSS_LOGLEVEL"},
		},
	}
}

func action(c *cli.Context) error {
	if err := run(c); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Error: %v\n", err)
		return cli.Exit("", 1)
	}
	return nil
}

func run(c *cli.Context) error {
	log := logger.Create(&logger.Config{MinLevel: c.String(logger.LogLevelFlag)})

	backend, err := numeric.ParseBackend(c.String(flagBackend))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(c.String(flagOutput))
	if err != nil {
		return err
	}
	sets, err := parameterSets(c)
	if err != nil {
		return err
	}

	pool := workerpool.New(c.Int(flagThreads))
	defer pool.Close()

	var degenerate int64
	bars := &barFactory{quiet: c.Bool(flagQuiet), out: c.App.ErrWriter}
	client := crossattack.NewClient().
		WithBackend(backend).
		WithExecutor(pool).
		WithLogger(log).
		WithProgress(bars.create).
		WithDegenerateHandler(func(crossattack.DegenerateEvent) {
			atomic.AddInt64(&degenerate, 1)
		})

	log.Debug().
		Str("backend", backend.String()).
		Uint("precision", backend.PrecisionBits()).
		Int("threads", pool.Size()).
		Int("sets", len(sets)).
		Msg("Starting estimation")

	out := c.App.Writer
	text := format == report.FormatText
	estimates := make([]*crossattack.Estimate, 0, len(sets))
	for i, set := range sets {
		if text && len(sets) > 1 {
			if err := report.WriteHeader(out, i == 0, set.Name, set.Params); err != nil {
				return err
			}
		}
		est, err := estimate(client, bars, set, out, text)
		if err != nil {
			return err
		}
		estimates = append(estimates, est)
	}

	if n := atomic.LoadInt64(&degenerate); n > 0 {
		log.Info().Int64("count", n).Msg("Some probabilities were clamped to zero")
	}
	if !text {
		return report.WriteJSON(out, estimates)
	}
	return nil
}

// estimate runs both models on set, printing each result as soon as it is
// known when text is set.
func estimate(client *crossattack.Client, bars *barFactory, set paramset.Set, out io.Writer, text bool) (*crossattack.Estimate, error) {
	est := &crossattack.Estimate{Name: set.Name, Backend: client.Backend(), Params: set.Params}

	if text {
		fmt.Fprintln(out, "Estimating complexity of original attack...")
	}
	original, err := client.Original(set.Params)
	bars.finish()
	if err != nil {
		return nil, errors.Wrapf(err, "parameter set %q", set.Name)
	}
	est.Original = original
	if text {
		if err := report.WriteOriginal(out, original); err != nil {
			return nil, err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimating complexity of our attack...")
	}

	revised, err := client.Revised(set.Params)
	bars.finish()
	if err != nil {
		return nil, errors.Wrapf(err, "parameter set %q", set.Name)
	}
	est.Revised = revised
	if text {
		if err := report.WriteRevised(out, revised); err != nil {
			return nil, err
		}
	}
	return est, nil
}

func parameterSets(c *cli.Context) ([]paramset.Set, error) {
	explicit := c.IsSet(flagP) || c.IsSet(flagT) || c.IsSet(flagW)
	path := c.String(flagParamsFile)
	names := c.StringSlice(flagSet)

	sources := 0
	for _, given := range []bool{explicit, path != "", len(names) > 0} {
		if given {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("-p/-t/-w, --params-file and --set cannot be combined")
	}

	switch {
	case path != "":
		return paramset.Load(path)
	case len(names) > 0:
		return paramset.Resolve(names)
	}
	if !c.IsSet(flagP) || !c.IsSet(flagT) || !c.IsSet(flagW) {
		return nil, errors.New("either -p, -t and -w, --params-file or --set must be given")
	}
	return []paramset.Set{{
		Name:   "cli",
		Params: crossattack.Params{P: c.Int64(flagP), T: c.Int64(flagT), W: c.Int64(flagW)},
	}}, nil
}

// barFactory hands out one progress bar per search and finishes it once the
// search returns, successful or not.
type barFactory struct {
	quiet   bool
	out     io.Writer
	current progress.Sink
}

func (f *barFactory) create(model string) crossattack.ProgressSink {
	f.current = progress.New(model, f.quiet, f.out)
	return f.current
}

func (f *barFactory) finish() {
	if f.current != nil {
		f.current.Finish()
		f.current = nil
	}
}
