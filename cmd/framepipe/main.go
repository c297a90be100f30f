// Command framepipe runs the ordered parallel pipeline over a synthetic
// frame stream and prints throughput and transform timing statistics. It is
// the harness for comparing worker counts and synchronization strategies.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/framepipe/framepipe"
	"github.com/framepipe/framepipe/stats"
)

const envPrefix = "FRAMEPIPE"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "framepipe",
		Short:         "run the ordered parallel frame pipeline over a synthetic stream",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.Int("frames", 300, "number of synthetic frames to stream")
	flags.Int("frame-size", 4096, "values per synthetic frame")
	flags.Uint("workers", 4, "parallel transform workers")
	flags.String("strategy", "blocking", "synchronization strategy: blocking or polling")
	flags.Duration("jitter", 2*time.Millisecond, "per-frame processing time skew")
	flags.Int64("seed", 42, "seed for synthetic frame content")
	flags.String("log-level", "info", "zerolog level")
	flags.String("log-format", "console", "log format: console or json")

	return cmd
}

// rawFrame is a captured synthetic frame before processing.
type rawFrame struct {
	id     int
	pixels []float64
}

// laneResult is the transform output for one frame.
type laneResult struct {
	id       int
	segments int
	energy   float64
}

func run(ctx context.Context, v *viper.Viper) error {
	logger, err := newLogger(v.GetString("log-level"), v.GetString("log-format"))
	if err != nil {
		return err
	}

	strategy, err := framepipe.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		total     = v.GetInt("frames")
		frameSize = v.GetInt("frame-size")
		jitter    = v.GetDuration("jitter")
		rng       = rand.New(rand.NewSource(v.GetInt64("seed")))
		recorder  = stats.NewRecorder()
		produced  int
	)

	source := framepipe.SourceFunc[rawFrame](func(context.Context) (rawFrame, error) {
		if produced >= total {
			return rawFrame{}, framepipe.ErrEndOfStream
		}
		f := rawFrame{id: produced, pixels: make([]float64, frameSize)}
		for i := range f.pixels {
			f.pixels[i] = rng.Float64()
		}
		produced++
		return f, nil
	})

	transform := func(_ context.Context, f rawFrame) (laneResult, error) {
		// Skew processing time per frame so completions overtake each other
		// and the reorder buffer actually has work to do.
		time.Sleep(jitter * time.Duration(f.id%5))
		return detectLanes(f), nil
	}

	sink := framepipe.SinkFunc[laneResult](func(_ context.Context, d framepipe.Delivery[laneResult]) error {
		if d.Err != nil {
			logger.Warn().Uint64("seq", d.Seq).Err(d.Err).Msg("frame failed")
			return nil
		}
		logger.Debug().
			Uint64("seq", d.Seq).
			Int("segments", d.Payload.segments).
			Msg("frame delivered")
		return nil
	})

	summary, err := framepipe.Run(ctx, source, transform, sink,
		framepipe.WithWorkers(v.GetUint("workers")),
		framepipe.WithStrategy(strategy),
		framepipe.WithLogger(logger),
		framepipe.WithStatsRecorder(recorder),
	)
	if err != nil {
		return err
	}

	fmt.Printf("delivered %d/%d frames in %s (%.1f fps)\n",
		summary.Delivered, summary.Submitted, summary.Elapsed.Round(time.Millisecond),
		float64(summary.Delivered)/summary.Elapsed.Seconds())

	if timing, err := recorder.Snapshot(); err == nil {
		fmt.Printf("transform: mean %.3fms stddev %.3fms min %.3fms max %.3fms\n",
			timing.Mean*1e3, timing.StdDev*1e3, timing.Min*1e3, timing.Max*1e3)
	}
	return nil
}

// detectLanes is a stand-in CPU-bound transform: a smoothing pass followed
// by a threshold count, roughly the shape of an edge-detection kernel.
func detectLanes(f rawFrame) laneResult {
	var energy float64
	segments := 0
	for i := 1; i+1 < len(f.pixels); i++ {
		v := f.pixels[i-1]*0.25 + f.pixels[i]*0.5 + f.pixels[i+1]*0.25
		energy += v
		if v > 0.75 {
			segments++
		}
	}
	return laneResult{id: f.id, segments: segments, energy: energy}
}

func newLogger(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	var l zerolog.Logger
	if format == "console" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(lvl).With().Timestamp().Logger(), nil
}
