package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samuelfneumann/antjump/agent/random"
	"github.com/samuelfneumann/antjump/environment/mujoco/antjump"
	"github.com/samuelfneumann/antjump/experiment"
	"github.com/samuelfneumann/antjump/experiment/checkpointer"
	"github.com/samuelfneumann/antjump/experiment/trackers"
	ts "github.com/samuelfneumann/antjump/timestep"
	"github.com/samuelfneumann/antjump/utils/progressbar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Files written to each run directory
const (
	configFile  = "config.yaml"
	heightsFile = "jump_heights.bin"
	returnsFile = "returns.bin"
	lengthsFile = "episode_lengths.bin"
	framesDir   = "frames"
)

type smokeOptions struct {
	steps       int
	renderEvery int
	out         string
	metricsAddr string
	noProgress  bool
	noRender    bool
}

// newSmokeCmd returns the command which runs a uniform random agent on
// AntJump, rendering a frame every few steps
func newSmokeCmd(v *viper.Viper) *cobra.Command {
	opts := smokeOptions{}

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run a random agent on AntJump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return smoke(ctx, c, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.steps, "steps", 2000, "environment steps to run")
	flags.IntVar(&opts.renderEvery, "render-every", 10,
		"render a frame every this many steps")
	flags.StringVar(&opts.out, "out", "runs", "directory to save runs to")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVar(&opts.noProgress, "no-progress", false,
		"do not display a progress bar")
	flags.BoolVar(&opts.noRender, "no-render", false, "do not render frames")

	return cmd
}

// smoke runs a random agent on an AntJump environment configured by c
func smoke(ctx context.Context, c antjump.Config, opts smokeOptions) (
	err error) {
	runDir := filepath.Join(opts.out, uuid.New().String())
	if err := os.MkdirAll(filepath.Join(runDir, framesDir), 0o755); err != nil {
		return fmt.Errorf("smoke: could not create run directory: %v", err)
	}
	log.Printf("saving run to %v", runDir)

	if err := writeConfig(filepath.Join(runDir, configFile), c); err != nil {
		return fmt.Errorf("smoke: %v", err)
	}

	env, _, err := antjump.New(c, seed)
	if err != nil {
		return fmt.Errorf("smoke: could not create environment: %v", err)
	}
	defer func() {
		err = multierr.Append(err, env.Close())
	}()
	log.Println(env)

	agent, err := random.New(env.ActionSpec(), seed)
	if err != nil {
		return fmt.Errorf("smoke: could not create agent: %v", err)
	}

	heights := trackers.NewJumpHeight(env, filepath.Join(runDir, heightsFile))
	returns := trackers.NewReturn(filepath.Join(runDir, returnsFile))
	lengths := trackers.NewEpisodeLength(filepath.Join(runDir, lengthsFile))
	t := []trackers.Tracker{heights, returns, lengths}
	if verbose {
		t = append(t, &episodeLogger{env: env})
	}

	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err := trackers.NewMetrics(reg, env)
		if err != nil {
			return fmt.Errorf("smoke: %v", err)
		}
		t = append(t, metrics)

		srv := newMetricsServer(opts.metricsAddr, reg)
		serveMetrics(srv)
		defer shutdownMetrics(srv)
	}

	var cp []checkpointer.Checkpointer
	if !opts.noRender && opts.renderEvery > 0 {
		frames := checkpointer.FilenameEnumerator(0,
			filepath.Join(runDir, framesDir, "frame"), ".png")
		cp = append(cp, checkpointer.NewNStep(opts.renderEvery, env, frames))
	}

	e := experiment.NewOnline(env, agent, opts.steps, t, cp)
	if !opts.noProgress {
		bar := progressbar.NewProgressBar(os.Stderr, 50, opts.steps,
			200*time.Millisecond)
		defer bar.Close()
		e.SetProgressBar(bar)
	}

	start := time.Now()
	runErr := e.Run(ctx)
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("smoke: %v", runErr)
	}
	if runErr != nil {
		log.Printf("interrupted after %v steps", e.Steps())
	}

	if err := e.Save(); err != nil {
		return fmt.Errorf("smoke: could not save data: %v", err)
	}
	if err := plotRun(runDir, heights.Data(), returns.Returns()); err != nil {
		return fmt.Errorf("smoke: %v", err)
	}

	printSummary(os.Stdout, runSummary{
		dir:      runDir,
		steps:    e.Steps(),
		episodes: e.Episodes(),
		elapsed:  time.Since(start),
		data:     heights.Data(),
		endTypes: lengths.EndTypes(),
	})
	return nil
}

// writeConfig saves the environment config as YAML so that the run can
// be reproduced with --config
func writeConfig(filename string, c antjump.Config) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("writeConfig: %v", err)
	}

	enc := yaml.NewEncoder(file)
	if err := enc.Encode(c); err != nil {
		file.Close()
		return fmt.Errorf("writeConfig: %v", err)
	}
	return multierr.Combine(enc.Close(), file.Close())
}

// episodeLogger logs the outcome of every episode
type episodeLogger struct {
	env     trackers.InfoSource
	episode int
	ret     float64
}

func (e *episodeLogger) Track(t ts.TimeStep) {
	if t.First() {
		e.ret = 0
		return
	}
	e.ret += t.Reward

	if t.Last() {
		e.episode++
		info := e.env.Info()
		log.Printf("episode %d: steps=%d end=%v return=%.3f "+
			"max_height=%.3f goal=%.3f", e.episode, t.Number, t.EndType(),
			e.ret, info.MaxHeight, info.Goal)
	}
}

func (e *episodeLogger) Save() error { return nil }
