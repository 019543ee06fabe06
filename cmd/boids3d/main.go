package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/simulation"
	"github.com/tochemey/goakt/v3/log"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color("❌ "+err.Error()))
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "boids3d"
	app.Usage = "3D flocking simulation"
	app.Description = "Boids steering by cohesion, alignment and separation inside a cube"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "JSON or TOML configuration file"},
		cli.Int64Flag{Name: "seed", Usage: "RNG seed, 0 picks one from the clock"},
		cli.IntFlag{Name: "boids, n", Usage: "population size"},
		cli.StringFlag{Name: "ordering", Usage: "tick ordering: interleaved or snapshot"},
		cli.StringFlag{Name: "index", Usage: "neighbour index: brute, grid or rtree"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		cli.StringFlag{Name: "log-file", Usage: "write logs here instead of stderr"},
	}
	app.Action = windowAction
	app.Commands = []cli.Command{
		{
			Name:   "window",
			Usage:  "Open the 3D window (default)",
			Action: windowAction,
		},
		{
			Name:   "tui",
			Usage:  "Render the flock in the terminal",
			Action: tuiAction,
		},
		{
			Name:  "run",
			Usage: "Run headless for a number of ticks and print statistics",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "ticks", Value: 1000, Usage: "number of ticks to run"},
				cli.IntFlag{Name: "batch", Value: 100, Usage: "ticks per request to the world"},
			},
			Action: runAction,
		},
		{
			Name:  "config",
			Usage: "Print the effective configuration",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format", Value: "toml", Usage: "toml or json"},
			},
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				return simulation.WriteConfig(os.Stdout, cfg, c.String("format"))
			},
		},
	}
	return app
}

// loadConfig merges defaults, the config file and the command line, then pins the
// seed so it can be reported.
func loadConfig(c *cli.Context) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if path := c.GlobalString("config"); path != "" {
		loaded, err := simulation.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.GlobalIsSet("seed") {
		cfg.Seed = c.GlobalInt64("seed")
	}
	if c.GlobalIsSet("boids") {
		cfg.NumBoids = c.GlobalInt("boids")
	}
	if c.GlobalIsSet("ordering") {
		cfg.Ordering = flock.Ordering(c.GlobalString("ordering"))
	}
	if c.GlobalIsSet("index") {
		cfg.NeighborIndex = flock.IndexKind(c.GlobalString("index"))
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the actor system logger. quiet discards output unless a log file
// is given, for renderers that own the terminal.
func newLogger(c *cli.Context, quiet bool) (log.Logger, func(), error) {
	level, err := parseLevel(c.GlobalString("log-level"))
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = os.Stderr
	closer := func() {}
	if path := c.GlobalString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	} else if quiet {
		return log.DiscardLogger, closer, nil
	}
	return log.New(level, out), closer, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarningLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InvalidLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// boot loads everything and starts a world. The returned stop func shuts it all down.
func boot(c *cli.Context, quiet bool) (context.Context, *simulation.Session, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := newLogger(c, quiet)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	session, err := simulation.Boot(ctx, cfg, logger)
	if err != nil {
		cancel()
		closeLog()
		return nil, nil, nil, err
	}
	stop := func() {
		_ = session.Stop(context.Background())
		cancel()
		closeLog()
	}
	return ctx, session, stop, nil
}
