package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids3d/internal/tui"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/simulation"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
)

func windowAction(c *cli.Context) error {
	ctx, session, stop, err := boot(c, false)
	if err != nil {
		return err
	}
	defer stop()

	cfg := session.Config()
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Boids 3D")
	ebiten.SetTPS(cfg.TicksPerSecond)
	if err := ebiten.RunGame(simulation.GetNewGame(ctx, session)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func tuiAction(c *cli.Context) error {
	ctx, session, stop, err := boot(c, true)
	if err != nil {
		return err
	}
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	return tui.NewView(screen, session).Run(ctx)
}

func runAction(c *cli.Context) error {
	ticks, batch := c.Int("ticks"), c.Int("batch")
	if ticks < 0 || batch <= 0 {
		return fmt.Errorf("ticks must be >= 0 and batch > 0, got %d and %d", ticks, batch)
	}

	ctx, session, stop, err := boot(c, false)
	if err != nil {
		return err
	}
	defer stop()

	bar := pb.New(ticks)
	bar.SetWidth(80)
	bar.Output = os.Stderr
	bar.Start()

	start := time.Now()
	stats, err := session.Stats(ctx)
	if err != nil {
		return err
	}
	for done := 0; done < ticks; {
		if ctx.Err() != nil {
			break
		}
		n := min(batch, ticks-done)
		stats, err = session.Advance(ctx, uint64(n))
		if err != nil {
			return err
		}
		bar.Add(n)
		done += n
	}
	bar.Finish()

	printSummary(os.Stdout, session.Config(), stats, time.Since(start))
	return nil
}

func printSummary(w io.Writer, cfg *simulation.Config, s flock.Stats, elapsed time.Duration) {
	fmt.Fprint(w, chalk.Green)
	fmt.Fprintf(w, "=== %d ticks of %d boids in %s\n", s.Tick, s.Population, elapsed.Round(time.Millisecond))
	fmt.Fprint(w, chalk.Reset)
	fmt.Fprintf(w, "seed          %d\n", cfg.Seed)
	fmt.Fprintf(w, "ordering      %s\n", cfg.Ordering)
	fmt.Fprintf(w, "index         %s\n", cfg.NeighborIndex)
	fmt.Fprintf(w, "centroid      %s\n", s.Centroid)
	fmt.Fprintf(w, "spread        %.4f\n", s.MeanDistance)
	fmt.Fprintf(w, "mean speed    %.4f\n", s.MeanSpeed)
	fmt.Fprintf(w, "polarization  %s\n", chalk.Yellow.Color(fmt.Sprintf("%.4f", s.Polarization)))
	if elapsed > 0 && s.Tick > 0 {
		fmt.Fprintf(w, "rate          %.0f ticks/s\n", float64(s.Tick)/elapsed.Seconds())
	}
}
