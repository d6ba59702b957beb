// Command travelglobe shows the travel globe in a window, or renders it
// headless to PNG snapshots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync/atomic"

	"travelglobe/app"
	"travelglobe/geo"
	"travelglobe/globeview"
	"travelglobe/hal"
	"travelglobe/internal/buildinfo"
	"travelglobe/internal/config"
	"travelglobe/internal/debugsrv"
	"travelglobe/internal/logging"
	"travelglobe/internal/metrics"
	"travelglobe/texture"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath  = flag.String("config", "", "YAML config file (default $"+config.EnvFile+").")
		headless = flag.Bool("headless", false, "Run without a window.")
		hz       = flag.Int("hz", 0, "Tick rate in headless mode.")
		ticks    = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		snapshot = flag.String("snapshot", "", "PNG written by headless runs.")
		addr     = flag.String("metrics-addr", "", "Serve /metrics and /snapshot.png on this address.")
		version  = flag.Bool("version", false, "Print the version and exit.")
	)
	flag.Parse()
	if *version {
		fmt.Println(buildinfo.String())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		cfg *config.Config
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.LoadFile(ctx, *cfgPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Headless = *headless
		case "hz":
			cfg.Hz = *hz
		case "ticks":
			cfg.Ticks = *ticks
		case "snapshot":
			cfg.SnapshotPath = *snapshot
		case "metrics-addr":
			cfg.MetricsAddr = *addr
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.ConsoleLog)
	dests, err := cfg.DestinationList()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info().Str("build", buildinfo.String()).Uint64("seed", seed).Int("destinations", len(dests)).Msg("starting")

	appCfg := app.Config{
		View: globeview.Options{
			TextureWidth:  cfg.TextureWidth,
			TextureHeight: cfg.TextureHeight,
			Synthesizer:   texture.NewSynthesizer(texture.WithSeed(seed)),
			AsyncTexture:  cfg.AsyncTexture,
			StarSource:    rand.NewPCG(seed, ^seed),
			Destinations:  dests,
			Filter:        cfg.FilterValue(),
			OnDestinationClick: func(d geo.Destination) {
				log.Info().Str("destination", d.Name).Str("description", d.Description).Msg("destination clicked")
			},
			Logger:  log,
			Metrics: rec,
		},
	}

	var src appSource
	if cfg.MetricsAddr != "" {
		h := debugsrv.NewRouter(&src, metrics.Handler(reg), log)
		go func() {
			if err := debugsrv.Serve(ctx, cfg.MetricsAddr, h, log); err != nil {
				log.Error().Err(err).Msg("debug server stopped")
			}
		}()
	}

	newApp := func(h hal.HAL) func() error {
		a, err := app.New(ctx, h, appCfg)
		if err != nil {
			return func() error { return err }
		}
		src.p.Store(a)
		return a.Step
	}

	runHeadless := cfg.Headless
	if !runHeadless {
		err = hal.RunWindow(ctx, hal.WindowConfig{
			Width:  cfg.Width,
			Height: cfg.Height,
			TPS:    cfg.Hz,
			Title:  "Travel Globe (" + buildinfo.Short() + ")",
		}, newApp)
		if errors.Is(err, hal.ErrNoDisplay) {
			log.Warn().Err(err).Msg("falling back to headless")
			runHeadless = true
		}
	}
	if runHeadless {
		appCfg.SnapshotPath = cfg.SnapshotPath
		appCfg.SnapshotEvery = uint64(cfg.SnapshotEvery)
		appCfg.ExitOnPanic = true
		err = hal.RunHeadless(ctx, hal.HeadlessConfig{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Hz:        cfg.Hz,
			Ticks:     cfg.Ticks,
			FixedStep: cfg.Ticks > 0,
		}, newApp)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, src.close(log))
}

// appSource hands the running app to the debug server once the host has
// created it.
type appSource struct {
	p atomic.Pointer[app.App]
}

func (s *appSource) Snapshot() (image.Image, error) {
	if a := s.p.Load(); a != nil {
		return a.Snapshot()
	}
	return nil, debugsrv.ErrNotReady
}

func (s *appSource) Texture() (image.Image, error) {
	if a := s.p.Load(); a != nil {
		return a.Texture()
	}
	return nil, debugsrv.ErrNotReady
}

func (s *appSource) Stats() any {
	if a := s.p.Load(); a != nil {
		return a.Stats()
	}
	return nil
}

func (s *appSource) close(log zerolog.Logger) error {
	a := s.p.Swap(nil)
	if a == nil {
		return nil
	}
	if err := a.Close(); err != nil {
		return err
	}
	if path := a.SnapshotPath(); path != "" {
		log.Info().Str("path", path).Msg("snapshot written")
	}
	return a.Err()
}
