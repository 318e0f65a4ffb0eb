package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/beach-terminal/internal/api"
	"github.com/ngmaloney/beach-terminal/internal/beaches"
	"github.com/ngmaloney/beach-terminal/internal/cache"
	"github.com/ngmaloney/beach-terminal/internal/conditions"
	"github.com/ngmaloney/beach-terminal/internal/config"
	"github.com/ngmaloney/beach-terminal/internal/database"
	"github.com/ngmaloney/beach-terminal/internal/logging"
	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/noaa"
	"github.com/ngmaloney/beach-terminal/internal/openmeteo"
	"github.com/ngmaloney/beach-terminal/internal/refresh"
	"github.com/ngmaloney/beach-terminal/internal/tides"
	"github.com/ngmaloney/beach-terminal/internal/ui"
	"github.com/ngmaloney/beach-terminal/internal/waterquality"
)

// planFlag accepts both --plan and --plan=ACTIVITY
type planFlag struct {
	set      bool
	activity models.Activity
}

func (p *planFlag) String() string {
	if !p.set {
		return ""
	}
	return p.activity.String()
}

func (p *planFlag) Set(v string) error {
	p.set = true
	if v == "true" {
		p.activity = models.Swimming
		return nil
	}
	a, err := models.ParseActivity(v)
	if err != nil {
		return err
	}
	p.activity = a
	return nil
}

func (p *planFlag) IsBoolFlag() bool { return true }

func main() {
	var plan planFlag
	flag.Var(&plan, "plan", "Start in the trip planner, optionally for an activity (swim, sun, sail, sunset, peace)")
	configPath := flag.String("config", config.DefaultPath, "Path to a YAML config file")
	serveAddr := flag.String("serve", "", "Serve the JSON API on this address instead of starting the terminal UI")
	logStderr := flag.Bool("log-stderr", false, "Log to stderr instead of the log file")
	flag.Parse()

	if err := run(plan, *configPath, *serveAddr, *logStderr); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(plan planFlag, configPath, serveAddr string, logStderr bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logStderr {
		cfg.Log.File = ""
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	loc := cfg.Location()
	var tideSource tides.Source = tides.NewStaticSource(loc)
	list := beaches.All()
	if cfg.Tides.Provider == "noaa" {
		tideSource = noaa.NewTideClient(loc)
	}
	if cfg.Tides.Station != "" {
		for i := range list {
			list[i].TideStationID = cfg.Tides.Station
		}
	}

	svc := conditions.NewService(conditions.Options{
		Weather: openmeteo.NewClient(loc, cfg.HTTPTimeout),
		Water:   waterquality.NewClient(loc, cfg.HTTPTimeout),
		Tides:   tideSource,
		Cache:   store,
		TTL: conditions.TTLs{
			Weather:      cfg.TTL.Weather,
			WaterQuality: cfg.TTL.WaterQuality,
			Tides:        cfg.TTL.Tides,
		},
		Location: loc,
		Logger:   logger.With("component", "conditions"),
	})

	sched := refresh.New(svc, list, refresh.Intervals{
		Weather:      cfg.Refresh.Weather,
		WaterQuality: cfg.Refresh.WaterQuality,
	}, loc, logger)
	defer sched.Stop()

	if serveAddr != "" {
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		return api.NewServer(svc, logger, loc).ListenAndServe(ctx, serveAddr)
	}

	p := tea.NewProgram(ui.NewModel(ui.Options{
		Loader:   svc,
		Beaches:  list,
		Activity: plan.activity,
		Plan:     plan.set,
		Location: loc,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	sched.OnRefresh = func(src conditions.Source, err error) {
		p.Send(ui.RefreshedMsg{Source: src, Err: err})
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// openStore opens the configured cache backend
func openStore(ctx context.Context, cfg *config.Config) (cache.Store, func(), error) {
	if cfg.Cache.Backend == "valkey" {
		client, err := cache.DialValkey(ctx, cfg.Cache.ValkeyAddr)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewValkeyStore(client, cfg.Cache.Prefix), client.Close, nil
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}
