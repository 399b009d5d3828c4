// cmd/dogfight/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"slices"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-dogfight/pkg/autopilot"
	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file at -config")
	roster := flag.String("aircraft", "spitfire:aggressor,bf109:aggressor", "Comma separated type[:behavior] list")
	duration := flag.Duration("duration", 0, "Simulated time to run, zero runs until interrupted")
	report := flag.Duration("report", 5*time.Second, "Interval between status reports")
	realtime := flag.Bool("realtime", true, "Pace the simulation against the wall clock")
	flag.Parse()

	if *createDefault {
		path := *configPath
		if path == "" {
			path = "dogfight.json"
		}
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", path,
		)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if err := validation.ValidateSimConfig(cfg); err != nil {
		logger.Error(ctx, "Invalid configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logger = logging.NewLoggerWithWriter(os.Stdout, level)
	}

	slots, err := parseRoster(*roster)
	if err != nil {
		logger.Error(ctx, "Invalid aircraft roster", err,
			"aircraft", *roster,
		)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := runner{
		cfg:      cfg,
		logger:   logger,
		duration: *duration,
		report:   *report,
		realtime: *realtime,
	}
	if err := r.run(ctx, slots); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Simulation stopped")
}

// runner owns one headless simulation run
type runner struct {
	cfg      *config.SimConfig
	logger   *logging.Logger
	duration time.Duration
	report   time.Duration
	realtime bool

	hits      atomic.Int64
	destroyed atomic.Int64
	crashes   atomic.Int64
}

func (r *runner) run(ctx context.Context, slots []slot) error {
	sim, err := engine.NewSimulation(r.cfg, r.logger)
	if err != nil {
		return err
	}
	defer sim.Close()

	// Handlers run under the simulation lock; they only touch counters.
	sim.EventBus.Subscribe(event.ProjectileHit, func(event.Event) { r.hits.Add(1) })
	sim.EventBus.Subscribe(event.AircraftDestroyed, func(event.Event) { r.destroyed.Add(1) })
	sim.EventBus.Subscribe(event.AircraftCrashed, func(event.Event) { r.crashes.Add(1) })

	altitude := r.cfg.World.ResetAltitude
	pilots := make([]*autopilot.Pilot, 0, len(slots))
	for i, s := range slots {
		id, err := sim.AddAircraft(s.Type, spawnFor(i, len(slots), altitude))
		if err != nil {
			return err
		}
		home := mgl64.Vec3{0, altitude, 0}
		pilots = append(pilots, autopilot.NewPilot(id, s.Behavior, home, r.cfg.Simulation.Seed+uint64(i)))
	}

	r.logger.Info(ctx, "Simulation started",
		"run_id", sim.RunID,
		"aircraft", len(pilots),
		"time_step", r.cfg.Simulation.TimeStep,
		"realtime", r.realtime,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return r.loop(ctx, sim, pilots)
	})
	g.Go(func() error {
		return r.reporter(ctx, sim)
	})

	err = g.Wait()
	r.summary(ctx, sim)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loop feeds autopilot controls and steps the simulation until ctx ends or
// the requested simulated duration has elapsed
func (r *runner) loop(ctx context.Context, sim *engine.Simulation, pilots []*autopilot.Pilot) error {
	step := time.Duration(r.cfg.Simulation.TimeStep * float64(time.Second))

	var ticks <-chan time.Time
	if r.realtime {
		ticker := time.NewTicker(step)
		defer ticker.Stop()
		ticks = ticker.C
	}

	last := time.Now()
	for {
		if r.duration > 0 && sim.Time() >= r.duration {
			return nil
		}

		frame := r.cfg.Simulation.TimeStep
		if r.realtime {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticks:
				frame = now.Sub(last).Seconds()
				last = now
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		state := sim.Snapshot()
		for _, p := range pilots {
			if err := sim.SetControls(p.ID, p.Controls(state)); err != nil {
				return err
			}
		}
		sim.Step(frame)
	}
}

func (r *runner) reporter(ctx context.Context, sim *engine.Simulation) error {
	if r.report <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.report)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.status(ctx, sim.Snapshot())
		}
	}
}

func (r *runner) status(ctx context.Context, state engine.State) {
	r.logger.Info(ctx, "Simulation status",
		"tick", state.Tick,
		"sim_time", state.Time,
		"projectiles", len(state.Projectiles),
		"hits", r.hits.Load(),
	)
	for _, id := range sortedIDs(state.Aircraft) {
		a := state.Aircraft[id]
		r.logger.Debug(ctx, "Aircraft status",
			"aircraft_id", id,
			"type", a.Type,
			"status", a.Status,
			"altitude", a.State.Altitude,
			"airspeed", a.State.Airspeed,
			"health", a.State.Health,
			"ammunition", a.State.Ammunition,
		)
	}
}

func (r *runner) summary(ctx context.Context, sim *engine.Simulation) {
	r.logger.Info(ctx, "Simulation summary",
		"run_id", sim.RunID,
		"ticks", sim.Tick(),
		"sim_time", sim.Time(),
		"hits", r.hits.Load(),
		"destroyed", r.destroyed.Load(),
		"crashes", r.crashes.Load(),
	)
}

func sortedIDs(aircraft map[entity.ID]engine.AircraftView) []entity.ID {
	ids := make([]entity.ID, 0, len(aircraft))
	for id := range aircraft {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
