package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/opd-ai/go-dogfight/pkg/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics holds the simulation instruments. They are no-ops unless a global
// meter provider is installed.
type metrics struct {
	ticks             metric.Int64Counter
	projectilesFired  metric.Int64Counter
	projectileHits    metric.Int64Counter
	crashes           metric.Int64Counter
	activeProjectiles metric.Int64ObservableGauge
	registration      metric.Registration
}

func newMetrics(activeProjectiles func() int) (*metrics, error) {
	m := meter()
	out := &metrics{}

	var err error
	out.ticks, err = m.Int64Counter(
		"dogfight.ticks",
		metric.WithDescription("Simulation ticks executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	out.projectilesFired, err = m.Int64Counter(
		"dogfight.projectiles.fired",
		metric.WithDescription("Projectiles spawned"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fired counter: %w", err)
	}

	out.projectileHits, err = m.Int64Counter(
		"dogfight.projectiles.hits",
		metric.WithDescription("Projectiles that struck a target"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hit counter: %w", err)
	}

	out.crashes, err = m.Int64Counter(
		"dogfight.aircraft.crashes",
		metric.WithDescription("Aircraft ground impacts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating crash counter: %w", err)
	}

	out.activeProjectiles, err = m.Int64ObservableGauge(
		"dogfight.projectiles.active",
		metric.WithDescription("Projectiles currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active projectile gauge: %w", err)
	}

	out.registration, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(out.activeProjectiles, int64(activeProjectiles()))
			return nil
		},
		out.activeProjectiles,
	)
	if err != nil {
		return nil, fmt.Errorf("registering projectile callback: %w", err)
	}

	return out, nil
}

func weaponAttr(weapon string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("weapon", weapon))
}

func aircraftAttr(aircraft string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("aircraft", aircraft))
}

func (m *metrics) close() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
