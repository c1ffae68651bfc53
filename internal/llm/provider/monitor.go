package provider

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Monitor periodically probes every enumerated backend and reports the
// results through a recording callback (typically a prometheus gauge).
// Purely operational: routing never consults probe results.
type Monitor struct {
	router   *Router
	schedule string
	record   func(code string, available bool)
	log      zerolog.Logger
	cron     *cron.Cron
}

// NewMonitor creates a monitor running on the given cron schedule
// (e.g. "@every 5m").
func NewMonitor(router *Router, schedule string, record func(string, bool), log zerolog.Logger) *Monitor {
	return &Monitor{
		router:   router,
		schedule: schedule,
		record:   record,
		log:      log.With().Str("component", "provider-monitor").Logger(),
	}
}

// Start schedules the sweep and runs one immediately in the background.
func (m *Monitor) Start() error {
	m.cron = cron.New()
	if _, err := m.cron.AddFunc(m.schedule, m.sweep); err != nil {
		return err
	}
	m.cron.Start()
	go m.sweep()
	return nil
}

// Stop halts future sweeps. In-flight probes run to completion.
func (m *Monitor) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

// sweep probes all backends concurrently with a bounded deadline.
func (m *Monitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range Descriptors() {
		code := d.Code
		g.Go(func() error {
			ok := m.router.Probe(ctx, code)
			m.record(code, ok)
			m.log.Debug().Str("provider", code).Bool("available", ok).Msg("probe result")
			return nil
		})
	}
	_ = g.Wait()
}
