package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/serene-app/serene/internal/api"
	"github.com/serene-app/serene/internal/app/engagement"
	"github.com/serene-app/serene/internal/app/points"
	"github.com/serene-app/serene/internal/app/wellness"
	"github.com/serene-app/serene/internal/domain"
	"github.com/serene-app/serene/internal/health"
	_ "github.com/serene-app/serene/internal/infra/metrics" // Register Prometheus metrics
	"github.com/serene-app/serene/internal/infra/sqlite"
)

// Daemon is the core Serene runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Tracker   *engagement.StreakTracker
	Evaluator *engagement.BadgeEvaluator
	Notifier  *engagement.Notifier
	Ledger    *points.Ledger
	Wellness  *wellness.Service
	Health    *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	// Open SQLite
	db, err := sqlite.Open(sereneHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	// Engagement engine: notifier → evaluator → ledger → tracker.
	// The tracker triggers the evaluator after every persisted activity.
	d.Notifier = engagement.NewNotifierWithPolicy(db, domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	})
	d.Evaluator = engagement.NewBadgeEvaluator(db, d.Notifier)
	d.Ledger = points.NewLedger(db)
	d.Tracker = engagement.NewStreakTracker(db, engagement.Config{
		PointsPerActivity: cfg.Engagement.PointsPerActivity,
		SameDayPoints:     cfg.Engagement.SameDayPoints,
	}, d.Ledger, d.Evaluator)

	// Wellness records report into the tracker
	d.Wellness = wellness.NewService(db, d.Tracker)

	// Health checker
	d.Health = health.NewChecker(db, sereneHome())

	// API server
	srv := api.NewServer(db, d.Wellness, d.Tracker, d.Notifier, d.Ledger)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// SeedBadges installs the default badge catalog. Idempotent.
func (d *Daemon) SeedBadges() (int, error) {
	catalog := engagement.DefaultCatalog()
	for _, b := range catalog {
		if err := d.DB.UpsertBadge(b); err != nil {
			return 0, fmt.Errorf("seed badge %s: %w", b.ID, err)
		}
	}
	return len(catalog), nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Serene serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
