// Package wire assembles the application. Construction is explicit: New
// builds every adapter and service from the configuration and hands back a
// Runtime the caller owns and closes. There are no package-level singletons;
// tests build their own runtimes over in-memory adapters.
package wire

import (
	"database/sql"
	"fmt"

	"github.com/example/casetrack/internal/adapters/bolt"
	"github.com/example/casetrack/internal/adapters/console"
	"github.com/example/casetrack/internal/adapters/memory"
	"github.com/example/casetrack/internal/adapters/redisbus"
	"github.com/example/casetrack/internal/adapters/sqlite"
	"github.com/example/casetrack/internal/app"
	"github.com/example/casetrack/internal/config"
	"github.com/example/casetrack/internal/db"
	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/ports/primary"
	"github.com/example/casetrack/internal/ports/secondary"
)

// Runtime holds the wired services and the resources behind them.
type Runtime struct {
	Config  *config.Config
	Log     *logging.Logger
	Store   primary.Store
	Tracker primary.Tracker
	Backup  primary.Backup
	Sync    primary.Sync
	Mirror  primary.Mirror

	bytes    secondary.ByteStore
	bus      secondary.Bus
	mirrorDB *sql.DB
}

// New wires the application from cfg. The bolt store is always opened; the
// redis bus and the sqlite mirror are wired only when configured.
func New(cfg *config.Config) (*Runtime, error) {
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	bytes, err := bolt.Open(cfg.DataDir, "store.db")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	rt := &Runtime{Config: cfg, Log: log, bytes: bytes}

	notifier := console.NewNotifier()
	store := app.NewStoreService(bytes, notifier, log)
	rt.Store = store

	if cfg.RedisAddr != "" {
		bus, err := redisbus.New(log, cfg.RedisAddr, cfg.SyncChannel)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connecting sync bus: %w", err)
		}
		rt.bus = bus
	} else {
		rt.bus = memory.NewBus()
	}
	rt.Sync = app.NewSyncService(rt.bus, log, cfg.Staleness())

	var mirror *app.MirrorService
	if cfg.MirrorPath != "" {
		conn, err := db.Open(cfg.MirrorPath)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("opening mirror: %w", err)
		}
		if err := db.EnsureBuilding(conn, cfg.BuildingID, cfg.BuildingID); err != nil {
			conn.Close()
			rt.Close()
			return nil, fmt.Errorf("preparing mirror: %w", err)
		}
		rt.mirrorDB = conn
		mirror = app.NewMirrorService(store,
			sqlite.NewApplicantRepository(conn),
			sqlite.NewTemplateRepository(conn),
			sqlite.NewStageInfoRepository(conn),
			log, cfg.BuildingID)
	} else {
		mirror = app.NewMirrorService(store, nil, nil, nil, log, cfg.BuildingID)
	}
	rt.Mirror = mirror

	rt.Tracker = app.NewTrackerService(store, rt.Sync, mirror, log)
	rt.Backup = app.NewBackupService(store, bytes, notifier, log, cfg.BackupInterval(), cfg.BackupRetain, cfg.ExportDir())

	return rt, nil
}

// Close releases the runtime's resources. Safe to call on a partially
// constructed runtime.
func (r *Runtime) Close() {
	if r.bus != nil {
		_ = r.bus.Close()
	}
	if r.mirrorDB != nil {
		_ = r.mirrorDB.Close()
	}
	if r.bytes != nil {
		_ = r.bytes.Close()
	}
	if r.Log != nil {
		r.Log.Sync()
	}
}
