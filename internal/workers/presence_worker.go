package workers

import (
	"context"
	"time"

	"fursa_backend/internal/logger"

	"gorm.io/gorm"
)

const presenceWorkerName = "presence"

// StaleMarker - часть ProviderRepository, нужная воркеру
type StaleMarker interface {
	MarkStaleOffline(db *gorm.DB, before time.Time) (int64, error)
}

// RunRecorder - учет прогонов в метриках (metrics.Manager)
type RunRecorder interface {
	RecordWorkerRun(worker string, affected int64, err error)
}

type PresenceWorker struct {
	db           *gorm.DB
	providers    StaleMarker
	recorder     RunRecorder
	offlineAfter time.Duration
	interval     time.Duration
	now          func() time.Time
}

func NewPresenceWorker(db *gorm.DB, providers StaleMarker, recorder RunRecorder, offlineAfter, interval time.Duration) *PresenceWorker {
	return &PresenceWorker{
		db:           db,
		providers:    providers,
		recorder:     recorder,
		offlineAfter: offlineAfter,
		interval:     interval,
		now:          time.Now,
	}
}

// Start запускает фоновую задачу; останавливается по ctx
func (w *PresenceWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

// loop переводит в offline исполнителей, которых не было дольше offlineAfter
func (w *PresenceWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Presence worker started", "interval", w.interval.String(), "offline_after", w.offlineAfter.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Presence worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход
func (w *PresenceWorker) RunOnce(ctx context.Context) int64 {
	before := w.now().Add(-w.offlineAfter)
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}
	affected, err := w.providers.MarkStaleOffline(db, before)

	logger.WorkerLog(presenceWorkerName, "mark_stale_offline", affected, err)
	if w.recorder != nil {
		w.recorder.RecordWorkerRun(presenceWorkerName, affected, err)
	}
	if err == nil && affected > 0 {
		logger.Info("Providers marked offline", "count", affected)
	}
	return affected
}
