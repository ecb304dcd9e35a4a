package cronjobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"citypulse/db"
	"citypulse/media"
)

const frameDirMaxAge = 30 * time.Minute

// InitCronJobs starts the background maintenance schedules: sweeping
// stale frame directories left behind by interrupted uploads, and
// logging a periodic snapshot of the incident store.
func InitCronJobs(store *db.Store, log *slog.Logger) *cron.Cron {
	c := cron.New()

	// Frame sweep: run every 10 minutes at 0 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		if removed := media.SweepFrameDirs(frameDirMaxAge); removed > 0 {
			log.Info("frame sweep removed stale directories", "count", removed)
		}
	})
	if err != nil {
		log.Error("scheduling frame sweep failed", "error", err)
	}

	// Store snapshot: run every 10 minutes at 5 minute mark
	_, err = c.AddFunc("5-59/10 * * * *", func() {
		stats := store.Stats()
		log.Info("incident store snapshot",
			"total", stats.Total,
			"auto_approved", stats.AutoApproved,
			"needs_human_review", stats.NeedsHumanReview,
		)
	})
	if err != nil {
		log.Error("scheduling store snapshot failed", "error", err)
	}

	c.Start()
	return c
}
