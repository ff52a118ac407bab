package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/robfig/cron/v3"
)

// statsSnapshotSchedule fires daily at midnight.
const statsSnapshotSchedule = "0 0 0 * * *"

// StatsSnapshotJob periodically logs collection-wide parcel statistics
// so operators get a daily trail of volume, revenue and delivery speed
// without querying the dashboard.
type StatsSnapshotJob struct {
	handler queries.GetParcelStatsQueryHandler
	actor   queries.Actor
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatsSnapshotJob creates the daily statistics snapshot job. The
// job runs under a synthetic admin identity since the statistics query
// is admin-only.
func NewStatsSnapshotJob(handler queries.GetParcelStatsQueryHandler, logger *slog.Logger) (*StatsSnapshotJob, error) {
	actor, err := queries.NewActor(kernel.NewUUID(), user.RoleAdmin, "")
	if err != nil {
		return nil, err
	}

	return &StatsSnapshotJob{
		handler: handler,
		actor:   actor,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stats_snapshot_job"),
	}, nil
}

// Start schedules the daily snapshot.
func (j *StatsSnapshotJob) Start() error {
	_, err := j.cron.AddFunc(statsSnapshotSchedule, func() {
		ctx := context.Background()

		query, err := queries.NewGetParcelStatsQuery(j.actor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stats snapshot job failed to build query", "error", err)
			return
		}

		stats, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stats snapshot job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Parcel statistics snapshot",
			"total", stats.Total,
			"delivered", stats.Delivered,
			"inTransit", stats.InTransit,
			"pending", stats.Pending,
			"cancelled", stats.Cancelled,
			"monthlyRevenue", stats.MonthlyRevenue,
			"avgDeliveryTime", stats.AvgDeliveryTime,
		)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats snapshot job started (running daily at midnight)")
	return nil
}

// Stop stops the snapshot schedule.
func (j *StatsSnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stats snapshot job stopped")
}
