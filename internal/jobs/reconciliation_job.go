package jobs

import (
	"context"
	"log/slog"
	"strings"

	"parcels/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const DefaultReconcileSchedule = "0 * * * * *"

type InconsistencyFinder interface {
	Handle(ctx context.Context, q queries.FindInconsistenciesQuery) ([]queries.FindInconsistenciesQueryResponse, error)
}

// ReconciliationJob periodically looks for the states a partially applied
// saga leaves behind. Findings are logged at WARN; nothing is repaired.
type ReconciliationJob struct {
	finder   InconsistencyFinder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewReconciliationJob(finder InconsistencyFinder, schedule string, logger *slog.Logger) *ReconciliationJob {
	if strings.TrimSpace(schedule) == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ReconciliationJob{
		finder:   finder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

func (j *ReconciliationJob) Name() string {
	return "reconciliation"
}

// Start schedules the scan.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single scan and returns how many inconsistencies it
// logged.
func (j *ReconciliationJob) RunOnce(ctx context.Context) (int, error) {
	found, err := j.finder.Handle(ctx, queries.NewFindInconsistenciesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation scan failed", "error", err)
		return 0, err
	}

	for _, f := range found {
		j.logger.WarnContext(ctx, "Inconsistency detected",
			"kind", f.Kind,
			"subject", f.Subject,
			"detail", f.Detail,
		)
	}
	if len(found) > 0 {
		j.logger.WarnContext(ctx, "Reconciliation scan finished with findings", "count", len(found))
	}

	return len(found), nil
}

// Stop waits for a running scan to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
