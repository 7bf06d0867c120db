package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TrainingCompleter is the part of the training service the job drives.
type TrainingCompleter interface {
	CompleteEnded(ctx context.Context) (int, error)
}

// TrainingStatusJob marks scheduled trainings whose end date passed as completed.
type TrainingStatusJob struct {
	trainings TrainingCompleter
	logger    *zap.Logger
	timeout   time.Duration
}

// NewTrainingStatusJob builds the job; each run is bounded by timeout.
func NewTrainingStatusJob(trainings TrainingCompleter, logger *zap.Logger, timeout time.Duration) *TrainingStatusJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TrainingStatusJob{trainings: trainings, logger: logger, timeout: timeout}
}

// Run implements cron.Job.
func (j *TrainingStatusJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	changed, err := j.trainings.CompleteEnded(ctx)
	if err != nil {
		j.logger.Warn("training status sweep failed", zap.Int("completed", changed), zap.Error(err))
		return
	}
	if changed > 0 {
		j.logger.Info("trainings completed", zap.Int("completed", changed))
	}
}
