package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

// TypeCompleteExpired marks pending bookings whose end time has passed as completed.
const TypeCompleteExpired = "booking:complete-expired"

// NewCompleteExpiredTask builds the sweep task. Overlapping runs are dropped by the uniqueness lock.
func NewCompleteExpiredTask(interval time.Duration) (*asynq.Task, []asynq.Option) {
	if interval <= 0 {
		interval = time.Minute
	}
	opts := []asynq.Option{
		asynq.MaxRetry(1),
		asynq.Timeout(interval),
		asynq.Unique(interval),
	}
	return asynq.NewTask(TypeCompleteExpired, nil), opts
}
