// internal/workers/schedule.go
package workers

import (
	"github.com/hibiken/asynq"
)

// MovementPruneSchedule runs the ledger retention pass nightly, off-peak.
const MovementPruneSchedule = "0 3 * * *"

// RegisterPeriodicTasks registers the recurring maintenance tasks on the
// scheduler. Cron specs are validated at registration time.
func RegisterPeriodicTasks(scheduler *asynq.Scheduler) error {
	_, err := scheduler.Register(
		MovementPruneSchedule,
		asynq.NewTask(TypeMovementPrune, nil),
		asynq.Queue("low"),
	)
	return err
}
