// internal/workers/alert_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/shopadmin-be/internal/workers"
	"github.com/dcastano/shopadmin-be/test/helpers"
)

func lowStockTask(t *testing.T) *asynq.Task {
	t.Helper()

	payload, err := json.Marshal(workers.LowStockAlertPayload{
		ProductID: "3b5a0b4e-8c2f-4f1a-9d6e-1f2a3b4c5d6e",
		Name:      "Canvas Tote Bag",
		SKU:       "CTB-0001",
		Stock:     3,
	})
	require.NoError(t, err)
	return asynq.NewTask(workers.TypeLowStockAlert, payload)
}

func TestAlertProcessor_HandleLowStockAlert(t *testing.T) {
	t.Run("development_logs_instead_of_sending", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		cfg.App.Environment = "development"
		processor := workers.NewAlertProcessor(cfg, helpers.TestLogger())

		assert.NoError(t, processor.HandleLowStockAlert(context.Background(), lowStockTask(t)))
	})

	t.Run("unconfigured_relay_does_not_fail_the_task", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		cfg.App.Environment = "production"
		cfg.Inventory.SMTPHost = ""
		processor := workers.NewAlertProcessor(cfg, helpers.TestLogger())

		assert.NoError(t, processor.HandleLowStockAlert(context.Background(), lowStockTask(t)))
	})

	t.Run("malformed_payload_rejected", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		processor := workers.NewAlertProcessor(cfg, helpers.TestLogger())

		task := asynq.NewTask(workers.TypeLowStockAlert, []byte("{not json"))
		assert.Error(t, processor.HandleLowStockAlert(context.Background(), task))
	})
}

func TestAlertProcessor_SendEmail(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.App.Environment = "development"
	processor := workers.NewAlertProcessor(cfg, helpers.TestLogger())

	payload, err := json.Marshal(workers.EmailPayload{
		To:      "inventory@test.local",
		Subject: "Weekly summary",
		Body:    "All stock levels healthy.",
	})
	require.NoError(t, err)

	task := asynq.NewTask(workers.TypeEmailSend, payload)
	assert.NoError(t, processor.SendEmail(context.Background(), task))
}

func TestRegisterPeriodicTasks(t *testing.T) {
	// Registration validates the cron spec without touching redis
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: "localhost:6379"}, nil)

	require.NoError(t, workers.RegisterPeriodicTasks(scheduler))
}
