package dispatch

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Worker decodes queue messages into jobs and runs them. A decode failure or
// a dispatcher error is returned so the consumer can nack the delivery.
type Worker struct {
	d   *Dispatcher
	log *zap.Logger
}

func NewWorker(d *Dispatcher, log *zap.Logger) *Worker {
	return &Worker{d: d, log: log}
}

func (w *Worker) HandleNotification(ctx context.Context, body []byte) error {
	var job NotificationJob
	if err := sonic.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode notification job: %w", err)
	}
	res, err := w.d.DispatchNotification(ctx, job.UserID, job.Message)
	if err != nil {
		return err
	}
	w.log.Debug("notification job done", zap.String("outcome", string(res.Outcome)), zap.String("detail", res.Detail))
	return nil
}

func (w *Worker) HandleReminder(ctx context.Context, body []byte) error {
	var job ReminderJob
	if err := sonic.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode reminder job: %w", err)
	}
	res, err := w.d.DispatchReminder(ctx, job.UserID, job.TaskTitle, job.DueDate)
	if err != nil {
		return err
	}
	w.log.Debug("reminder job done", zap.String("outcome", string(res.Outcome)), zap.String("detail", res.Detail))
	return nil
}
