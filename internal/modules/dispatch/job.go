package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationJob struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

type ReminderJob struct {
	UserID    uuid.UUID `json:"user_id"`
	TaskTitle string    `json:"task_title"`
	DueDate   string    `json:"due_date"` // YYYY-MM-DD
}

const dateLayout = "2006-01-02"

// JSONPublisher is the producer side of one queue.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, v interface{}) error
}

// Producer turns enqueue calls into queue messages.
type Producer struct {
	notifications JSONPublisher
	reminders     JSONPublisher
}

func NewProducer(notifications, reminders JSONPublisher) *Producer {
	return &Producer{notifications: notifications, reminders: reminders}
}

func (p *Producer) EnqueueNotification(ctx context.Context, userID uuid.UUID, message string) error {
	if err := p.notifications.PublishJSON(ctx, NotificationJob{UserID: userID, Message: message}); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

func (p *Producer) EnqueueReminder(ctx context.Context, userID uuid.UUID, taskTitle string, due time.Time) error {
	job := ReminderJob{UserID: userID, TaskTitle: taskTitle, DueDate: due.Format(dateLayout)}
	if err := p.reminders.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}
