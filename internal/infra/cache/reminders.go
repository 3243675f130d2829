package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ReminderMarks records which (task, due date) pairs already had a reminder
// enqueued, shared by every worker replica. Moving the due date yields a new
// pair and so a new reminder.
type ReminderMarks struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReminderMarks(rdb *redis.Client, ttl time.Duration) *ReminderMarks {
	return &ReminderMarks{rdb: rdb, ttl: ttl}
}

func reminderKey(taskID uuid.UUID, due time.Time) string {
	return "reminded:" + taskID.String() + ":" + due.UTC().Format("2006-01-02")
}

// Mark claims the pair and reports whether this caller was first.
func (m *ReminderMarks) Mark(ctx context.Context, taskID uuid.UUID, due time.Time) (bool, error) {
	return m.rdb.SetNX(ctx, reminderKey(taskID, due), 1, m.ttl).Result()
}

// Unmark releases a claim whose enqueue failed so the next sweep retries it.
func (m *ReminderMarks) Unmark(ctx context.Context, taskID uuid.UUID, due time.Time) error {
	return m.rdb.Del(ctx, reminderKey(taskID, due)).Err()
}
