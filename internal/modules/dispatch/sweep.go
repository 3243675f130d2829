package dispatch

import (
	"context"
	"time"

	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ReminderEnqueuer interface {
	EnqueueReminder(ctx context.Context, userID uuid.UUID, taskTitle string, due time.Time) error
}

// ReminderMarks dedupes reminders per task and due date across sweeps,
// restarts and replicas.
type ReminderMarks interface {
	Mark(ctx context.Context, taskID uuid.UUID, due time.Time) (bool, error)
	Unmark(ctx context.Context, taskID uuid.UUID, due time.Time) error
}

// Sweeper periodically enqueues reminders for open assigned tasks that fall
// due within lead of today. Each task is reminded once per due date.
type Sweeper struct {
	tasks    repo.TaskRepo
	jobs     ReminderEnqueuer
	marks    ReminderMarks
	interval time.Duration
	lead     time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewSweeper(tasks repo.TaskRepo, jobs ReminderEnqueuer, marks ReminderMarks, interval, lead time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{tasks: tasks, jobs: jobs, marks: marks, interval: interval, lead: lead, log: log, now: time.Now}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("reminder sweep started", zap.Duration("interval", s.interval), zap.Duration("lead", s.lead))
	for {
		if _, err := s.Sweep(ctx); err != nil {
			s.log.Error("reminder sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			s.log.Info("reminder sweep stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep enqueues one reminder per matching task not yet reminded for its
// current due date and returns how many were enqueued. A failed enqueue is
// logged and left unmarked for the next sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	due, err := s.tasks.ListDueBetween(ctx, datatypes.Date(today), datatypes.Date(today.Add(s.lead)))
	if err != nil {
		return 0, err
	}

	sent, skipped := 0, 0
	for _, t := range due {
		if t.AssignedToID == nil || t.DueDate == nil {
			continue
		}
		dueAt := time.Time(*t.DueDate)
		first, err := s.marks.Mark(ctx, t.ID, dueAt)
		if err != nil {
			// an unreachable mark store falls back to sending
			s.log.Warn("reminder mark failed", zap.String("task_id", t.ID.String()), zap.Error(err))
			first = true
		}
		if !first {
			skipped++
			continue
		}
		if err := s.jobs.EnqueueReminder(ctx, *t.AssignedToID, t.Title, dueAt); err != nil {
			s.log.Warn("enqueue reminder failed", zap.String("task_id", t.ID.String()), zap.Error(err))
			if uerr := s.marks.Unmark(ctx, t.ID, dueAt); uerr != nil {
				s.log.Warn("reminder unmark failed", zap.String("task_id", t.ID.String()), zap.Error(uerr))
			}
			continue
		}
		sent++
	}
	s.log.Info("reminder sweep done",
		zap.Int("tasks", len(due)),
		zap.Int("enqueued", sent),
		zap.Int("already_reminded", skipped))
	return sent, nil
}
