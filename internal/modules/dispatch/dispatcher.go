package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomeDelivered    Outcome = "delivered"
	OutcomeUserNotFound Outcome = "user not found"
	OutcomeNoAddress    Outcome = "no address"
)

// Result is the soft outcome of a job. A missing user is a result, not an error.
type Result struct {
	Outcome Outcome
	Detail  string
}

type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

// Dispatcher executes jobs. Running the same notification job twice creates
// two rows.
type Dispatcher struct {
	users repo.UserRepo
	notes repo.NotificationRepo
	mail  Mailer
	log   *zap.Logger
}

func NewDispatcher(users repo.UserRepo, notes repo.NotificationRepo, mail Mailer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{users: users, notes: notes, mail: mail, log: log}
}

func (d *Dispatcher) DispatchNotification(ctx context.Context, userID uuid.UUID, message string) (Result, error) {
	u, res, err := d.lookup(ctx, userID)
	if u == nil {
		return res, err
	}

	n := &model.Notification{UserID: u.ID, Message: message}
	if err := d.notes.Create(ctx, n); err != nil {
		return Result{}, fmt.Errorf("create notification: %w", err)
	}
	d.log.Info("notification created", zap.String("user_id", u.ID.String()), zap.String("notification_id", n.ID.String()))
	return Result{Outcome: OutcomeDelivered, Detail: "Notification created for " + u.Username}, nil
}

func (d *Dispatcher) DispatchReminder(ctx context.Context, userID uuid.UUID, taskTitle, dueDate string) (Result, error) {
	u, res, err := d.lookup(ctx, userID)
	if u == nil {
		return res, err
	}
	if u.Email == "" {
		d.log.Warn("reminder skipped, user has no email", zap.String("user_id", u.ID.String()))
		return Result{Outcome: OutcomeNoAddress, Detail: "No email for " + u.Username}, nil
	}

	subject := "Reminder: " + taskTitle
	text := fmt.Sprintf("Hi %s, Task %s is due on %s.", u.Username, taskTitle, dueDate)
	if err := d.mail.Send(ctx, u.Email, subject, text); err != nil {
		return Result{}, fmt.Errorf("send reminder: %w", err)
	}
	d.log.Info("reminder sent", zap.String("user_id", u.ID.String()), zap.String("task", taskTitle))
	return Result{Outcome: OutcomeDelivered, Detail: "Email sent to " + u.Email}, nil
}

// lookup returns a nil user together with the result to report when the job
// cannot proceed.
func (d *Dispatcher) lookup(ctx context.Context, userID uuid.UUID) (*model.User, Result, error) {
	u, err := d.users.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d.log.Info("dispatch target missing", zap.String("user_id", userID.String()))
		return nil, Result{Outcome: OutcomeUserNotFound, Detail: "User not found"}, nil
	}
	if err != nil {
		return nil, Result{}, fmt.Errorf("load user: %w", err)
	}
	return u, Result{}, nil
}
