package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFilter struct {
	Role   *model.Role
	Search string
}

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, f UserFilter) ([]model.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
}

// Delete clears the user's PM and assignee references, drops rows the user
// owns, then removes the user. Audit entries are left untouched.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&model.User{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Project{}).Where("pm_id = ?", id).Update("pm_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Task{}).Where("assigned_to_id = ?", id).Update("assigned_to_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{ID: id}).Error
	})
}

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	return &u, r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	return &u, r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
}

func (r *userRepo) List(ctx context.Context, f UserFilter) ([]model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	q = search(q, f.Search, "username", "email")

	var items []model.User
	return items, q.Order("username ASC").Find(&items).Error
}
