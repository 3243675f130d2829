package policy

import (
	"github.com/company-sys/backend/internal/modules/model"
	"gorm.io/gorm"
)

// Scope returns the row filter for kind as a gorm scope. Kinds without a
// visibility rule are returned unfiltered. A nil principal sees nothing.
func Scope(p *Principal, kind Kind) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db.Where("1 = 0")
		}
		switch kind {
		case KindProject:
			return scopeProjects(db, p)
		case KindTask:
			return scopeTasks(db, p)
		case KindNotification:
			return db.Where("notifications.user_id = ?", p.UserID)
		}
		return db
	}
}

func scopeProjects(db *gorm.DB, p *Principal) *gorm.DB {
	switch p.Role {
	case model.RoleAdmin, model.RoleCEO:
		return db
	case model.RolePM:
		return db.Where("projects.pm_id = ?", p.UserID)
	case model.RoleDeveloper:
		// subquery keeps each project once however many tasks match
		return db.Where("projects.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&model.Task{}).
				Select("project_id").
				Where("assigned_to_id = ?", p.UserID))
	}
	return db.Where("1 = 0")
}

func scopeTasks(db *gorm.DB, p *Principal) *gorm.DB {
	switch p.Role {
	case model.RoleAdmin, model.RoleCEO:
		return db
	case model.RolePM:
		return db.Where("tasks.project_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&model.Project{}).
				Select("id").
				Where("pm_id = ?", p.UserID))
	case model.RoleDeveloper:
		return db.Where("tasks.assigned_to_id = ?", p.UserID)
	}
	return db.Where("1 = 0")
}
