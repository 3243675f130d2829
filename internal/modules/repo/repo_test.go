package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	dbpkg "github.com/company-sys/backend/internal/infra/db"
	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive for the whole test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func date(s string) datatypes.Date {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(d)
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@demo.com", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProject(t *testing.T, db *gorm.DB, name string, pm *model.User, created time.Time) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, StartDate: date("2024-01-01"), CreatedAt: created}
	if pm != nil {
		p.PMID = &pm.ID
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedTask(t *testing.T, db *gorm.DB, p *model.Project, title string, assignee *model.User, created time.Time) *model.Task {
	t.Helper()
	task := &model.Task{ProjectID: p.ID, Title: title, Status: model.TaskStatusTodo, CreatedAt: created}
	if assignee != nil {
		task.AssignedToID = &assignee.ID
	}
	require.NoError(t, db.Omit("Project", "AssignedTo").Create(task).Error)
	return task
}

func principalOf(u *model.User) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func projectNames(items []model.Project) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func logAs(u *model.User, action string) AuditFunc[model.Project] {
	return func(before, after *model.Project) model.ActivityLog {
		target := after
		if target == nil {
			target = before
		}
		return model.ActivityLog{UserID: u.ID, Username: u.Username, Action: action + target.Name, TargetType: model.TargetProject, TargetID: target.ID}
	}
}

func TestProjectVisibility_Developer(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()

	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	other := seedUser(t, db, "dev2", model.RoleDeveloper)

	alpha := seedProject(t, db, "Alpha", nil, now.Add(-2*time.Hour))
	beta := seedProject(t, db, "Beta", nil, now.Add(-time.Hour))
	seedProject(t, db, "Gamma", nil, now)

	seedTask(t, db, alpha, "a1", dev, now)
	seedTask(t, db, alpha, "a2", dev, now)
	seedTask(t, db, beta, "b1", other, now)

	scope := policy.Scope(principalOf(dev), policy.KindProject)

	items, err := r.List(ctx, ProjectFilter{}, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, projectNames(items), "two matching tasks still yield one project")

	betaTask := seedTask(t, db, beta, "b2", dev, now)
	items, err = r.List(ctx, ProjectFilter{}, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha"}, projectNames(items))

	require.NoError(t, db.Delete(&model.Task{ID: betaTask.ID}).Error)
	items, err = r.List(ctx, ProjectFilter{}, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, projectNames(items))

	_, err = r.Get(ctx, beta.ID, scope)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectVisibility_PM(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()

	pm1 := seedUser(t, db, "pm1", model.RolePM)
	pm2 := seedUser(t, db, "pm2", model.RolePM)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	ceo := seedUser(t, db, "ceo", model.RoleCEO)

	alpha := seedProject(t, db, "Alpha", pm1, now.Add(-time.Hour))
	seedProject(t, db, "Beta", pm2, now)

	list := func(u *model.User) []string {
		items, err := r.List(ctx, ProjectFilter{}, policy.Scope(principalOf(u), policy.KindProject))
		require.NoError(t, err)
		return projectNames(items)
	}

	assert.Equal(t, []string{"Alpha"}, list(pm1))
	assert.Equal(t, []string{"Beta"}, list(pm2))
	assert.Equal(t, []string{"Beta", "Alpha"}, list(admin))
	assert.Equal(t, []string{"Beta", "Alpha"}, list(ceo))

	_, err := r.Update(ctx, alpha.ID, func(p *model.Project) error {
		p.PMID = &pm2.ID
		return nil
	}, logAs(admin, "Updated Project: "))
	require.NoError(t, err)

	assert.Empty(t, list(pm1))
	assert.Equal(t, []string{"Beta", "Alpha"}, list(pm2))
}

func TestProjectRepo_CreateWritesAuditAtomically(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	admin := seedUser(t, db, "admin", model.RoleAdmin)

	p := &model.Project{Name: "Alpha", StartDate: date("2024-01-01")}
	require.NoError(t, r.Create(ctx, p, logAs(admin, "Created Project: ")))

	var logs []model.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "Created Project: Alpha", logs[0].Action)
	assert.Equal(t, p.ID, logs[0].TargetID)
	assert.Equal(t, model.TargetProject, logs[0].TargetType)
}

func TestProjectRepo_AuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	admin := seedUser(t, db, "admin", model.RoleAdmin)

	require.NoError(t, db.Migrator().DropTable(&model.ActivityLog{}))

	err := r.Create(ctx, &model.Project{Name: "Alpha", StartDate: date("2024-01-01")}, logAs(admin, "Created Project: "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write activity log")

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProjectRepo_DeleteCascadesAndLogsPriorName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()

	admin := seedUser(t, db, "admin", model.RoleAdmin)
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	alpha := seedProject(t, db, "Alpha", nil, now)
	keep := seedProject(t, db, "Keep", nil, now)
	task := seedTask(t, db, alpha, "t1", dev, now)
	seedTask(t, db, keep, "k1", dev, now)
	require.NoError(t, db.Create(&model.TaskComment{TaskID: task.ID, UserID: dev.ID, Body: "hi"}).Error)
	require.NoError(t, db.Create(&model.AssetLink{ProjectID: alpha.ID, AssetType: model.AssetTypeDoc, S3Key: "k"}).Error)

	deleted, err := r.Delete(ctx, alpha.ID, logAs(admin, "Deleted Project: "))
	require.NoError(t, err)
	require.Len(t, deleted.Assets, 1)

	var logs []model.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "Deleted Project: Alpha", logs[0].Action)

	var tasks, assets, comments, projects int64
	db.Model(&model.Task{}).Where("project_id = ?", alpha.ID).Count(&tasks)
	db.Model(&model.AssetLink{}).Where("project_id = ?", alpha.ID).Count(&assets)
	db.Model(&model.TaskComment{}).Count(&comments)
	db.Model(&model.Project{}).Count(&projects)
	assert.Zero(t, tasks)
	assert.Zero(t, assets)
	assert.Zero(t, comments)
	assert.Equal(t, int64(1), projects)

	_, err = r.Delete(ctx, alpha.ID, logAs(admin, "Deleted Project: "))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()
	pm := seedUser(t, db, "pm1", model.RolePM)

	seedProject(t, db, "Alpha Portal", pm, now.Add(-time.Hour))
	b := seedProject(t, db, "Billing", nil, now)
	require.NoError(t, db.Model(b).Updates(map[string]interface{}{"description": "Invoices for the PORTAL", "start_date": date("2024-03-01")}).Error)

	tests := []struct {
		name string
		f    ProjectFilter
		want []string
	}{
		{"search name and description", ProjectFilter{Search: "portal"}, []string{"Billing", "Alpha Portal"}},
		{"by pm", ProjectFilter{PMID: &pm.ID}, []string{"Alpha Portal"}},
		{"by start date", ProjectFilter{StartDate: ptr(date("2024-01-01"))}, []string{"Alpha Portal"}},
		{"by other start date", ProjectFilter{StartDate: ptr(date("2024-03-01"))}, []string{"Billing"}},
		{"no match", ProjectFilter{Search: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.List(ctx, tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, projectNames(items))
		})
	}
}

func TestProjectRepo_SearchIsLiteral(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()

	seedProject(t, db, "Rollout 100% done", nil, now.Add(-2*time.Hour))
	seedProject(t, db, "ops_tools", nil, now.Add(-time.Hour))
	seedProject(t, db, `C:\build`, nil, now)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"percent", "%", []string{"Rollout 100% done"}},
		{"underscore", "_", []string{"ops_tools"}},
		{"backslash", `\`, []string{`C:\build`}},
		{"wildcard shape", "100_", []string{}},
		{"plain", "OPS", []string{"ops_tools"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.List(ctx, ProjectFilter{Search: tt.term})
			require.NoError(t, err)
			assert.Equal(t, tt.want, projectNames(items))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestProjectRepo_Children(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewProjectRepo(db)
	now := time.Now()

	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	other := seedUser(t, db, "dev2", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", nil, now)
	seedTask(t, db, p, "mine", dev, now)
	seedTask(t, db, p, "theirs", other, now)
	require.NoError(t, db.Create(&model.AssetLink{ProjectID: p.ID, AssetType: model.AssetTypeGithub, URL: "https://github.com/x/y"}).Error)

	devP := principalOf(dev)
	got, err := r.Get(ctx, p.ID,
		policy.Scope(devP, policy.KindProject),
		WithProjectChildren(policy.Scope(devP, policy.KindTask)))
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "mine", got.Tasks[0].Title)
	require.NotNil(t, got.Tasks[0].AssignedTo)
	assert.Equal(t, "dev1", got.Tasks[0].AssignedTo.Username)
	assert.Len(t, got.Assets, 1)
}

func TestTaskVisibility(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)
	now := time.Now()

	pm := seedUser(t, db, "pm1", model.RolePM)
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	ceo := seedUser(t, db, "ceo", model.RoleCEO)
	mine := seedProject(t, db, "Mine", pm, now)
	other := seedProject(t, db, "Other", nil, now)
	seedTask(t, db, mine, "m1", nil, now.Add(-time.Minute))
	seedTask(t, db, other, "o1", dev, now)

	titles := func(u *model.User) []string {
		items, err := r.List(ctx, TaskFilter{}, policy.Scope(principalOf(u), policy.KindTask))
		require.NoError(t, err)
		out := []string{}
		for _, it := range items {
			out = append(out, it.Title)
		}
		return out
	}

	assert.Equal(t, []string{"m1"}, titles(pm))
	assert.Equal(t, []string{"o1"}, titles(dev))
	assert.Equal(t, []string{"o1", "m1"}, titles(ceo))
}

func TestTaskRepo_Filters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)
	now := time.Now()

	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", nil, now)
	q := seedProject(t, db, "Beta", nil, now)

	t1 := seedTask(t, db, p, "Login page", dev, now.Add(-2*time.Minute))
	t2 := seedTask(t, db, p, "Billing export", nil, now.Add(-time.Minute))
	t3 := seedTask(t, db, q, "Deploy", dev, now)
	require.NoError(t, db.Model(t1).Updates(map[string]interface{}{"sprint": "S1", "due_date": date("2024-02-10")}).Error)
	require.NoError(t, db.Model(t2).Updates(map[string]interface{}{"sprint": "S2", "status": model.TaskStatusReview, "description": "csv for login audit"}).Error)
	require.NoError(t, db.Model(t3).Updates(map[string]interface{}{"sprint": "S1", "due_date": date("2024-03-01")}).Error)

	tests := []struct {
		name string
		f    TaskFilter
		want []string
	}{
		{"by project", TaskFilter{ProjectID: &p.ID}, []string{"Billing export", "Login page"}},
		{"by assignee", TaskFilter{AssignedToID: &dev.ID}, []string{"Deploy", "Login page"}},
		{"by status", TaskFilter{Status: ptr(model.TaskStatusReview)}, []string{"Billing export"}},
		{"by sprint", TaskFilter{Sprint: ptr("S1")}, []string{"Deploy", "Login page"}},
		{"search title and description", TaskFilter{Search: "LOGIN"}, []string{"Billing export", "Login page"}},
		{"search sprint", TaskFilter{Search: "s2"}, []string{"Billing export"}},
		{"due window", TaskFilter{DueAfter: ptr(date("2024-02-01")), DueBefore: ptr(date("2024-02-28"))}, []string{"Login page"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.List(ctx, tt.f)
			require.NoError(t, err)
			got := []string{}
			for _, it := range items {
				got = append(got, it.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskRepo_UpdateCapturesPriorRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)
	now := time.Now()
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", nil, now)
	task := seedTask(t, db, p, "t1", dev, now)

	var seenBefore, seenAfter model.TaskStatus
	before, after, err := r.Update(ctx, task.ID, func(t *model.Task) error {
		t.Status = model.TaskStatusDone
		return nil
	}, func(b, a *model.Task) model.ActivityLog {
		seenBefore, seenAfter = b.Status, a.Status
		return model.ActivityLog{UserID: dev.ID, Action: "moved", TargetType: model.TargetTask, TargetID: a.ID}
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusTodo, seenBefore)
	assert.Equal(t, model.TaskStatusDone, seenAfter)
	assert.Equal(t, model.TaskStatusTodo, before.Status)
	assert.Equal(t, model.TaskStatusDone, after.Status)

	stored, err := r.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, stored.Status)
}

func TestTaskRepo_UpdateApplyErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)
	now := time.Now()
	p := seedProject(t, db, "Alpha", nil, now)
	task := seedTask(t, db, p, "t1", nil, now)

	boom := errors.New("boom")
	_, _, err := r.Update(ctx, task.ID, func(t *model.Task) error {
		t.Title = "changed"
		return boom
	}, func(b, a *model.Task) model.ActivityLog { return model.ActivityLog{} })
	assert.ErrorIs(t, err, boom)

	stored, err := r.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "t1", stored.Title)

	var count int64
	db.Model(&model.ActivityLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestTaskRepo_CreateRequiresProject(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)

	err := r.Create(ctx, &model.Task{ProjectID: uuid.New(), Title: "orphan"}, func(b, a *model.Task) model.ActivityLog {
		return model.ActivityLog{}
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepo_ListDueBetween(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewTaskRepo(db)
	now := time.Now()
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", nil, now)

	due := seedTask(t, db, p, "due", dev, now)
	done := seedTask(t, db, p, "done", dev, now)
	unassigned := seedTask(t, db, p, "unassigned", nil, now)
	later := seedTask(t, db, p, "later", dev, now)
	db.Model(due).Update("due_date", date("2024-05-02"))
	db.Model(done).Updates(map[string]interface{}{"due_date": date("2024-05-02"), "status": model.TaskStatusDone})
	db.Model(unassigned).Update("due_date", date("2024-05-02"))
	db.Model(later).Update("due_date", date("2024-06-01"))

	items, err := r.ListDueBetween(ctx, date("2024-05-01"), date("2024-05-03"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "due", items[0].Title)
}

func TestCommentRepo_OrderAndAudit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewCommentRepo(db)
	now := time.Now()
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", nil, now)
	task := seedTask(t, db, p, "Fix login", dev, now)

	audit := func(_, c *model.TaskComment) model.ActivityLog {
		return model.ActivityLog{UserID: c.UserID, Action: "Commented on Task: " + c.Task.Title, TargetType: model.TargetTask, TargetID: c.TaskID}
	}
	first := &model.TaskComment{TaskID: task.ID, UserID: dev.ID, Body: "first", CreatedAt: now.Add(-time.Minute)}
	second := &model.TaskComment{TaskID: task.ID, UserID: dev.ID, Body: "second", CreatedAt: now}
	require.NoError(t, r.Create(ctx, second, audit))
	require.NoError(t, r.Create(ctx, first, audit))

	items, err := r.List(ctx, CommentFilter{TaskID: &task.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Body)
	assert.Equal(t, "second", items[1].Body)
	require.NotNil(t, items[0].User)
	assert.Equal(t, "dev1", items[0].User.Username)

	logs, err := NewActivityLogRepo(db).List(ctx, ActivityLogFilter{TargetType: model.TargetTask, TargetID: &task.ID})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Commented on Task: Fix login", logs[0].Action)
}

func TestNotificationRepo_OwnershipScope(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewNotificationRepo(db)
	owner := seedUser(t, db, "dev1", model.RoleDeveloper)
	admin := seedUser(t, db, "admin", model.RoleAdmin)

	n := &model.Notification{UserID: owner.ID, Message: "hello"}
	require.NoError(t, r.Create(ctx, n))

	ok, err := r.MarkRead(ctx, n.ID, policy.Scope(principalOf(admin), policy.KindNotification))
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := r.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)

	ok, err = r.MarkRead(ctx, n.ID, policy.Scope(principalOf(owner), policy.KindNotification))
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err = r.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)

	unread := false
	items, err := r.List(ctx, NotificationFilter{IsRead: &unread}, policy.Scope(principalOf(owner), policy.KindNotification))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNotificationRepo_MarkAllReadAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewNotificationRepo(db)
	owner := seedUser(t, db, "dev1", model.RoleDeveloper)
	other := seedUser(t, db, "dev2", model.RoleDeveloper)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Create(ctx, &model.Notification{UserID: owner.ID, Message: "m"}))
	}
	foreign := &model.Notification{UserID: other.ID, Message: "x"}
	require.NoError(t, r.Create(ctx, foreign))

	n, err := r.MarkAllRead(ctx, policy.Scope(principalOf(owner), policy.KindNotification))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	ok, err := r.Delete(ctx, foreign.ID, policy.Scope(principalOf(owner), policy.KindNotification))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Delete(ctx, foreign.ID, policy.Scope(principalOf(other), policy.KindNotification))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepo_DeleteClearsReferences(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewUserRepo(db)
	now := time.Now()

	pm := seedUser(t, db, "pm1", model.RolePM)
	dev := seedUser(t, db, "dev1", model.RoleDeveloper)
	p := seedProject(t, db, "Alpha", pm, now)
	task := seedTask(t, db, p, "t1", dev, now)
	require.NoError(t, db.Create(&model.Notification{UserID: dev.ID, Message: "m"}).Error)
	require.NoError(t, db.Create(&model.ActivityLog{UserID: dev.ID, Username: "dev1", Action: "x", TargetType: model.TargetTask, TargetID: task.ID}).Error)

	require.NoError(t, r.Delete(ctx, dev.ID))
	require.NoError(t, r.Delete(ctx, pm.ID))

	var storedTask model.Task
	require.NoError(t, db.First(&storedTask, "id = ?", task.ID).Error)
	assert.Nil(t, storedTask.AssignedToID)

	var storedProject model.Project
	require.NoError(t, db.First(&storedProject, "id = ?", p.ID).Error)
	assert.Nil(t, storedProject.PMID)

	var notes, logs int64
	db.Model(&model.Notification{}).Count(&notes)
	db.Model(&model.ActivityLog{}).Count(&logs)
	assert.Zero(t, notes)
	assert.Equal(t, int64(1), logs)

	assert.ErrorIs(t, r.Delete(ctx, dev.ID), gorm.ErrRecordNotFound)
}

func TestActivityLogRepo_NewestFirstAndFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewActivityLogRepo(db)
	now := time.Now()
	u1, u2 := uuid.New(), uuid.New()
	target := uuid.New()

	entries := []model.ActivityLog{
		{UserID: u1, Action: "one", TargetType: model.TargetProject, TargetID: target, CreatedAt: now.Add(-2 * time.Minute)},
		{UserID: u2, Action: "two", TargetType: model.TargetTask, TargetID: uuid.New(), CreatedAt: now.Add(-time.Minute)},
		{UserID: u1, Action: "three", TargetType: model.TargetProject, TargetID: target, CreatedAt: now},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	actions := func(f ActivityLogFilter) []string {
		items, err := r.List(ctx, f)
		require.NoError(t, err)
		out := []string{}
		for _, it := range items {
			out = append(out, it.Action)
		}
		return out
	}

	assert.Equal(t, []string{"three", "two", "one"}, actions(ActivityLogFilter{}))
	assert.Equal(t, []string{"three", "one"}, actions(ActivityLogFilter{TargetType: model.TargetProject, TargetID: &target}))
	assert.Equal(t, []string{"two"}, actions(ActivityLogFilter{UserID: &u2}))
}

func TestActivityLog_Immutable(t *testing.T) {
	db := newTestDB(t)
	entry := &model.ActivityLog{UserID: uuid.New(), Action: "x", TargetType: model.TargetTask, TargetID: uuid.New()}
	require.NoError(t, db.Create(entry).Error)

	entry.Action = "rewritten"
	assert.ErrorIs(t, db.Save(entry).Error, model.ErrActivityLogImmutable)
	assert.ErrorIs(t, db.Delete(entry).Error, model.ErrActivityLogImmutable)
}
