package service

import (
	"testing"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskUpdatedText(t *testing.T) {
	tests := []struct {
		name string
		from model.TaskStatus
		to   model.TaskStatus
		want string
	}{
		{"moved", model.TaskStatusTodo, model.TaskStatusInProgress, "Moved Task: Login from TODO to IN_PROGRESS"},
		{"moved backwards", model.TaskStatusDone, model.TaskStatusReview, "Moved Task: Login from DONE to REVIEW"},
		{"same status", model.TaskStatusReview, model.TaskStatusReview, "Updated Task: Login"},
		{"no previous status", "", model.TaskStatusDone, "Updated Task: Login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaskUpdatedText("Login", tt.from, tt.to))
			assert.Equal(t, tt.want, TaskUpdatedText("Login", tt.from, tt.to))
		})
	}
}

func TestTaskAudit(t *testing.T) {
	p := principal(model.RolePM)
	id := uuid.New()

	created := taskAudit(p)(nil, &model.Task{ID: id, Title: "Login", Project: &model.Project{Name: "Alpha"}})
	assert.Equal(t, "Created Task: Login under Project: Alpha", created.Action)
	assert.Equal(t, model.TargetTask, created.TargetType)
	assert.Equal(t, id, created.TargetID)
	assert.Equal(t, p.UserID, created.UserID)
	assert.Equal(t, p.Username, created.Username)

	moved := taskAudit(p)(
		&model.Task{ID: id, Title: "Login", Status: model.TaskStatusTodo},
		&model.Task{ID: id, Title: "Login", Status: model.TaskStatusDone},
	)
	assert.Equal(t, "Moved Task: Login from TODO to DONE", moved.Action)
	assert.Equal(t, "TODO", moved.Details["from"])
	assert.Equal(t, "DONE", moved.Details["to"])

	edited := taskAudit(p)(
		&model.Task{ID: id, Title: "Login", Status: model.TaskStatusTodo},
		&model.Task{ID: id, Title: "Login v2", Status: model.TaskStatusTodo},
	)
	assert.Equal(t, "Updated Task: Login v2", edited.Action)
	assert.Nil(t, edited.Details)

	deleted := taskAudit(p)(&model.Task{ID: id, Title: "Login"}, nil)
	assert.Equal(t, "Deleted Task: Login", deleted.Action)
}

func TestProjectAudit(t *testing.T) {
	p := principal(model.RoleAdmin)
	before := &model.Project{ID: uuid.New(), Name: "Alpha"}
	after := &model.Project{ID: before.ID, Name: "Beta"}

	assert.Equal(t, "Created Project: Alpha", projectAudit(p)(nil, before).Action)
	assert.Equal(t, "Updated Project: Beta", projectAudit(p)(before, after).Action)
	assert.Equal(t, "Deleted Project: Alpha", projectAudit(p)(before, nil).Action)
	assert.Equal(t, model.TargetProject, projectAudit(p)(nil, before).TargetType)
}

func TestCommentAudit(t *testing.T) {
	p := principal(model.RoleDeveloper)
	taskID := uuid.New()
	entry := commentAudit(p)(nil, &model.TaskComment{TaskID: taskID, Task: &model.Task{Title: "Login"}})
	assert.Equal(t, "Commented on Task: Login", entry.Action)
	assert.Equal(t, model.TargetTask, entry.TargetType)
	assert.Equal(t, taskID, entry.TargetID)
}
