package service

import (
	"fmt"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func ProjectCreatedText(name string) string { return "Created Project: " + name }
func ProjectUpdatedText(name string) string { return "Updated Project: " + name }
func ProjectDeletedText(name string) string { return "Deleted Project: " + name }

func TaskCreatedText(title, project string) string {
	return fmt.Sprintf("Created Task: %s under Project: %s", title, project)
}

func TaskDeletedText(title string) string { return "Deleted Task: " + title }
func CommentedText(title string) string   { return "Commented on Task: " + title }

// TaskUpdatedText narrates a task update. A change between two known statuses
// is phrased as a move; everything else is a plain update.
func TaskUpdatedText(title string, from, to model.TaskStatus) string {
	if from != "" && from != to {
		return fmt.Sprintf("Moved Task: %s from %s to %s", title, from, to)
	}
	return "Updated Task: " + title
}

func auditEntry(p *policy.Principal, action, targetType string, targetID uuid.UUID) model.ActivityLog {
	return model.ActivityLog{
		UserID:     p.UserID,
		Username:   p.Username,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
}

func projectAudit(p *policy.Principal) func(before, after *model.Project) model.ActivityLog {
	return func(before, after *model.Project) model.ActivityLog {
		switch {
		case before == nil:
			return auditEntry(p, ProjectCreatedText(after.Name), model.TargetProject, after.ID)
		case after == nil:
			return auditEntry(p, ProjectDeletedText(before.Name), model.TargetProject, before.ID)
		}
		return auditEntry(p, ProjectUpdatedText(after.Name), model.TargetProject, after.ID)
	}
}

func taskAudit(p *policy.Principal) func(before, after *model.Task) model.ActivityLog {
	return func(before, after *model.Task) model.ActivityLog {
		switch {
		case before == nil:
			project := ""
			if after.Project != nil {
				project = after.Project.Name
			}
			return auditEntry(p, TaskCreatedText(after.Title, project), model.TargetTask, after.ID)
		case after == nil:
			return auditEntry(p, TaskDeletedText(before.Title), model.TargetTask, before.ID)
		}
		entry := auditEntry(p, TaskUpdatedText(after.Title, before.Status, after.Status), model.TargetTask, after.ID)
		if before.Status != "" && before.Status != after.Status {
			entry.Details = datatypes.JSONMap{"from": string(before.Status), "to": string(after.Status)}
		}
		return entry
	}
}

func commentAudit(p *policy.Principal) func(_, after *model.TaskComment) model.ActivityLog {
	return func(_, after *model.TaskComment) model.ActivityLog {
		title := ""
		if after.Task != nil {
			title = after.Task.Title
		}
		return auditEntry(p, CommentedText(title), model.TargetTask, after.TaskID)
	}
}

func assignedTaskText(title string) string { return "You have been assigned to Task: " + title }

func assignedProjectText(name string) string { return "You have been assigned as PM of Project: " + name }

func movedTaskText(title string, from, to model.TaskStatus) string {
	return fmt.Sprintf("Task: %s moved from %s to %s", title, from, to)
}
