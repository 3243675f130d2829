package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type ListTasksReq struct {
	Project    string `form:"project" binding:"omitempty,uuid"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Sprint     string `form:"sprint"`
	DueAfter   string `form:"due_after" binding:"omitempty,datetime=2006-01-02"`
	DueBefore  string `form:"due_before" binding:"omitempty,datetime=2006-01-02"`
	Search     string `form:"search"`
}

// ListTasks godoc
//
//	@Summary		List tasks
//	@Description	List tasks visible to the caller, newest first
//	@Tags			task
//	@Produce		json
//	@Param			project		query	string	false	"Project ID"	Format(uuid)
//	@Param			assigned_to	query	string	false	"Assignee user ID"	Format(uuid)
//	@Param			status		query	string	false	"Status"	Enums(TODO, IN_PROGRESS, REVIEW, DONE)
//	@Param			sprint		query	string	false	"Sprint label"
//	@Param			due_after	query	string	false	"Due on or after"	example:"2024-01-01"
//	@Param			due_before	query	string	false	"Due on or before"	example:"2024-01-31"
//	@Param			search		query	string	false	"Substring of title, description or sprint"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]serializer.TaskView}
//	@Router			/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	req := ListTasksReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.TaskFilter{Sprint: optString(req.Sprint), Search: req.Search}
	f.ProjectID, _ = optUUID(req.Project)
	f.AssignedToID, _ = optUUID(req.AssignedTo)
	f.DueAfter, _ = optDate(req.DueAfter)
	f.DueBefore, _ = optDate(req.DueBefore)
	if req.Status != "" {
		s := model.TaskStatus(req.Status)
		f.Status = &s
	}

	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewTaskViews(items)})
}

type CreateTaskReq struct {
	Project      string  `json:"project" binding:"required,uuid"`
	Title        string  `json:"title" binding:"required,max=255" example:"Login page"`
	Description  string  `json:"description"`
	AssignedTo   *string `json:"assigned_to" binding:"omitempty,uuid"`
	Status       string  `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE" example:"TODO"`
	Sprint       string  `json:"sprint" binding:"max=50" example:"Sprint 1"`
	DueDate      *string `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2024-02-15"`
	GithubPRLink string  `json:"github_pr_link" binding:"omitempty,url"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task under a project. ADMIN and PM only. The assignee must hold the DEV role.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=serializer.TaskView}
//	@Router			/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	projectID, err := uuid.Parse(req.Project)
	if err != nil {
		badRequest(c, err)
		return
	}
	in := service.CreateTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		Sprint:      req.Sprint,
		GithubPRURL: req.GithubPRLink,
	}
	if req.AssignedTo != nil {
		if in.AssignedToID, err = optUUID(*req.AssignedTo); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.DueDate != nil {
		if in.DueDate, err = optDate(*req.DueDate); err != nil {
			badRequest(c, err)
			return
		}
	}

	task, err := h.svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.NewTaskView(task)})
}

// GetTask godoc
//
//	@Summary		Get task
//	@Description	Get a task visible to the caller with its comments
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.TaskView}
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewTaskView(task)})
}

// UpdateTaskReq is a partial update. An empty assigned_to, due_date or
// github_pr_link clears the field, so those are parsed in the handler.
type UpdateTaskReq struct {
	Title        *string `json:"title" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	AssignedTo   *string `json:"assigned_to" format:"uuid"`
	Status       *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Sprint       *string `json:"sprint" binding:"omitempty,max=50"`
	DueDate      *string `json:"due_date" example:"2024-02-15"`
	GithubPRLink *string `json:"github_pr_link"`
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Partially update a task visible to the caller. Any role may update.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Task ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.TaskView}
//	@Router			/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req := UpdateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Sprint:      req.Sprint,
		GithubPRURL: req.GithubPRLink,
	}
	var err error
	if req.AssignedTo != nil {
		in.ClearAssignee = *req.AssignedTo == ""
		if in.AssignedToID, err = optUUID(*req.AssignedTo); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.Status != nil {
		s := model.TaskStatus(*req.Status)
		in.Status = &s
	}
	if req.DueDate != nil {
		in.ClearDueDate = *req.DueDate == ""
		if in.DueDate, err = optDate(*req.DueDate); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.GithubPRLink != nil {
		if err = checkURL(*req.GithubPRLink); err != nil {
			badRequest(c, err)
			return
		}
	}

	task, err := h.svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewTaskView(task)})
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Delete a task and its comments. ADMIN and PM only.
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), principal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
