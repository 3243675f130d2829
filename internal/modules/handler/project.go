package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	svc    service.ProjectService
	assets service.AssetService
}

func NewProjectHandler(s service.ProjectService, assets service.AssetService) *ProjectHandler {
	return &ProjectHandler{svc: s, assets: assets}
}

func (h *ProjectHandler) view(c *gin.Context) serializer.URLFunc {
	return func(a *model.AssetLink) string { return h.assets.DownloadURL(c.Request.Context(), a) }
}

type ListProjectsReq struct {
	PM        string `form:"pm" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Search    string `form:"search"`
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects visible to the caller, newest first. Each project embeds its visible tasks and its assets.
//	@Tags			project
//	@Produce		json
//	@Param			pm			query	string	false	"PM user ID"	Format(uuid)
//	@Param			start_date	query	string	false	"Exact start date"	example:"2024-01-01"
//	@Param			end_date	query	string	false	"Exact end date"	example:"2024-12-31"
//	@Param			search		query	string	false	"Substring of name or description"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]serializer.ProjectView}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.ProjectFilter{Search: req.Search}
	f.PMID, _ = optUUID(req.PM)
	f.StartDate, _ = optDate(req.StartDate)
	f.EndDate, _ = optDate(req.EndDate)

	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewProjectViews(items, h.view(c))})
}

type CreateProjectReq struct {
	Name        string  `json:"name" binding:"required,max=255" example:"Alpha"`
	Description string  `json:"description" example:"Customer portal rewrite"`
	StartDate   string  `json:"start_date" binding:"required,datetime=2006-01-02" example:"2024-01-01"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02" example:"2024-12-31"`
	PM          *string `json:"pm" binding:"omitempty,uuid"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project. ADMIN and PM only. The PM, when given, must hold the PM role.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=serializer.ProjectView}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, err)
		return
	}
	in := service.CreateProjectInput{Name: req.Name, Description: req.Description, StartDate: start}
	if req.EndDate != nil {
		if in.EndDate, err = optDate(*req.EndDate); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.PM != nil {
		if in.PMID, err = optUUID(*req.PM); err != nil {
			badRequest(c, err)
			return
		}
	}

	project, err := h.svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.NewProjectView(project, h.view(c))})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a project visible to the caller
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.ProjectView}
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewProjectView(project, h.view(c))})
}

// UpdateProjectReq is a partial update. An empty end_date or pm clears the
// field, so those two are parsed in the handler rather than by binding tags.
type UpdateProjectReq struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" example:"2024-12-31"`
	PM          *string `json:"pm" format:"uuid"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Partially update a project. ADMIN and PM only; the project must be visible to the caller.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.ProjectView}
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := service.UpdateProjectInput{Name: req.Name, Description: req.Description}
	var err error
	if req.StartDate != nil {
		if in.StartDate, err = optDate(*req.StartDate); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.EndDate != nil {
		in.ClearEndDate = *req.EndDate == ""
		if in.EndDate, err = optDate(*req.EndDate); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.PM != nil {
		in.ClearPM = *req.PM == ""
		if in.PMID, err = optUUID(*req.PM); err != nil {
			badRequest(c, err)
			return
		}
	}

	project, err := h.svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewProjectView(project, h.view(c))})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project with its tasks, comments and assets. ADMIN only.
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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
