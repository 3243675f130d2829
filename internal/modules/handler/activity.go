package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: s}
}

type ListActivityReq struct {
	TargetType string `form:"target_type" binding:"omitempty,oneof=Project Task"`
	TargetID   string `form:"target_id" binding:"omitempty,uuid"`
	User       string `form:"user" binding:"omitempty,uuid"`
}

// ListActivity godoc
//
//	@Summary		List activity log
//	@Description	Read-only audit trail of project and task changes, newest first
//	@Tags			activity
//	@Produce		json
//	@Param			target_type	query	string	false	"Target type"	Enums(Project, Task)
//	@Param			target_id	query	string	false	"Target ID"	Format(uuid)
//	@Param			user		query	string	false	"Acting user ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]serializer.ActivityView}
//	@Router			/activity-log [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	req := ListActivityReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.ActivityLogFilter{TargetType: req.TargetType}
	f.TargetID, _ = optUUID(req.TargetID)
	f.UserID, _ = optUUID(req.User)
	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewActivityViews(items)})
}
