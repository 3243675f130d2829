package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{svc: s}
}

type ListCommentsReq struct {
	Task string `form:"task" binding:"omitempty,uuid"`
}

// ListComments godoc
//
//	@Summary	List comments
//	@Tags		comment
//	@Produce	json
//	@Param		task	query	string	false	"Task ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]serializer.CommentView}
//	@Router		/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	req := ListCommentsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.CommentFilter{}
	f.TaskID, _ = optUUID(req.Task)
	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewCommentViews(items)})
}

type CreateCommentReq struct {
	Task string `json:"task" binding:"required,uuid"`
	Body string `json:"body" binding:"required" example:"Looks good to me"`
}

// CreateComment godoc
//
//	@Summary		Create comment
//	@Description	Comment on a task. The author is always the caller.
//	@Tags			comment
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateCommentReq	true	"CreateComment payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=serializer.CommentView}
//	@Router			/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	taskID, _ := optUUID(req.Task)
	cm, err := h.svc.Create(c.Request.Context(), principal(c), *taskID, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.NewCommentView(cm)})
}

// GetComment godoc
//
//	@Summary	Get comment
//	@Tags		comment
//	@Produce	json
//	@Param		id	path	string	true	"Comment ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=serializer.CommentView}
//	@Router		/comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cm, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewCommentView(cm)})
}

// DeleteComment godoc
//
//	@Summary		Delete comment
//	@Description	Only the author or an ADMIN may delete a comment
//	@Tags			comment
//	@Produce		json
//	@Param			id	path	string	true	"Comment ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
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
