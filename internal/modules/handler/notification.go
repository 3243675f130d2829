package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

type ListNotificationsReq struct {
	IsRead *bool `form:"is_read"`
}

// ListNotifications godoc
//
//	@Summary		List notifications
//	@Description	List the caller's own notifications, newest first
//	@Tags			notification
//	@Produce		json
//	@Param			is_read	query	bool	false	"Filter by read state"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]serializer.NotificationView}
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	req := ListNotificationsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), principal(c), repo.NotificationFilter{IsRead: req.IsRead})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewNotificationViews(items)})
}

// GetNotification godoc
//
//	@Summary	Get notification
//	@Tags		notification
//	@Produce	json
//	@Param		id	path	string	true	"Notification ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=serializer.NotificationView}
//	@Router		/notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewNotificationView(n)})
}

type StatusResp struct {
	Status string `json:"status"`
}

type MarkAllReadResp struct {
	Status  string `json:"status"`
	Updated int64  `json:"updated"`
}

// MarkRead godoc
//
//	@Summary	Mark notification read
//	@Tags		notification
//	@Produce	json
//	@Param		id	path	string	true	"Notification ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=handler.StatusResp}
//	@Router		/notifications/{id}/mark_read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), principal(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: StatusResp{Status: "notification marked as read"}})
}

// MarkAllRead godoc
//
//	@Summary	Mark all notifications read
//	@Tags		notification
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=handler.MarkAllReadResp}
//	@Router		/notifications/mark_all_read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context(), principal(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: MarkAllReadResp{Status: "all notifications marked as read", Updated: n}})
}

// DeleteNotification godoc
//
//	@Summary	Delete notification
//	@Tags		notification
//	@Produce	json
//	@Param		id	path	string	true	"Notification ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response
//	@Router		/notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
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
