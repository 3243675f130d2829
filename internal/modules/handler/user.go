package handler

import (
	"net/http"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

type ListUsersReq struct {
	Role   string `form:"role" binding:"omitempty,oneof=ADMIN CEO PM DEV"`
	Search string `form:"search"`
}

// ListUsers godoc
//
//	@Summary	List users
//	@Tags		user
//	@Produce	json
//	@Param		role	query	string	false	"Role"	Enums(ADMIN, CEO, PM, DEV)
//	@Param		search	query	string	false	"Substring of username or email"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]serializer.UserView}
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	req := ListUsersReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.UserFilter{Search: req.Search}
	if req.Role != "" {
		r := model.Role(req.Role)
		f.Role = &r
	}
	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewUserViews(items)})
}

// Me godoc
//
//	@Summary	Current user
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=serializer.UserView}
//	@Router		/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	p := principal(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return
	}
	u, err := h.svc.Get(c.Request.Context(), p, p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewUserView(u)})
}

// GetUser godoc
//
//	@Summary	Get user
//	@Tags		user
//	@Produce	json
//	@Param		id	path	string	true	"User ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=serializer.UserView}
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewUserView(u)})
}

type CreateUserReq struct {
	Username string `json:"username" binding:"required,max=150" example:"dev1"`
	Email    string `json:"email" binding:"omitempty,email" example:"dev1@company.local"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN CEO PM DEV" example:"DEV"`
}

// CreateUser godoc
//
//	@Summary		Create user
//	@Description	ADMIN only. Role defaults to DEV.
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateUserReq	true	"CreateUser payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=serializer.UserView}
//	@Router			/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	req := CreateUserReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.svc.Create(c.Request.Context(), principal(c), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.NewUserView(u)})
}

type UpdateUserReq struct {
	Username *string `json:"username" binding:"omitempty,max=150"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN CEO PM DEV"`
}

// UpdateUser godoc
//
//	@Summary		Update user
//	@Description	ADMIN only
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"User ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateUserReq	true	"UpdateUser payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.UserView}
//	@Router			/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req := UpdateUserReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := service.UpdateUserInput{Username: req.Username, Email: req.Email}
	if req.Role != nil {
		r := model.Role(*req.Role)
		in.Role = &r
	}
	u, err := h.svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewUserView(u)})
}

// DeleteUser godoc
//
//	@Summary		Delete user
//	@Description	ADMIN only
//	@Tags			user
//	@Produce		json
//	@Param			id	path	string	true	"User ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
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
