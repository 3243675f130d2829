package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/serializer"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	svc service.AssetService
}

func NewAssetHandler(s service.AssetService) *AssetHandler {
	return &AssetHandler{svc: s}
}

func (h *AssetHandler) url(c *gin.Context) serializer.URLFunc {
	return func(a *model.AssetLink) string { return h.svc.DownloadURL(c.Request.Context(), a) }
}

type ListAssetsReq struct {
	Project   string `form:"project" binding:"omitempty,uuid"`
	AssetType string `form:"asset_type" binding:"omitempty,oneof=GITHUB GDRIVE DOC"`
	Search    string `form:"search"`
}

// ListAssets godoc
//
//	@Summary		List assets
//	@Description	List asset links, newest first
//	@Tags			asset
//	@Produce		json
//	@Param			project		query	string	false	"Project ID"	Format(uuid)
//	@Param			asset_type	query	string	false	"Asset type"	Enums(GITHUB, GDRIVE, DOC)
//	@Param			search		query	string	false	"Substring of description or url"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]serializer.AssetView}
//	@Router			/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	req := ListAssetsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	f := repo.AssetFilter{Search: req.Search}
	f.ProjectID, _ = optUUID(req.Project)
	if req.AssetType != "" {
		t := model.AssetType(req.AssetType)
		f.AssetType = &t
	}

	items, err := h.svc.List(c.Request.Context(), principal(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewAssetViews(items, h.url(c))})
}

type CreateAssetReq struct {
	Project     string `form:"project" json:"project" binding:"required,uuid"`
	AssetType   string `form:"asset_type" json:"asset_type" binding:"required,oneof=GITHUB GDRIVE DOC" example:"GITHUB"`
	URL         string `form:"url" json:"url" binding:"omitempty,url" example:"https://github.com/acme/alpha"`
	Description string `form:"description" json:"description" binding:"max=255"`
}

// CreateAsset godoc
//
//	@Summary		Create asset
//	@Description	Link a URL to a project, or upload a file with multipart/form-data
//	@Tags			asset
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			payload	body		handler.CreateAssetReq	false	"CreateAsset payload (JSON)"
//	@Param			file	formData	file					false	"Uploaded file (multipart)"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=serializer.AssetView}
//	@Router			/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req := CreateAssetReq{}
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	projectID, _ := optUUID(req.Project)
	in := service.CreateAssetInput{
		ProjectID:   *projectID,
		AssetType:   model.AssetType(req.AssetType),
		URL:         req.URL,
		Description: req.Description,
	}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			badRequest(c, err)
			return
		}
		in.File = fh
	}

	a, err := h.svc.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.NewAssetView(a, h.url(c))})
}

// GetAsset godoc
//
//	@Summary		Get asset
//	@Tags			asset
//	@Produce		json
//	@Param			id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.AssetView}
//	@Router			/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewAssetView(a, h.url(c))})
}

type UpdateAssetReq struct {
	AssetType   *string `json:"asset_type" binding:"omitempty,oneof=GITHUB GDRIVE DOC"`
	URL         *string `json:"url" binding:"omitempty,url"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// UpdateAsset godoc
//
//	@Summary		Update asset
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Asset ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateAssetReq	true	"UpdateAsset payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=serializer.AssetView}
//	@Router			/assets/{id} [patch]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req := UpdateAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := service.UpdateAssetInput{URL: req.URL, Description: req.Description}
	if req.AssetType != nil {
		t := model.AssetType(*req.AssetType)
		in.AssetType = &t
	}
	a, err := h.svc.Update(c.Request.Context(), principal(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewAssetView(a, h.url(c))})
}

// DeleteAsset godoc
//
//	@Summary		Delete asset
//	@Description	Delete an asset link and any uploaded file behind it
//	@Tags			asset
//	@Produce		json
//	@Param			id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
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
