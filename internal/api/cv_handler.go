package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"phCV/internal/cv"
	"phCV/internal/database"
	"phCV/internal/errcode"
	"phCV/internal/render"
)

// CVHandler 负责 CV 文档的读写与分区操作。
type CVHandler struct {
	db *gorm.DB
}

// NewCVHandler 构造 CVHandler。
func NewCVHandler(db *gorm.DB) *CVHandler {
	return &CVHandler{db: db}
}

var errRevisionConflict = errors.New("revision conflict")

type cvResponse struct {
	Content   json.RawMessage `json:"content"`
	Revision  int64           `json:"revision"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newCVResponse(doc database.CVDocument) cvResponse {
	return cvResponse{
		Content:   json.RawMessage(doc.Content),
		Revision:  doc.Revision,
		UpdatedAt: doc.UpdatedAt,
	}
}

// GetCV 返回用户当前的 CV，尚未保存过时返回种子文档（revision=0）。
func (h *CVHandler) GetCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var doc database.CVDocument
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			raw, encErr := cv.Encode(cv.Default())
			if encErr != nil {
				Internal(c, "failed to encode default cv")
				return
			}
			c.JSON(http.StatusOK, cvResponse{Content: raw, Revision: 0})
			return
		}
		Internal(c, "failed to query cv")
		return
	}

	c.JSON(http.StatusOK, newCVResponse(doc))
}

type saveCVRequest struct {
	Content  datatypes.JSON `json:"content" binding:"required"`
	Revision int64          `json:"revision"`
}

// SaveCV 保存整份 CV。已有文档时按乐观并发检查：提交的 revision 必须等于当前值。
func (h *CVHandler) SaveCV(c *gin.Context) {
	var req saveCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	// 畸形内容回落到种子文档；保存前统一补齐自定义分区的排序记录。
	data := cv.SyncCustomSections(cv.Decode(req.Content))
	raw, err := cv.Encode(data)
	if err != nil {
		Internal(c, "failed to encode cv")
		return
	}

	ctx := c.Request.Context()
	var doc database.CVDocument
	err = h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = database.CVDocument{
			UserID:   userID,
			Content:  datatypes.JSON(raw),
			Revision: 1,
		}
		if err := h.db.WithContext(ctx).Create(&doc).Error; err != nil {
			Internal(c, "failed to create cv")
			return
		}
	case err != nil:
		Internal(c, "failed to query cv")
		return
	default:
		result := h.db.WithContext(ctx).
			Model(&database.CVDocument{}).
			Where("user_id = ? AND revision = ?", userID, req.Revision).
			Updates(map[string]any{
				"content":  datatypes.JSON(raw),
				"revision": gorm.Expr("revision + 1"),
			})
		if result.Error != nil {
			Internal(c, "failed to update cv")
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusConflict, gin.H{
				"error": "revision conflict",
				"code":  errcode.RevisionConflict,
			})
			return
		}
		if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
			Internal(c, "failed to reload cv")
			return
		}
	}

	c.JSON(http.StatusOK, newCVResponse(doc))
}

type addSectionRequest struct {
	SectionType string `json:"sectionType" binding:"required"`
}

// AddSection 追加一个自定义分区并排在末尾。
func (h *CVHandler) AddSection(c *gin.Context) {
	var req addSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	style, err := cv.ParseStyle(req.SectionType)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	h.mutate(c, func(data cv.CVData) cv.CVData {
		return cv.AddCustomSection(data, style)
	})
}

// RemoveSection 删除一个自定义分区；内建分区不可删除。
func (h *CVHandler) RemoveSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "missing section id")
		return
	}

	h.mutate(c, func(data cv.CVData) cv.CVData {
		return cv.RemoveCustomSection(data, id)
	})
}

type updateSectionRequest struct {
	Title       *string `json:"title"`
	SectionType *string `json:"sectionType"`
	Enabled     *bool   `json:"enabled"`
}

// UpdateSection 修改分区标题、展示形态或启用状态。
func (h *CVHandler) UpdateSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "missing section id")
		return
	}

	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Title == nil && req.SectionType == nil && req.Enabled == nil {
		BadRequest(c, "nothing to update")
		return
	}

	var style cv.SectionStyle
	if req.SectionType != nil {
		parsed, err := cv.ParseStyle(*req.SectionType)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		style = parsed
	}

	h.mutate(c, func(data cv.CVData) cv.CVData {
		if req.Title != nil {
			data = cv.RenameSection(data, id, *req.Title)
		}
		if req.SectionType != nil {
			data = cv.RetypeSection(data, id, style)
		}
		if req.Enabled != nil {
			data = cv.ToggleSection(data, id, *req.Enabled)
		}
		return data
	})
}

type moveSectionRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// MoveSection 将分区上移或下移一位，边界处为幂等空操作。
func (h *CVHandler) MoveSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "missing section id")
		return
	}

	var req moveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	direction, err := cv.ParseDirection(req.Direction)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	h.mutate(c, func(data cv.CVData) cv.CVData {
		return cv.MoveSection(data, id, direction)
	})
}

// RenderCV 渲染用户当前 CV 的 HTML（target=preview|print）。
func (h *CVHandler) RenderCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	target, err := render.ParseTarget(c.DefaultQuery("target", string(render.TargetPreview)))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	data, err := h.loadOrDefault(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "failed to load cv")
		return
	}

	html, err := render.Render(data, target)
	if err != nil {
		Internal(c, "failed to render cv")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *CVHandler) loadOrDefault(ctx context.Context, userID uint) (cv.CVData, error) {
	var doc database.CVDocument
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cv.Default(), nil
	}
	if err != nil {
		return cv.CVData{}, err
	}
	return cv.Decode(doc.Content), nil
}

// mutate 加载当前文档（缺省时用种子文档），应用变换并以 revision+1 保存。
func (h *CVHandler) mutate(c *gin.Context, fn func(cv.CVData) cv.CVData) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	doc, err := h.applyMutation(ctx, userID, fn)
	if err != nil {
		if errors.Is(err, errRevisionConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "revision conflict",
				"code":  errcode.RevisionConflict,
			})
			return
		}
		Internal(c, "failed to update cv")
		return
	}

	c.JSON(http.StatusOK, newCVResponse(doc))
}

func (h *CVHandler) applyMutation(ctx context.Context, userID uint, fn func(cv.CVData) cv.CVData) (database.CVDocument, error) {
	var doc database.CVDocument
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		data := cv.SyncCustomSections(fn(cv.Default()))
		raw, encErr := cv.Encode(data)
		if encErr != nil {
			return database.CVDocument{}, encErr
		}
		doc = database.CVDocument{
			UserID:   userID,
			Content:  datatypes.JSON(raw),
			Revision: 1,
		}
		if err := h.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return database.CVDocument{}, err
		}
		return doc, nil
	case err != nil:
		return database.CVDocument{}, err
	}

	data := cv.SyncCustomSections(fn(cv.Decode(doc.Content)))
	raw, err := cv.Encode(data)
	if err != nil {
		return database.CVDocument{}, err
	}

	result := h.db.WithContext(ctx).
		Model(&database.CVDocument{}).
		Where("user_id = ? AND revision = ?", userID, doc.Revision).
		Updates(map[string]any{
			"content":  datatypes.JSON(raw),
			"revision": gorm.Expr("revision + 1"),
		})
	if result.Error != nil {
		return database.CVDocument{}, result.Error
	}
	if result.RowsAffected == 0 {
		return database.CVDocument{}, errRevisionConflict
	}

	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		return database.CVDocument{}, err
	}
	return doc, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
