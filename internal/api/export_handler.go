package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"phCV/internal/api/middleware"
	"phCV/internal/cache"
	"phCV/internal/cv"
	"phCV/internal/database"
	"phCV/internal/errcode"
	"phCV/internal/pdf"
	"phCV/internal/photos"
	"phCV/internal/render"
	"phCV/internal/tasks"
)

// ExportHandler 负责同步导出 PDF 与异步导出任务的入队。
type ExportHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	store       cache.Store
	storage     photos.ObjectReader
	presigner   presignedURLGenerator

	// 便于测试替换无头浏览器调用。
	generatePDF func(html string) ([]byte, error)
}

type presignedURLGenerator interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

// NewExportHandler 构造 ExportHandler。
func NewExportHandler(db *gorm.DB, asynqClient *asynq.Client, store cache.Store, storage photos.ObjectReader, presigner presignedURLGenerator) *ExportHandler {
	return &ExportHandler{
		db:          db,
		asynqClient: asynqClient,
		store:       store,
		storage:     storage,
		presigner:   presigner,
		generatePDF: pdf.FromHTML,
	}
}

type exportRequest struct {
	CacheID string         `json:"cacheId"`
	Content datatypes.JSON `json:"content"`
}

// Export 同步渲染并返回 PDF 字节。
// 数据来源优先级：cacheId > 请求体内容 > 用户已保存的文档。
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	// 空请求体也是合法的：回落到已保存文档。
	var req exportRequest
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	var data cv.CVData
	switch {
	case req.CacheID != "":
		cached, err := h.store.Get(ctx, req.CacheID)
		if err != nil {
			if errors.Is(err, cache.ErrNotFound) {
				NotFound(c, "cache entry not found or expired")
				return
			}
			Internal(c, "failed to read cv cache")
			return
		}
		data = cached
	case len(req.Content) > 0:
		data = cv.Decode(req.Content)
	default:
		var doc database.CVDocument
		err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			data = cv.Default()
		} else if err != nil {
			Internal(c, "failed to load cv")
			return
		} else {
			data = cv.Decode(doc.Content)
		}
	}

	removedKey, err := photos.InlineProfileImage(ctx, h.storage, userID, &data)
	if err != nil {
		logger.Error("inline profile image failed", slog.Any("error", err))
		Internal(c, "failed to prepare profile image")
		return
	}
	if removedKey != "" {
		logger.Warn("profile image missing, exporting without photo",
			slog.String("object_key", removedKey),
			slog.Int("code", errcode.ResourceMissing),
		)
	}

	html, err := render.Render(data, render.TargetPrint)
	if err != nil {
		Internal(c, "failed to render cv")
		return
	}

	pdfBytes, err := h.generatePDF(html)
	if err != nil {
		logger.Error("generate pdf failed", slog.Any("error", err))
		Internal(c, "failed to generate pdf")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cv.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ExportAsync 将导出任务入队并立即返回 202。
func (h *ExportHandler) ExportAsync(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var doc database.CVDocument
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Conflict(c, "cv must be saved before async export")
			return
		}
		Internal(c, "failed to load cv")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(doc.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	if err := h.db.WithContext(ctx).Model(&doc).Update("status", "pending").Error; err != nil {
		Internal(c, "failed to mark export pending")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 返回最近一次异步导出 PDF 的预签名下载链接。
func (h *ExportHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var doc database.CVDocument
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cv not found")
			return
		}
		Internal(c, "failed to load cv")
		return
	}

	if doc.PdfUrl == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.presigner.GeneratePresignedURL(ctx, doc.PdfUrl, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}
