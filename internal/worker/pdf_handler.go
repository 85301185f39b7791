package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"phCV/internal/cv"
	"phCV/internal/database"
	"phCV/internal/errcode"
	"phCV/internal/pdf"
	"phCV/internal/photos"
	"phCV/internal/render"
	"phCV/internal/storage"
	"phCV/internal/tasks"
)

// PDFTaskHandler 负责消费 PDF 导出任务。
type PDFTaskHandler struct {
	db          *gorm.DB
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger

	// 便于测试替换无头浏览器调用。
	generatePDF func(html string) ([]byte, error)
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) *PDFTaskHandler {
	return &PDFTaskHandler{
		db:          db,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
		generatePDF: pdf.FromHTML,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("cv_document_id", int(payload.CVDocumentID)),
	)
	log.Info("starting pdf export task")

	var doc database.CVDocument
	if err := h.db.WithContext(ctx).First(&doc, payload.CVDocumentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("cv document not found, skipping task")
			return nil
		}
		log.Error("query cv document failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(doc.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.db.WithContext(ctx).Model(&doc).Update("status", "failed").Error; err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}

		notify := PDFExportNotifyMessage{
			Status:        "error",
			CVDocumentID:  doc.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, doc.UserID, notify); err != nil {
			log.Error("publish pdf error notification failed", slog.Any("error", err))
		}
	}()

	data := cv.Decode(doc.Content)

	removedKey, err := photos.InlineProfileImage(ctx, h.storage, doc.UserID, &data)
	if err != nil {
		log.Error("inline profile image failed", slog.Any("error", err))
		return err
	}

	html, err := render.Render(data, render.TargetPrint)
	if err != nil {
		log.Error("render print html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := h.generatePDF(html)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("generated-cvs/%d/%s.pdf", doc.UserID, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectName,
		"status":  "completed",
	}
	if err := h.db.WithContext(ctx).Model(&doc).Updates(update).Error; err != nil {
		log.Error("update cv document failed", slog.Any("error", err))
		return err
	}

	notify := PDFExportNotifyMessage{
		Status:        "completed",
		CVDocumentID:  doc.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if removedKey != "" {
		notify.ErrorCode = errcode.ResourceMissing
		notify.ErrorMessage = "照片资源缺失/无效，已自动跳过并继续生成"
		notify.MissingKeys = []string{removedKey}
		log.Warn("pdf exported without profile photo",
			slog.String("missing_key", removedKey),
		)
	}
	if err := h.publishExportNotify(ctx, doc.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("pdf export task completed")
	return nil
}

func (h *PDFTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify PDFExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
