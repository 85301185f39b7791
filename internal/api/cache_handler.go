package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"phCV/internal/cache"
	"phCV/internal/cv"
)

// CacheHandler 暂存一份 CV 快照，换取一个短期有效的不透明 ID。
// 导出流程先缓存再取回，避免在下载 URL 里携带整份文档。
type CacheHandler struct {
	store cache.Store
}

// NewCacheHandler 构造 CacheHandler。
func NewCacheHandler(store cache.Store) *CacheHandler {
	return &CacheHandler{store: store}
}

// PutCV 缓存请求体中的 CV 数据并返回条目 ID。
func (h *CacheHandler) PutCV(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		BadRequest(c, "missing cv data")
		return
	}
	if !json.Valid(raw) {
		BadRequest(c, "invalid json")
		return
	}

	id, err := h.store.Put(c.Request.Context(), cv.Decode(raw))
	if err != nil {
		Internal(c, "failed to cache cv")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetCV 取回缓存的 CV 数据；过期或不存在返回 404。
func (h *CacheHandler) GetCV(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "missing cache id")
		return
	}

	data, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			NotFound(c, "cache entry not found or expired")
			return
		}
		Internal(c, "failed to read cv cache")
		return
	}

	raw, err := cv.Encode(data)
	if err != nil {
		Internal(c, "failed to encode cv")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
