package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"phCV/internal/cache"
	"phCV/internal/cv"
)

func TestCacheHandler_PutAndGetRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCacheHandler(cache.NewMemoryStore(time.Minute))

	raw, err := cv.Encode(cv.AddCustomSection(cv.Default(), cv.StyleTimeline))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/cv/cache", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.PutCV(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("put: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode put response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected opaque cache id")
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cv/cache/"+created.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: created.ID}}
	c.Set("userID", uint(1))

	h.GetCV(c)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	got := cv.Decode(w.Body.Bytes())
	if len(got.CustomSections) != 1 {
		t.Fatal("cached cv must round-trip with its custom sections")
	}
}

func TestCacheHandler_MissReturnsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCacheHandler(cache.NewMemoryStore(time.Minute))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cv/cache/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetCV(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestCacheHandler_RejectsInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCacheHandler(cache.NewMemoryStore(time.Minute))

	req := httptest.NewRequest(http.MethodPost, "/v1/cv/cache", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.PutCV(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
