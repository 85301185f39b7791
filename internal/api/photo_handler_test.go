package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"phCV/internal/storage"
)

type fakePhotoStorage struct {
	uploaded map[string][]byte
	objects  []storage.ObjectMeta
	deleted  []string
}

func newFakePhotoStorage() *fakePhotoStorage {
	return &fakePhotoStorage{uploaded: map[string][]byte{}}
}

func (s *fakePhotoStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

func (s *fakePhotoStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakePhotoStorage) ListObjects(_ context.Context, prefix string, limit int) ([]storage.ObjectMeta, error) {
	result := make([]storage.ObjectMeta, 0, limit)
	for _, obj := range s.objects {
		if strings.HasPrefix(obj.Key, prefix) {
			result = append(result, obj)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *fakePhotoStorage) DeletePrefix(_ context.Context, prefix string) error {
	s.deleted = append(s.deleted, prefix)
	return nil
}

func newMultipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func newPhotoContext(t *testing.T, method, path string, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))
	return c, w
}

func TestUploadPhoto_StoresUnderUserPrefix(t *testing.T) {
	store := newFakePhotoStorage()
	h := NewPhotoHandler(store, slog.Default(), "", 5*1024*1024)

	body, contentType := newMultipartUpload(t, "me.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	c, w := newPhotoContext(t, http.MethodPost, "/v1/photos/upload", body, contentType)

	h.UploadPhoto(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(store.uploaded))
	}
	for key := range store.uploaded {
		if !strings.HasPrefix(key, "user-assets/1/") || !strings.HasSuffix(key, ".png") {
			t.Fatalf("unexpected object key %q", key)
		}
	}
}

func TestUploadPhoto_RejectsUnsupportedType(t *testing.T) {
	store := newFakePhotoStorage()
	h := NewPhotoHandler(store, slog.Default(), "", 5*1024*1024)

	body, contentType := newMultipartUpload(t, "evil.svg", "image/svg+xml", []byte("<svg/>"))
	c, w := newPhotoContext(t, http.MethodPost, "/v1/photos/upload", body, contentType)

	h.UploadPhoto(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 0 {
		t.Fatal("rejected upload must not reach storage")
	}
}

func TestUploadPhoto_RejectsOversizedFile(t *testing.T) {
	store := newFakePhotoStorage()
	h := NewPhotoHandler(store, slog.Default(), "", 8)

	body, contentType := newMultipartUpload(t, "big.png", "image/png", bytes.Repeat([]byte("a"), 64))
	c, w := newPhotoContext(t, http.MethodPost, "/v1/photos/upload", body, contentType)

	h.UploadPhoto(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetPhotoURL_RejectsForeignKey(t *testing.T) {
	store := newFakePhotoStorage()
	h := NewPhotoHandler(store, slog.Default(), "", 5*1024*1024)

	c, w := newPhotoContext(t, http.MethodGet, "/v1/photos/view?key=user-assets/2/photo.png", nil, "")
	h.GetPhotoURL(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeletePhotos_UsesUserPrefix(t *testing.T) {
	store := newFakePhotoStorage()
	h := NewPhotoHandler(store, slog.Default(), "", 5*1024*1024)

	c, w := newPhotoContext(t, http.MethodDelete, "/v1/photos", nil, "")
	h.DeletePhotos(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "user-assets/1/" {
		t.Fatalf("unexpected delete prefixes %v", store.deleted)
	}
}
