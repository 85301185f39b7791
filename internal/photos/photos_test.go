package photos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"phCV/internal/cv"
)

type fakeReader struct {
	objects map[string][]byte
	err     error
}

func (f *fakeReader) ReadObject(_ context.Context, key string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, "", minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return data, "image/png", nil
}

func TestIsValidObjectKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"user-assets/7/photo.png", true},
		{"user-assets/7/photo.webp", true},
		{"user-assets/8/photo.png", false},
		{"user-assets/7/../secret.png", false},
		{"user-assets/7//photo.png", false},
		{"user-assets/7/photo.exe", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidObjectKey(7, tc.key); got != tc.want {
			t.Errorf("IsValidObjectKey(7, %q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestInlineProfileImage_ObjectKey(t *testing.T) {
	reader := &fakeReader{objects: map[string][]byte{
		"user-assets/1/photo.png": []byte("png-bytes"),
	}}

	data := cv.Default()
	data.PersonalDetails.ProfileImage = "user-assets/1/photo.png"

	removed, err := InlineProfileImage(context.Background(), reader, 1, &data)
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if removed != "" {
		t.Fatalf("unexpected removed key %q", removed)
	}
	if !strings.HasPrefix(data.PersonalDetails.ProfileImage, "data:image/png;base64,") {
		t.Fatalf("expected data URI, got %q", data.PersonalDetails.ProfileImage)
	}
}

func TestInlineProfileImage_PassThrough(t *testing.T) {
	reader := &fakeReader{}

	for _, value := range []string{"", "data:image/png;base64,AAAA", "https://example.com/me.png"} {
		data := cv.Default()
		data.PersonalDetails.ProfileImage = value
		if _, err := InlineProfileImage(context.Background(), reader, 1, &data); err != nil {
			t.Fatalf("inline %q: %v", value, err)
		}
		if data.PersonalDetails.ProfileImage != value {
			t.Fatalf("value %q must pass through, got %q", value, data.PersonalDetails.ProfileImage)
		}
	}
}

func TestInlineProfileImage_MissingObjectIsRemoved(t *testing.T) {
	reader := &fakeReader{objects: map[string][]byte{}}

	data := cv.Default()
	data.PersonalDetails.ProfileImage = "user-assets/1/gone.png"

	removed, err := InlineProfileImage(context.Background(), reader, 1, &data)
	if err != nil {
		t.Fatalf("missing object must not fail the export: %v", err)
	}
	if removed != "user-assets/1/gone.png" {
		t.Fatalf("expected removed key, got %q", removed)
	}
	if data.PersonalDetails.ProfileImage != "" {
		t.Fatal("missing photo must be cleared")
	}
}

func TestInlineProfileImage_ForeignKeyIsRemoved(t *testing.T) {
	reader := &fakeReader{objects: map[string][]byte{}}

	data := cv.Default()
	data.PersonalDetails.ProfileImage = "user-assets/99/photo.png"

	removed, err := InlineProfileImage(context.Background(), reader, 1, &data)
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if removed == "" {
		t.Fatal("foreign object key must be reported as removed")
	}
	if data.PersonalDetails.ProfileImage != "" {
		t.Fatal("foreign object key must be cleared")
	}
}

func TestInlineProfileImage_MissingBucketFails(t *testing.T) {
	reader := &fakeReader{err: minio.ErrorResponse{Code: "NoSuchBucket"}}

	data := cv.Default()
	data.PersonalDetails.ProfileImage = "user-assets/1/photo.png"

	if _, err := InlineProfileImage(context.Background(), reader, 1, &data); err == nil {
		t.Fatal("missing bucket must abort the export")
	} else if !strings.Contains(err.Error(), "bucket") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInlineProfileImage_OtherErrorFails(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection reset")}

	data := cv.Default()
	data.PersonalDetails.ProfileImage = "user-assets/1/photo.png"

	if _, err := InlineProfileImage(context.Background(), reader, 1, &data); err == nil {
		t.Fatal("transport errors must propagate")
	}
}
