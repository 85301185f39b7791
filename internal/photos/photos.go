package photos

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"phCV/internal/cv"
	"phCV/internal/storage"
)

// ObjectReader 抽象对象存储的读取能力，便于测试时注入假实现。
type ObjectReader interface {
	ReadObject(ctx context.Context, objectKey string) ([]byte, string, error)
}

// ObjectKeyPrefix 返回指定用户照片对象键的合法前缀。
func ObjectKeyPrefix(userID uint) string {
	return fmt.Sprintf("user-assets/%d/", userID)
}

// IsValidObjectKey 校验照片对象键是否归属指定用户且格式合法。
func IsValidObjectKey(userID uint, key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if !strings.HasPrefix(key, ObjectKeyPrefix(userID)) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 200 {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	if !(strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") || strings.HasSuffix(lower, ".webp")) {
		return false
	}
	return true
}

// InlineProfileImage 把 ProfileImage 中的对象键替换为 data URI，供打印页内联使用。
// 约定：
// - 已是 data URI 或外部 URL 的照片原样保留
// - key 格式不合法或对象不存在(NoSuchKey) => 清空照片并返回 removedKey，导出继续
// - Bucket 不存在(NoSuchBucket) => 视为系统错误，直接返回 error
func InlineProfileImage(ctx context.Context, reader ObjectReader, ownerID uint, data *cv.CVData) (removedKey string, err error) {
	objectKey := strings.TrimSpace(data.PersonalDetails.ProfileImage)
	if objectKey == "" {
		return "", nil
	}
	if strings.HasPrefix(objectKey, "data:") ||
		strings.HasPrefix(objectKey, "http://") ||
		strings.HasPrefix(objectKey, "https://") {
		return "", nil
	}

	if !IsValidObjectKey(ownerID, objectKey) {
		data.PersonalDetails.ProfileImage = ""
		return objectKey, nil
	}

	imageBytes, contentType, err := reader.ReadObject(ctx, objectKey)
	if err != nil {
		if storage.IsNoSuchBucket(err) {
			return "", fmt.Errorf("minio bucket does not exist: %w", err)
		}
		if storage.IsNoSuchKey(err) {
			data.PersonalDetails.ProfileImage = ""
			return objectKey, nil
		}
		return "", fmt.Errorf("fetch profile image: %w", err)
	}

	if strings.TrimSpace(contentType) == "" || contentType == "application/octet-stream" {
		contentType = "image/png"
	}
	data.PersonalDetails.ProfileImage = fmt.Sprintf("data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(imageBytes))
	return "", nil
}
