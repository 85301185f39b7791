// Package cache 提供 CVData 的短时寄存：
// 客户端先把文档塞进缓存换一个 opaque id，再把 id 交给导出端按引用取回。
// 这是一个交接机制，不是持久化承诺：条目超过 TTL 即被丢弃。
package cache

import (
	"context"
	"errors"
	"time"

	"phCV/internal/cv"
)

// DefaultTTL 是缓存条目的默认保留窗口。
const DefaultTTL = 10 * time.Minute

// ErrNotFound 表示 id 不存在或条目已过期。
var ErrNotFound = errors.New("cv cache: entry not found")

// Store 是注入给 API 与导出端的缓存契约。
type Store interface {
	// Put 寄存一份完整聚合并返回新生成的 id。
	Put(ctx context.Context, data cv.CVData) (string, error)
	// Get 按 id 取回聚合；不存在或过期返回 ErrNotFound。
	Get(ctx context.Context, id string) (cv.CVData, error)
}
