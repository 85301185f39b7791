package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string       `gorm:"uniqueIndex;size:64"`
	PasswordHash string       `gorm:"size:255"`
	Documents    []CVDocument `gorm:"constraint:OnDelete:CASCADE"`
}

// CVDocument 保存用户的 CV 内容。
// 每个用户只有一份活动文档（UserID 唯一），Content 为 JSONB 格式的完整聚合。
// Revision 用于保存时的乐观并发检查：客户端提交的版本号必须等于当前值。
type CVDocument struct {
	gorm.Model
	UserID   uint           `gorm:"uniqueIndex"`
	User     User           `gorm:"constraint:OnDelete:CASCADE"`
	Content  datatypes.JSON `gorm:"type:jsonb"`
	Revision int64          `gorm:"default:1"`
	PdfUrl   string         `gorm:"size:512"`
	Status   string         `gorm:"size:32"`
}
