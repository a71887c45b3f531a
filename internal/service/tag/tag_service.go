// Package tag 提供标签与提及的归一化注册服务
// 标签和提及按 (名称, 用户邮箱) 惰性创建，重复使用时返回既有记录
package tag

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notedrop/notedrop/internal/database"
	apperrors "github.com/notedrop/notedrop/internal/errors"
)

// Registry 标签/提及注册服务接口
// GetOrCreate系列方法接受事务句柄，以便调用方将其纳入自己的事务
type Registry interface {
	// GetOrCreateTag 查找或创建标签
	// 按 (name, ownerEmail) 精确匹配（区分大小写，不做归一化）；
	// 命中时原样返回，不更新任何字段
	GetOrCreateTag(tx *gorm.DB, name, ownerEmail string) (*database.Tag, error)

	// GetOrCreateMention 查找或创建提及，语义与GetOrCreateTag一致
	GetOrCreateMention(tx *gorm.DB, name, ownerEmail string) (*database.Mention, error)

	// ListTagNames 返回用户使用过的全部标签名，按字母序排列
	ListTagNames(ownerEmail string) ([]string, error)

	// ListMentionNames 返回用户使用过的全部提及名，按字母序排列
	ListMentionNames(ownerEmail string) ([]string, error)
}

// registry 标签注册服务实现
type registry struct {
	db *gorm.DB
}

// NewRegistry 创建标签注册服务实例
// 参数: db - 数据库连接
func NewRegistry(db *gorm.DB) Registry {
	return &registry{db: db}
}

// GetOrCreateTag 查找或创建标签
// (name, user_email) 上的唯一索引兜底并发下的重复创建
func (r *registry) GetOrCreateTag(tx *gorm.DB, name, ownerEmail string) (*database.Tag, error) {
	var t database.Tag
	err := tx.Where(map[string]interface{}{"name": name, "user_email": ownerEmail}).
		Attrs(&database.Tag{ID: uuid.NewString()}).
		FirstOrCreate(&t).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert,
			fmt.Sprintf("failed to get or create tag %q", name), err)
	}
	return &t, nil
}

// GetOrCreateMention 查找或创建提及
func (r *registry) GetOrCreateMention(tx *gorm.DB, name, ownerEmail string) (*database.Mention, error) {
	var m database.Mention
	err := tx.Where(map[string]interface{}{"name": name, "user_email": ownerEmail}).
		Attrs(&database.Mention{ID: uuid.NewString()}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert,
			fmt.Sprintf("failed to get or create mention %q", name), err)
	}
	return &m, nil
}

// ListTagNames 返回用户的标签名列表（字母序）
func (r *registry) ListTagNames(ownerEmail string) ([]string, error) {
	names := make([]string, 0)
	err := r.db.Model(&database.Tag{}).
		Where("user_email = ?", ownerEmail).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to list tag names", err)
	}
	return names, nil
}

// ListMentionNames 返回用户的提及名列表（字母序）
func (r *registry) ListMentionNames(ownerEmail string) ([]string, error) {
	names := make([]string, 0)
	err := r.db.Model(&database.Mention{}).
		Where("user_email = ?", ownerEmail).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to list mention names", err)
	}
	return names, nil
}
