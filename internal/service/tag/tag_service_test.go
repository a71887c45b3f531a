// Package tag 标签注册服务的单元测试
package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/notedrop/notedrop/internal/database"
)

// setupTestDB 设置内存测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// TestGetOrCreateTag 测试标签的惰性创建
func TestGetOrCreateTag(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db)

	t.Run("首次使用创建标签", func(t *testing.T) {
		tag, err := registry.GetOrCreateTag(db, "work", "alice@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, tag.ID)
		assert.Equal(t, "work", tag.Name)
		assert.Equal(t, "alice@example.com", tag.UserEmail)
	})

	t.Run("重复使用返回同一记录", func(t *testing.T) {
		first, err := registry.GetOrCreateTag(db, "idea", "alice@example.com")
		require.NoError(t, err)
		second, err := registry.GetOrCreateTag(db, "idea", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&database.Tag{}).
			Where("name = ? AND user_email = ?", "idea", "alice@example.com").
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("同名标签按用户隔离", func(t *testing.T) {
		aliceTag, err := registry.GetOrCreateTag(db, "shared", "alice@example.com")
		require.NoError(t, err)
		bobTag, err := registry.GetOrCreateTag(db, "shared", "bob@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, aliceTag.ID, bobTag.ID)
	})

	t.Run("名称区分大小写", func(t *testing.T) {
		lower, err := registry.GetOrCreateTag(db, "golang", "alice@example.com")
		require.NoError(t, err)
		upper, err := registry.GetOrCreateTag(db, "Golang", "alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, lower.ID, upper.ID)
	})
}

// TestGetOrCreateMention 测试提及的惰性创建
func TestGetOrCreateMention(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db)

	first, err := registry.GetOrCreateMention(db, "bob", "alice@example.com")
	require.NoError(t, err)
	second, err := registry.GetOrCreateMention(db, "bob", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

// TestListNames 测试名称列表查询
func TestListNames(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db)

	for _, name := range []string{"zebra", "apple", "mango"} {
		_, err := registry.GetOrCreateTag(db, name, "alice@example.com")
		require.NoError(t, err)
	}
	_, err := registry.GetOrCreateTag(db, "other", "bob@example.com")
	require.NoError(t, err)
	_, err = registry.GetOrCreateMention(db, "carol", "alice@example.com")
	require.NoError(t, err)

	t.Run("标签名按字母序返回且仅含本用户", func(t *testing.T) {
		names, err := registry.ListTagNames("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"apple", "mango", "zebra"}, names)
	})

	t.Run("提及名独立于标签", func(t *testing.T) {
		names, err := registry.ListMentionNames("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"carol"}, names)
	})

	t.Run("无记录的用户返回空列表", func(t *testing.T) {
		names, err := registry.ListTagNames("nobody@example.com")
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})
}
