// Package note 提供笔记管理的业务逻辑服务
// 所有操作均以认证用户的邮箱为作用域，跨用户数据不可见、不可修改
package note

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/notedrop/notedrop/internal/database"
	apperrors "github.com/notedrop/notedrop/internal/errors"
	"github.com/notedrop/notedrop/internal/logger"
	tagservice "github.com/notedrop/notedrop/internal/service/tag"
)

// NoteService 笔记服务接口
type NoteService interface {
	// ListNotes 返回用户的全部笔记，按创建时间倒序，附带标签与提及名称
	ListNotes(ownerEmail string) ([]NoteView, error)

	// ListTodayNotes 返回用户当天（本地时区自然日）创建的笔记
	// 返回的笔记额外标记synced=true：能从持久存储读到即视为已同步
	ListTodayNotes(ownerEmail string) ([]NoteView, error)

	// CreateNote 创建笔记并关联标签与提及
	// 标题为空时返回参数校验错误；内容允许为空
	CreateNote(ownerEmail string, req *CreateNoteRequest) (*NoteView, error)

	// UpdateNote 更新笔记的标题、内容，并整体替换标签与提及关联
	// 未命中用户名下的笔记时静默返回，不产生错误也不触碰关联表
	UpdateNote(ownerEmail, noteID string, req *UpdateNoteRequest) (*NoteView, error)

	// DeleteNote 删除用户名下的笔记及其关联记录；未命中时静默返回
	DeleteNote(ownerEmail, noteID string) error
}

// CreateNoteRequest 创建笔记请求
type CreateNoteRequest struct {
	ID       string   `json:"id" binding:"required"` // 笔记ID，由客户端生成
	Title    string   `json:"title"`                 // 笔记标题，必填
	Content  string   `json:"content"`               // 笔记内容，可为空
	Tags     []string `json:"tags"`                  // 标签名称列表
	Mentions []string `json:"mentions"`              // 提及名称列表
}

// UpdateNoteRequest 更新笔记请求
// Tags/Mentions为整体替换语义：缺省等价于替换为空集
type UpdateNoteRequest struct {
	Title    string   `json:"title"`    // 笔记标题，必填
	Content  string   `json:"content"`  // 笔记内容
	Tags     []string `json:"tags"`     // 标签名称列表
	Mentions []string `json:"mentions"` // 提及名称列表
}

// NoteView 笔记视图
// 标签与提及以名称列表呈现，供客户端直接渲染
type NoteView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
	Mentions  []string  `json:"mentions"`
	Synced    bool      `json:"synced,omitempty"`
}

// noteService 笔记服务实现
type noteService struct {
	db       *gorm.DB
	registry tagservice.Registry
}

// NewNoteService 创建笔记服务实例
// 参数:
//   db - 数据库连接
//   registry - 标签/提及注册服务
func NewNoteService(db *gorm.DB, registry tagservice.Registry) NoteService {
	return &noteService{
		db:       db,
		registry: registry,
	}
}

// ListNotes 返回用户的全部笔记
func (s *noteService) ListNotes(ownerEmail string) ([]NoteView, error) {
	var notes []database.Note
	err := s.db.Where("user_email = ?", ownerEmail).
		Order("created_at DESC").
		Preload("Tags").
		Preload("Mentions").
		Find(&notes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to list notes", err)
	}

	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, toView(&notes[i], false))
	}
	return views, nil
}

// ListTodayNotes 返回用户当天创建的笔记
// 当天指本地时区的 [00:00, 次日00:00)
func (s *noteService) ListTodayNotes(ownerEmail string) ([]NoteView, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var notes []database.Note
	err := s.db.Where("user_email = ? AND created_at >= ? AND created_at < ?", ownerEmail, dayStart, dayEnd).
		Order("created_at DESC").
		Preload("Tags").
		Preload("Mentions").
		Find(&notes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to list today notes", err)
	}

	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, toView(&notes[i], true))
	}
	return views, nil
}

// CreateNote 创建笔记
func (s *noteService) CreateNote(ownerEmail string, req *CreateNoteRequest) (*NoteView, error) {
	if req.Title == "" {
		return nil, apperrors.ErrNoteTitleRequiredError
	}

	now := time.Now()
	note := &database.Note{
		ID:        req.ID,
		Title:     req.Title,
		Content:   req.Content,
		UserEmail: ownerEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(note).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create note %s: %v", req.ID, err)
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, "failed to create note", err)
	}

	if err := s.attachTags(tx, note.ID, ownerEmail, req.Tags); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.attachMentions(tx, note.ID, ownerEmail, req.Mentions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseTransaction, "failed to commit note creation", err)
	}

	logger.Infof("Note created: %s (owner: %s)", note.ID, ownerEmail)
	return &NoteView{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		UserEmail: note.UserEmail,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Tags:      normalizeNames(req.Tags),
		Mentions:  normalizeNames(req.Mentions),
	}, nil
}

// UpdateNote 更新笔记并整体替换标签与提及关联
// 更新、关联删除与重建在同一事务内完成，避免并发读取到中间状态
func (s *noteService) UpdateNote(ownerEmail, noteID string, req *UpdateNoteRequest) (*NoteView, error) {
	if req.Title == "" {
		return nil, apperrors.ErrNoteTitleRequiredError
	}

	now := time.Now()
	echo := &NoteView{
		ID:        noteID,
		Title:     req.Title,
		Content:   req.Content,
		UserEmail: ownerEmail,
		UpdatedAt: now,
		Tags:      normalizeNames(req.Tags),
		Mentions:  normalizeNames(req.Mentions),
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 先按 (id, owner) 解析笔记：未命中时静默返回，且绝不触碰关联表，
	// 防止以他人笔记ID发起的更新清空其关联
	var note database.Note
	if err := tx.Where("id = ? AND user_email = ?", noteID, ownerEmail).First(&note).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debugf("Update matched no note: %s (owner: %s)", noteID, ownerEmail)
			return echo, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to load note for update", err)
	}

	updates := map[string]interface{}{
		"title":      req.Title,
		"content":    req.Content,
		"updated_at": now,
	}
	if err := tx.Model(&note).Updates(updates).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to update note %s: %v", noteID, err)
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate, "failed to update note", err)
	}

	// 整体替换：删除全部既有关联后按新列表重建
	if err := tx.Where("note_id = ?", note.ID).Delete(&database.NoteTag{}).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.ErrDatabaseDelete, "failed to remove existing tag links", err)
	}
	if err := tx.Where("note_id = ?", note.ID).Delete(&database.NoteMention{}).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.ErrDatabaseDelete, "failed to remove existing mention links", err)
	}

	if err := s.attachTags(tx, note.ID, ownerEmail, req.Tags); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.attachMentions(tx, note.ID, ownerEmail, req.Mentions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseTransaction, "failed to commit note update", err)
	}

	logger.Infof("Note updated: %s (owner: %s)", noteID, ownerEmail)
	return echo, nil
}

// DeleteNote 删除笔记及其关联记录
// 关联记录在事务内显式删除，外键级联作为存储层兜底
func (s *noteService) DeleteNote(ownerEmail, noteID string) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var note database.Note
	if err := tx.Where("id = ? AND user_email = ?", noteID, ownerEmail).First(&note).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debugf("Delete matched no note: %s (owner: %s)", noteID, ownerEmail)
			return nil
		}
		return apperrors.Wrap(apperrors.ErrDatabaseQuery, "failed to load note for delete", err)
	}

	if err := tx.Where("note_id = ?", note.ID).Delete(&database.NoteTag{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, "failed to delete tag links", err)
	}
	if err := tx.Where("note_id = ?", note.ID).Delete(&database.NoteMention{}).Error; err != nil {
		tx.Rollback()
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, "failed to delete mention links", err)
	}
	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete note %s: %v", noteID, err)
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, "failed to delete note", err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseTransaction, "failed to commit note deletion", err)
	}

	logger.Infof("Note deleted: %s (owner: %s)", noteID, ownerEmail)
	return nil
}

// attachTags 解析标签名并建立关联（内部方法，运行于调用方事务内）
// 同一请求中的重复名称由复合主键去重
func (s *noteService) attachTags(tx *gorm.DB, noteID, ownerEmail string, names []string) error {
	for _, name := range names {
		t, err := s.registry.GetOrCreateTag(tx, name, ownerEmail)
		if err != nil {
			return err
		}
		link := &database.NoteTag{NoteID: noteID, TagID: t.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, "failed to link tag", err)
		}
	}
	return nil
}

// attachMentions 解析提及名并建立关联（内部方法，运行于调用方事务内）
func (s *noteService) attachMentions(tx *gorm.DB, noteID, ownerEmail string, names []string) error {
	for _, name := range names {
		m, err := s.registry.GetOrCreateMention(tx, name, ownerEmail)
		if err != nil {
			return err
		}
		link := &database.NoteMention{NoteID: noteID, MentionID: m.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrDatabaseInsert, "failed to link mention", err)
		}
	}
	return nil
}

// toView 将数据库模型转换为视图
func toView(n *database.Note, synced bool) NoteView {
	tagNames := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		tagNames = append(tagNames, t.Name)
	}
	mentionNames := make([]string, 0, len(n.Mentions))
	for _, m := range n.Mentions {
		mentionNames = append(mentionNames, m.Name)
	}
	return NoteView{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UserEmail: n.UserEmail,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Tags:      tagNames,
		Mentions:  mentionNames,
		Synced:    synced,
	}
}

// normalizeNames 保证名称列表非nil，序列化时输出空数组而非null
func normalizeNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
