package database

import (
	"time"
)

// Note 笔记模型
// 每条笔记归属于唯一的用户（以邮箱为分区键），通过中间表关联标签和提及
type Note struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`                                         // 笔记ID，由客户端生成的不透明字符串
	Title     string    `gorm:"not null;size:200" json:"title"`                                       // 笔记标题，必填
	Content   string    `gorm:"type:text" json:"content"`                                             // 笔记内容，可为空
	UserEmail string    `gorm:"not null;size:120;index:idx_notes_owner_created,priority:1" json:"user_email"` // 归属用户邮箱
	CreatedAt time.Time `gorm:"index:idx_notes_owner_created,priority:2" json:"created_at"`           // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                           // 最后修改时间

	// 关联关系
	Tags     []Tag     `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`         // 多对多关联标签
	Mentions []Mention `gorm:"many2many:note_mentions;constraint:OnDelete:CASCADE" json:"mentions,omitempty"` // 多对多关联提及
}

// TableName 指定Note模型对应的数据库表名
func (Note) TableName() string {
	return "notes"
}

// Tag 标签模型
// 同一用户下标签名唯一；标签只在首次使用时创建，不会被主动删除
type Tag struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`                                        // 标签ID
	Name      string `gorm:"not null;size:100;uniqueIndex:idx_tags_name_owner" json:"name"`       // 标签名称
	UserEmail string `gorm:"not null;size:120;uniqueIndex:idx_tags_name_owner" json:"user_email"` // 归属用户邮箱
}

// TableName 指定Tag模型对应的数据库表名
func (Tag) TableName() string {
	return "tags"
}

// Mention 提及模型
// 与标签同构，但使用独立的命名空间和表
type Mention struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`                                            // 提及ID
	Name      string `gorm:"not null;size:100;uniqueIndex:idx_mentions_name_owner" json:"name"`       // 提及名称
	UserEmail string `gorm:"not null;size:120;uniqueIndex:idx_mentions_name_owner" json:"user_email"` // 归属用户邮箱
}

// TableName 指定Mention模型对应的数据库表名
func (Mention) TableName() string {
	return "mentions"
}

// NoteTag 笔记标签关联模型
// 复合主键 (note_id, tag_id)，任一父记录删除时级联删除
type NoteTag struct {
	NoteID string `gorm:"primaryKey;size:64" json:"note_id"` // 笔记ID
	TagID  string `gorm:"primaryKey;size:64" json:"tag_id"`  // 标签ID
}

// TableName 指定NoteTag模型对应的数据库表名
func (NoteTag) TableName() string {
	return "note_tags"
}

// NoteMention 笔记提及关联模型
// 复合主键 (note_id, mention_id)，任一父记录删除时级联删除
type NoteMention struct {
	NoteID    string `gorm:"primaryKey;size:64" json:"note_id"`    // 笔记ID
	MentionID string `gorm:"primaryKey;size:64" json:"mention_id"` // 提及ID
}

// TableName 指定NoteMention模型对应的数据库表名
func (NoteMention) TableName() string {
	return "note_mentions"
}
