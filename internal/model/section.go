package model

import "time"

// Section 科室（办公室）表 — 对应 sections
// 名称唯一性仅约束未归档行（见迁移文件的部分唯一索引）
type Section struct {
	SectionID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	Name        string     `gorm:"type:varchar(255);not null"                     json:"name"`
	Description string     `gorm:"type:text"                                      json:"description,omitempty"`
	IsArchived  bool       `gorm:"not null;default:false"                         json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }
