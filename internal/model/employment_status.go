package model

import "time"

// EmploymentStatus 聘用状态表 — 对应 employment_statuses
type EmploymentStatus struct {
	StatusID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"status_id"`
	Name        string     `gorm:"type:varchar(255);not null"                     json:"name"`
	Description string     `gorm:"type:text"                                      json:"description,omitempty"`
	IsArchived  bool       `gorm:"not null;default:false"                         json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (EmploymentStatus) TableName() string { return "employment_statuses" }
