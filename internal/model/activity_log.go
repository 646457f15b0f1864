package model

import "time"

// 审计日志主体类型（带类型标签的联合，替代原多态关联）
const (
	SubjectEmployee         = "employee"
	SubjectSection          = "section"
	SubjectEmploymentStatus = "employment_status"
	SubjectContract         = "contract"
	SubjectAssignment       = "assignment"
	SubjectResignation      = "resignation"
)

// ActivityLog 审计日志 — 对应 activity_logs
// 只追加；不设外键，主体被硬删除后日志仍留存（subject_type+subject_id 作为历史指针）
type ActivityLog struct {
	LogID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	SubjectType string    `gorm:"type:varchar(30);not null"                      json:"subject_type"`
	SubjectID   string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	Action      string    `gorm:"type:varchar(30);not null"                      json:"action"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	OldValues   JSONMap   `gorm:"type:jsonb"                                     json:"old_values,omitempty"`
	NewValues   JSONMap   `gorm:"type:jsonb"                                     json:"new_values,omitempty"`
	ActorID     string    `gorm:"type:varchar(64)"                               json:"actor_id,omitempty"`
	IPAddress   string    `gorm:"type:varchar(45)"                               json:"ip_address,omitempty"`
	UserAgent   string    `gorm:"type:varchar(255)"                              json:"user_agent,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
