package model

import "time"

// 时间线事件类型枚举
const (
	EventHired          = "hired"
	EventTransferred    = "transferred"
	EventPromoted       = "promoted"
	EventResigned       = "resigned"
	EventArchived       = "archived"
	EventRestored       = "restored"
	EventContractChange = "contract_change"
)

// TimelineEvent 员工履历时间线 — 对应 timeline_events
// 只追加：除员工级联删除外不会被修改或删除
type TimelineEvent struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	EmployeeID  string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	EventType   string    `gorm:"type:varchar(30);not null"                      json:"event_type"`
	Title       string    `gorm:"type:varchar(255);not null"                     json:"title"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	EventDate   time.Time `gorm:"type:date;not null"                             json:"event_date"`
	OldValues   JSONMap   `gorm:"type:jsonb"                                     json:"old_values,omitempty"`
	NewValues   JSONMap   `gorm:"type:jsonb"                                     json:"new_values,omitempty"`
	RelatedID   *string   `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	RelatedType string    `gorm:"type:varchar(30)"                               json:"related_type,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TimelineEvent) TableName() string { return "timeline_events" }
