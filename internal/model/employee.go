package model

import (
	"fmt"
	"strings"
	"time"
)

// Employee 员工表 — 对应 employees
// position 为空时生效职位回落到当前任职记录的 position（读取时解析，绝不回写）
type Employee struct {
	EmployeeID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FirstName          string     `gorm:"type:varchar(255);not null"                     json:"first_name"`
	MiddleName         string     `gorm:"type:varchar(255)"                              json:"middle_name,omitempty"`
	LastName           string     `gorm:"type:varchar(255);not null"                     json:"last_name"`
	Suffix             string     `gorm:"type:varchar(50)"                               json:"suffix,omitempty"`
	Sex                string     `gorm:"type:varchar(10)"                               json:"sex,omitempty"`
	Position           string     `gorm:"type:varchar(255)"                              json:"position,omitempty"`
	SectionID          string     `gorm:"type:uuid;not null"                             json:"section_id"`
	EmploymentStatusID string     `gorm:"type:uuid;not null"                             json:"employment_status_id"`
	DateStarted        *time.Time `gorm:"type:date"                                      json:"date_started,omitempty"`
	DateResigned       *time.Time `gorm:"type:date"                                      json:"date_resigned,omitempty"`
	IsArchived         bool       `gorm:"not null;default:false"                         json:"is_archived"`
	ArchivedAt         *time.Time `json:"archived_at,omitempty"`
	ArchivedReason     string     `gorm:"type:varchar(255)"                              json:"archived_reason,omitempty"`
	BaseModel

	// 关联
	Section           *Section          `gorm:"foreignKey:SectionID;references:SectionID"              json:"section,omitempty"`
	EmploymentStatus  *EmploymentStatus `gorm:"foreignKey:EmploymentStatusID;references:StatusID"      json:"employment_status,omitempty"`
	CurrentAssignment *Assignment       `gorm:"-"                                                      json:"current_assignment,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 全名拼接（first middle last）
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.MiddleName, e.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// EffectivePosition 生效职位：员工自身 position 为空时取当前任职记录的 position
func (e *Employee) EffectivePosition() string {
	if e.Position != "" {
		return e.Position
	}
	if e.CurrentAssignment != nil {
		return e.CurrentAssignment.Position
	}
	return ""
}

// CanBeArchived 员工已离职或已归档时可归档
func (e *Employee) CanBeArchived() bool {
	return e.DateResigned != nil || e.IsArchived
}

// LengthOfService 在职时长（离职者以离职日为终点）
func (e *Employee) LengthOfService(now time.Time) string {
	if e.DateStarted == nil {
		return "N/A"
	}
	end := now
	if e.DateResigned != nil {
		end = *e.DateResigned
	}
	if end.Before(*e.DateStarted) {
		return "0 days"
	}

	years, months, days := dateDiff(*e.DateStarted, end)

	parts := make([]string, 0, 2)
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if days > 0 && len(parts) < 2 {
		parts = append(parts, plural(days, "day"))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, ", ")
}

// dateDiff 计算两个日期之间的年/月/日差值
func dateDiff(start, end time.Time) (years, months, days int) {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	years = y2 - y1
	months = int(m2) - int(m1)
	days = d2 - d1

	if days < 0 {
		// 借上一个月的天数
		prevMonth := time.Date(y2, m2, 0, 0, 0, 0, 0, time.UTC)
		days += prevMonth.Day()
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	return years, months, days
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
