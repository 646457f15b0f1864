package model

import "time"

// Assignment 任职记录表 — 对应 assignments
// end_date 为空即"当前任职"；每名员工最多一条未结束记录
type Assignment struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	SectionID    string     `gorm:"type:uuid;not null"                             json:"section_id"`
	StartDate    time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Position     string     `gorm:"type:varchar(255)"                              json:"position,omitempty"`
	Notes        string     `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Section  *Section  `gorm:"foreignKey:SectionID;references:SectionID"   json:"section,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
