package model

import "time"

// Resignation 离职记录表 — 对应 resignations
// (employee_id, resignation_date) 唯一，作为级联去重的存储层兜底
type Resignation struct {
	ResignationID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"resignation_id"`
	EmployeeID      string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	ResignationDate time.Time `gorm:"type:date;not null"                             json:"resignation_date"`
	Reason          string    `gorm:"type:varchar(255);not null"                     json:"reason"`
	Notes           string    `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Resignation) TableName() string { return "resignations" }
