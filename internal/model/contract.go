package model

import "time"

// 合同状态枚举
const (
	ContractStatusActive     = "Active"
	ContractStatusExpired    = "Expired"
	ContractStatusTerminated = "Terminated"
)

// Contract 合同表 — 对应 contracts
// 每名员工同一时间最多一份 Active 合同（由生命周期服务保证）
type Contract struct {
	ContractID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"contract_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	ContractType string     `gorm:"type:varchar(255);not null"                     json:"contract_type"`
	StartDate    time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	Notes        string     `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Contract) TableName() string { return "contracts" }
