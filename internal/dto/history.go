package dto

// HistoryListRequest 离职历史列表请求
type HistoryListRequest struct {
	Search    string `form:"search"`
	Section   string `form:"section"`
	DateRange int    `form:"date_range"` // 最近 N 天窗口；0 表示不限
	Page      int    `form:"page"`
}

// HistoryStats 离职历史统计
type HistoryStats struct {
	TotalResignations     int64 `json:"total_resignations"`
	ThisMonthResignations int64 `json:"this_month_resignations"`
	InactiveEmployees     int64 `json:"inactive_employees"`
}

// HistoryRecordResponse 离职历史行（联员工/科室）
type HistoryRecordResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	SectionName     string `json:"section_name,omitempty"`
	StatusName      string `json:"employment_status_name,omitempty"`
	ResignationDate string `json:"resignation_date"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes,omitempty"`
}

// ── 仪表盘 ──

// DashboardStats 员工总量统计
type DashboardStats struct {
	TotalEmployees    int64 `json:"total_employees"`
	ActiveEmployees   int64 `json:"active_employees"`
	ArchivedEmployees int64 `json:"archived_employees"`
}

// HistoryTotals 历史记录总量统计
type HistoryTotals struct {
	TotalContracts    int64 `json:"total_contracts"`
	TotalAssignments  int64 `json:"total_assignments"`
	TotalResignations int64 `json:"total_resignations"`
	ActiveRecords     int64 `json:"active_records"` // Active 合同数 + 未结束任职数
}

// RecentRecord 近期历史记录（合同/任职/离职混排）
type RecentRecord struct {
	ID           string `json:"id"`
	Type         string `json:"type"` // Contract | Assignment | Resignation
	EmployeeName string `json:"employee_name"`
	SectionName  string `json:"section_name,omitempty"`
	Details      string `json:"details,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// RecentEmployee 近期入职员工
type RecentEmployee struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	Position    string `json:"position,omitempty"`
	SectionName string `json:"section_name,omitempty"`
	StatusName  string `json:"employment_status_name,omitempty"`
	DateStarted string `json:"date_started,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// DashboardResponse 仪表盘聚合视图
type DashboardResponse struct {
	Stats              DashboardStats   `json:"stats"`
	EmployeesBySection map[string]int64 `json:"employees_by_section"`
	HistoryTotals      HistoryTotals    `json:"history_totals"`
	RecentEmployees    []RecentEmployee `json:"recent_employees"`
	RecentHistory      []RecentRecord   `json:"recent_history"`
}

// ── 导出 ──

// ExportRequest 历史导出请求
type ExportRequest struct {
	Type      string `form:"type"`       // contracts | assignments | resignations | all
	DateRange int    `form:"date_range"` // 最近 N 天窗口；0 表示不限
	Format    string `form:"format"`     // csv | xlsx
}
