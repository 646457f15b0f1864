package dto

// SearchEmployeesRequest 员工检索请求（query 绑定）
// 非法分页参数收敛到默认值；未知 section/status ID 返回空结果集而非错误
type SearchEmployeesRequest struct {
	Search   string `form:"search"`
	Section  string `form:"section"`
	Status   string `form:"status"`
	Position string `form:"position"`
	Archived bool   `form:"archived"` // 仅管理端开放
	Page     int    `form:"page"`
}

// SuggestItem 公共目录输入建议条目（最小投影）
type SuggestItem struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	Position    string `json:"position,omitempty"`
	SectionName string `json:"section_name,omitempty"`
	StatusName  string `json:"employment_status_name,omitempty"`
}

// SearchFacets 检索页筛选项数据源
type SearchFacets struct {
	Sections  []SectionResponse          `json:"sections"`
	Statuses  []EmploymentStatusResponse `json:"employment_statuses"`
	Positions []string                   `json:"positions"`
}
