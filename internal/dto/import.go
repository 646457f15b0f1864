package dto

// ImportEmployeeRow 导入协作方移交的扁平员工记录
// 科室与聘用状态以名称出现，由核心负责解析为 ID（不存在则创建）
type ImportEmployeeRow struct {
	Row              int    `json:"row"` // 源表行号（错误回执用）
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name"`
	LastName         string `json:"last_name"`
	Suffix           string `json:"suffix"`
	Sex              string `json:"sex"`
	Office           string `json:"office"`
	EmploymentStatus string `json:"employment_status"`
	Position         string `json:"position"`
	ContractType     string `json:"contract_type"`
	DateStarted      string `json:"date_started"`
	DateResigned     string `json:"date_resigned"`
}

// ImportEmployeesRequest 批量导入请求
type ImportEmployeesRequest struct {
	Employees []ImportEmployeeRow `json:"employees" binding:"required"`
}

// ImportError 单行导入失败明细
type ImportError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportEmployeesResponse 导入结果回执
type ImportEmployeesResponse struct {
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors,omitempty"`
}
