package dto

// ── 员工模块请求 ──

// HireEmployeeRequest 入职（创建员工）请求
// 日期字段均为 "2006-01-02" 格式字符串，由 Service 层解析校验
type HireEmployeeRequest struct {
	FirstName          string `json:"first_name" binding:"required,max=255"`
	MiddleName         string `json:"middle_name" binding:"max=255"`
	LastName           string `json:"last_name" binding:"required,max=255"`
	Suffix             string `json:"suffix" binding:"max=50"`
	Sex                string `json:"sex" binding:"max=10"`
	Position           string `json:"position" binding:"max=255"`
	SectionID          string `json:"section_id" binding:"required"`
	EmploymentStatusID string `json:"employment_status_id" binding:"required"`
	ContractType       string `json:"contract_type" binding:"max=255"`
	DateStarted        string `json:"date_started"`
	DateResigned       string `json:"date_resigned"`
}

// UpdateEmployeeRequest 编辑员工档案请求（指针字段表示"未提交"）
type UpdateEmployeeRequest struct {
	FirstName          *string `json:"first_name" binding:"omitempty,max=255"`
	MiddleName         *string `json:"middle_name" binding:"omitempty,max=255"`
	LastName           *string `json:"last_name" binding:"omitempty,max=255"`
	Suffix             *string `json:"suffix" binding:"omitempty,max=50"`
	Sex                *string `json:"sex" binding:"omitempty,max=10"`
	Position           *string `json:"position" binding:"omitempty,max=255"`
	SectionID          *string `json:"section_id"`
	EmploymentStatusID *string `json:"employment_status_id"`
	DateStarted        *string `json:"date_started"`
	DateResigned       *string `json:"date_resigned"`
}

// ResignEmployeeRequest 离职登记请求
type ResignEmployeeRequest struct {
	ResignationDate string `json:"resignation_date" binding:"required"`
	Reason          string `json:"reason" binding:"required,max=255"`
	Notes           string `json:"notes"`
}

// ArchiveEmployeeRequest 归档请求
type ArchiveEmployeeRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// ── 员工模块响应 ──

// ArchivabilityStatus 归档资格（纯查询结果）
type ArchivabilityStatus struct {
	Status  string `json:"status"` // active | archivable | archived
	Message string `json:"message"`
}

// EmployeeResponse 员工列表行
type EmployeeResponse struct {
	ID              string               `json:"id"`
	FirstName       string               `json:"first_name"`
	MiddleName      string               `json:"middle_name,omitempty"`
	LastName        string               `json:"last_name"`
	Suffix          string               `json:"suffix,omitempty"`
	Sex             string               `json:"sex,omitempty"`
	Position        string               `json:"position,omitempty"` // 生效职位（已回落）
	SectionID       string               `json:"section_id"`
	SectionName     string               `json:"section_name,omitempty"`
	StatusID        string               `json:"employment_status_id"`
	StatusName      string               `json:"employment_status_name,omitempty"`
	DateStarted     string               `json:"date_started,omitempty"`
	DateResigned    string               `json:"date_resigned,omitempty"`
	IsArchived      bool                 `json:"is_archived"`
	ArchivedAt      string               `json:"archived_at,omitempty"`
	ArchivedReason  string               `json:"archived_reason,omitempty"`
	LengthOfService string               `json:"length_of_service,omitempty"`
	Archivability   *ArchivabilityStatus `json:"archivability,omitempty"`
}

// ContractResponse 合同历史行
type ContractResponse struct {
	ID           string `json:"id"`
	ContractType string `json:"contract_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// AssignmentResponse 任职历史行
type AssignmentResponse struct {
	ID          string `json:"id"`
	SectionID   string `json:"section_id"`
	SectionName string `json:"section_name,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Position    string `json:"position,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ResignationResponse 离职记录行
type ResignationResponse struct {
	ID              string `json:"id"`
	ResignationDate string `json:"resignation_date"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes,omitempty"`
}

// TimelineEventResponse 时间线事件行
type TimelineEventResponse struct {
	ID          string                 `json:"id"`
	EventType   string                 `json:"event_type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	EventDate   string                 `json:"event_date"`
	OldValues   map[string]interface{} `json:"old_values,omitempty"`
	NewValues   map[string]interface{} `json:"new_values,omitempty"`
}

// EmployeeDetailResponse 员工档案详情（含全部历史）
type EmployeeDetailResponse struct {
	EmployeeResponse
	Contracts    []ContractResponse      `json:"contracts"`
	Assignments  []AssignmentResponse    `json:"assignments"`
	Resignations []ResignationResponse   `json:"resignations"`
	Timeline     []TimelineEventResponse `json:"timeline"`
}
