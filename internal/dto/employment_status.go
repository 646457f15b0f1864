package dto

// CreateEmploymentStatusRequest 创建聘用状态请求
type CreateEmploymentStatusRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateEmploymentStatusRequest 更新聘用状态请求
type UpdateEmploymentStatusRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// EmploymentStatusResponse 聘用状态详情
type EmploymentStatusResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsArchived    bool   `json:"is_archived"`
	ArchivedAt    string `json:"archived_at,omitempty"`
	EmployeeCount int64  `json:"employee_count"`
}
