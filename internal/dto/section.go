package dto

// CreateSectionRequest 创建科室请求
type CreateSectionRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateSectionRequest 更新科室请求
type UpdateSectionRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// SectionResponse 科室详情
type SectionResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsArchived    bool   `json:"is_archived"`
	ArchivedAt    string `json:"archived_at,omitempty"`
	EmployeeCount int64  `json:"employee_count"`
}
