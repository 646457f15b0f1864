package handler

import "fieldoffice-hris/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Employee         *EmployeeHandler
	Directory        *DirectoryHandler
	History          *HistoryHandler
	Section          *SectionHandler
	EmploymentStatus *EmploymentStatusHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Employee:         NewEmployeeHandler(svc.Lifecycle, svc.Search, svc.Import, svc.History),
		Directory:        NewDirectoryHandler(svc.Search),
		History:          NewHistoryHandler(svc.History),
		Section:          NewSectionHandler(svc.Section),
		EmploymentStatus: NewEmploymentStatusHandler(svc.EmploymentStatus),
	}
}
