package service

import (
	"strings"
	"time"
	"unicode"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
)

const dateLayout = "2006-01-02"

// ── 日期与姓名规整 ──

// parseDate 解析 YYYY-MM-DD 日期字符串，空串返回 nil
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// normalizeName 折叠连续空白并逐词首字母大写
func normalizeName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// normalizeSuffix 姓名后缀：Jr/Sr 保持点号写法，罗马数字等统一大写
func normalizeSuffix(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch strings.ToUpper(strings.TrimSuffix(s, ".")) {
	case "JR":
		return "Jr."
	case "SR":
		return "Sr."
	}
	return strings.ToUpper(s)
}

// ── 模型到响应的转换 ──

func toEmployeeResponse(e *model.Employee, now time.Time) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		ID:              e.EmployeeID,
		FirstName:       e.FirstName,
		MiddleName:      e.MiddleName,
		LastName:        e.LastName,
		Suffix:          e.Suffix,
		Sex:             e.Sex,
		Position:        e.EffectivePosition(),
		SectionID:       e.SectionID,
		StatusID:        e.EmploymentStatusID,
		DateStarted:     formatDate(e.DateStarted),
		DateResigned:    formatDate(e.DateResigned),
		IsArchived:      e.IsArchived,
		ArchivedAt:      formatDate(e.ArchivedAt),
		ArchivedReason:  e.ArchivedReason,
		LengthOfService: e.LengthOfService(now),
	}
	if e.Section != nil {
		resp.SectionName = e.Section.Name
	}
	if e.EmploymentStatus != nil {
		resp.StatusName = e.EmploymentStatus.Name
	}
	return resp
}

func toContractResponse(c *model.Contract) dto.ContractResponse {
	start := c.StartDate
	return dto.ContractResponse{
		ID:           c.ContractID,
		ContractType: c.ContractType,
		StartDate:    formatDate(&start),
		EndDate:      formatDate(c.EndDate),
		Status:       c.Status,
		Notes:        c.Notes,
	}
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	start := a.StartDate
	resp := dto.AssignmentResponse{
		ID:        a.AssignmentID,
		SectionID: a.SectionID,
		StartDate: formatDate(&start),
		EndDate:   formatDate(a.EndDate),
		Position:  a.Position,
		Notes:     a.Notes,
	}
	if a.Section != nil {
		resp.SectionName = a.Section.Name
	}
	return resp
}

func toResignationResponse(r *model.Resignation) dto.ResignationResponse {
	date := r.ResignationDate
	return dto.ResignationResponse{
		ID:              r.ResignationID,
		ResignationDate: formatDate(&date),
		Reason:          r.Reason,
		Notes:           r.Notes,
	}
}

func toTimelineResponse(ev *model.TimelineEvent) dto.TimelineEventResponse {
	date := ev.EventDate
	return dto.TimelineEventResponse{
		ID:          ev.EventID,
		EventType:   ev.EventType,
		Title:       ev.Title,
		Description: ev.Description,
		EventDate:   formatDate(&date),
		OldValues:   ev.OldValues,
		NewValues:   ev.NewValues,
	}
}

func toSectionResponse(s *model.Section, employeeCount int64) dto.SectionResponse {
	return dto.SectionResponse{
		ID:            s.SectionID,
		Name:          s.Name,
		Description:   s.Description,
		IsArchived:    s.IsArchived,
		ArchivedAt:    formatDate(s.ArchivedAt),
		EmployeeCount: employeeCount,
	}
}

func toStatusResponse(s *model.EmploymentStatus, employeeCount int64) dto.EmploymentStatusResponse {
	return dto.EmploymentStatusResponse{
		ID:            s.StatusID,
		Name:          s.Name,
		Description:   s.Description,
		IsArchived:    s.IsArchived,
		ArchivedAt:    formatDate(s.ArchivedAt),
		EmployeeCount: employeeCount,
	}
}
