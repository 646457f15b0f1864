package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	seq       int

	sections    *mockSectionRepo
	statuses    *mockStatusRepo
	assignments *mockAssignmentRepo
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		m.seq++
		employee.EmployeeID = fmt.Sprintf("emp-%d", m.seq)
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.employees[employee.EmployeeID] = employee
	return nil
}

// hydrate 返回装配了关联的副本（模拟 Preload 与当前任职回填）
func (m *mockEmployeeRepo) hydrate(e *model.Employee) *model.Employee {
	cp := *e
	if m.sections != nil {
		if s, ok := m.sections.sections[e.SectionID]; ok {
			cp.Section = s
		}
	}
	if m.statuses != nil {
		if s, ok := m.statuses.statuses[e.EmploymentStatusID]; ok {
			cp.EmploymentStatus = s
		}
	}
	if m.assignments != nil {
		for _, a := range m.assignments.assignments {
			if a.EmployeeID == e.EmployeeID && a.EndDate == nil {
				ac := *a
				cp.CurrentAssignment = &ac
				break
			}
		}
	}
	return &cp
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return m.hydrate(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByIDForUpdate(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByName(_ context.Context, firstName, lastName string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.FirstName == firstName && e.LastName == lastName {
			return m.hydrate(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) textMatch(e *model.Employee, term string) bool {
	t := strings.ToLower(term)
	full := strings.ToLower(e.FirstName + " " + e.MiddleName + " " + e.LastName)
	fields := []string{
		strings.ToLower(e.FirstName),
		strings.ToLower(e.LastName),
		strings.ToLower(e.MiddleName),
		full,
		strings.ToLower(e.Position),
	}
	if m.assignments != nil {
		for _, a := range m.assignments.assignments {
			if a.EmployeeID == e.EmployeeID && a.EndDate == nil {
				fields = append(fields, strings.ToLower(a.Position))
			}
		}
	}
	if m.sections != nil {
		if s, ok := m.sections.sections[e.SectionID]; ok {
			fields = append(fields, strings.ToLower(s.Name))
		}
	}
	for _, f := range fields {
		if f != "" && strings.Contains(f, t) {
			return true
		}
	}
	return false
}

// rankTier 七档相关度（与存储层排序 CASE 对齐）
func rankTier(e *model.Employee, term string) int {
	t := strings.ToLower(term)
	first := strings.ToLower(e.FirstName)
	last := strings.ToLower(e.LastName)
	full := strings.ToLower(e.FirstName + " " + e.MiddleName + " " + e.LastName)
	switch {
	case first == t:
		return 1
	case last == t:
		return 2
	case strings.HasPrefix(first, t):
		return 3
	case strings.HasPrefix(last, t):
		return 4
	case strings.Contains(full, t):
		return 5
	case strings.Contains(strings.ToLower(e.Position), t):
		return 6
	default:
		return 7
	}
}

func (m *mockEmployeeRepo) visible(e *model.Employee, filters *repository.EmployeeSearchFilters) bool {
	switch {
	case filters.IncludeArchived:
		if !e.IsArchived && e.DateResigned == nil {
			return false
		}
	case filters.Search != "":
		if e.IsArchived {
			return false
		}
	default:
		if e.IsArchived || e.DateResigned != nil {
			return false
		}
	}
	if filters.SectionID != "" && e.SectionID != filters.SectionID {
		return false
	}
	if filters.StatusID != "" && e.EmploymentStatusID != filters.StatusID {
		return false
	}
	if filters.Position != "" {
		p := strings.ToLower(filters.Position)
		matched := strings.Contains(strings.ToLower(e.Position), p)
		if !matched && m.assignments != nil {
			for _, a := range m.assignments.assignments {
				if a.EmployeeID == e.EmployeeID && a.EndDate == nil && strings.Contains(strings.ToLower(a.Position), p) {
					matched = true
				}
			}
		}
		if !matched {
			return false
		}
	}
	if filters.Search != "" && !m.textMatch(e, filters.Search) {
		return false
	}
	return true
}

func (m *mockEmployeeRepo) Search(_ context.Context, filters *repository.EmployeeSearchFilters, offset, limit int) ([]model.Employee, int64, error) {
	var matched []*model.Employee
	for _, e := range m.employees {
		if m.visible(e, filters) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if filters.Search != "" {
			ti, tj := rankTier(matched[i], filters.Search), rankTier(matched[j], filters.Search)
			if ti != tj {
				return ti < tj
			}
		}
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		return matched[i].FirstName < matched[j].FirstName
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	result := make([]model.Employee, 0, end-offset)
	for _, e := range matched[offset:end] {
		result = append(result, *m.hydrate(e))
	}
	return result, total, nil
}

func (m *mockEmployeeRepo) Suggest(_ context.Context, term string, limit int) ([]model.Employee, error) {
	var matched []*model.Employee
	for _, e := range m.employees {
		if e.IsArchived {
			continue
		}
		if m.textMatch(e, term) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ti, tj := rankTier(matched[i], term), rankTier(matched[j], term)
		if ti != tj {
			return ti < tj
		}
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		return matched[i].FirstName < matched[j].FirstName
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	result := make([]model.Employee, 0, len(matched))
	for _, e := range matched {
		result = append(result, *m.hydrate(e))
	}
	return result, nil
}

func (m *mockEmployeeRepo) CountByArchived(_ context.Context, archived bool) (int64, error) {
	var count int64
	for _, e := range m.employees {
		if e.IsArchived == archived {
			count++
		}
	}
	return count, nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepo) CountBySection(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, e := range m.employees {
		if e.IsArchived {
			continue
		}
		name := "N/A"
		if m.sections != nil {
			if s, ok := m.sections.sections[e.SectionID]; ok {
				name = s.Name
			}
		}
		result[name]++
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListRecent(_ context.Context, limit int) ([]model.Employee, error) {
	var active []*model.Employee
	for _, e := range m.employees {
		if !e.IsArchived {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	if len(active) > limit {
		active = active[:limit]
	}
	result := make([]model.Employee, 0, len(active))
	for _, e := range active {
		result = append(result, *m.hydrate(e))
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListPositions(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, e := range m.employees {
		if e.Position != "" {
			seen[e.Position] = true
		}
	}
	if m.assignments != nil {
		for _, a := range m.assignments.assignments {
			if a.Position != "" {
				seen[a.Position] = true
			}
		}
	}
	var positions []string
	for p := range seen {
		positions = append(positions, p)
	}
	sort.Strings(positions)
	return positions, nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections  map[string]*model.Section
	seq       int
	employees *mockEmployeeRepo
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section)}
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.Section) error {
	if section.SectionID == "" {
		m.seq++
		section.SectionID = fmt.Sprintf("sec-%d", m.seq)
	}
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) GetActiveByName(_ context.Context, name string) (*model.Section, error) {
	for _, s := range m.sections {
		if !s.IsArchived && s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) List(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		if !s.IsArchived {
			result = append(result, *s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSectionRepo) ListAll(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.Section) error {
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) CountEmployees(_ context.Context, sectionID string) (int64, error) {
	var count int64
	if m.employees != nil {
		for _, e := range m.employees.employees {
			if e.SectionID == sectionID && !e.IsArchived {
				count++
			}
		}
	}
	return count, nil
}

// ── Mock EmploymentStatusRepository ──

type mockStatusRepo struct {
	statuses  map[string]*model.EmploymentStatus
	seq       int
	employees *mockEmployeeRepo
}

func newMockStatusRepo() *mockStatusRepo {
	return &mockStatusRepo{statuses: make(map[string]*model.EmploymentStatus)}
}

func (m *mockStatusRepo) Create(_ context.Context, status *model.EmploymentStatus) error {
	if status.StatusID == "" {
		m.seq++
		status.StatusID = fmt.Sprintf("st-%d", m.seq)
	}
	m.statuses[status.StatusID] = status
	return nil
}

func (m *mockStatusRepo) GetByID(_ context.Context, id string) (*model.EmploymentStatus, error) {
	if s, ok := m.statuses[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStatusRepo) GetActiveByName(_ context.Context, name string) (*model.EmploymentStatus, error) {
	for _, s := range m.statuses {
		if !s.IsArchived && s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStatusRepo) List(_ context.Context) ([]model.EmploymentStatus, error) {
	var result []model.EmploymentStatus
	for _, s := range m.statuses {
		if !s.IsArchived {
			result = append(result, *s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockStatusRepo) ListAll(_ context.Context) ([]model.EmploymentStatus, error) {
	var result []model.EmploymentStatus
	for _, s := range m.statuses {
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockStatusRepo) Update(_ context.Context, status *model.EmploymentStatus) error {
	m.statuses[status.StatusID] = status
	return nil
}

func (m *mockStatusRepo) CountEmployees(_ context.Context, statusID string) (int64, error) {
	var count int64
	if m.employees != nil {
		for _, e := range m.employees.employees {
			if e.EmploymentStatusID == statusID && !e.IsArchived {
				count++
			}
		}
	}
	return count, nil
}

// ── Mock ContractRepository ──

type mockContractRepo struct {
	contracts []*model.Contract
	seq       int
	employees *mockEmployeeRepo
}

func newMockContractRepo() *mockContractRepo {
	return &mockContractRepo{}
}

func (m *mockContractRepo) Create(_ context.Context, contract *model.Contract) error {
	if contract.ContractID == "" {
		m.seq++
		contract.ContractID = fmt.Sprintf("con-%d", m.seq)
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.contracts = append(m.contracts, contract)
	return nil
}

func (m *mockContractRepo) GetActiveByEmployee(_ context.Context, employeeID string) (*model.Contract, error) {
	for _, c := range m.contracts {
		if c.EmployeeID == employeeID && c.Status == model.ContractStatusActive {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) CloseActive(_ context.Context, employeeID string, endDate time.Time) error {
	for _, c := range m.contracts {
		if c.EmployeeID == employeeID && c.Status == model.ContractStatusActive {
			c.Status = model.ContractStatusExpired
			end := endDate
			c.EndDate = &end
		}
	}
	return nil
}

func (m *mockContractRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		if c.EmployeeID == employeeID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockContractRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.contracts)), nil
}

func (m *mockContractRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, c := range m.contracts {
		if c.Status == model.ContractStatusActive {
			count++
		}
	}
	return count, nil
}

func (m *mockContractRepo) hydrate(c *model.Contract) model.Contract {
	cp := *c
	if m.employees != nil {
		if e, ok := m.employees.employees[c.EmployeeID]; ok {
			cp.Employee = m.employees.hydrate(e)
		}
	}
	return cp
}

func (m *mockContractRepo) ListRecent(_ context.Context, limit int) ([]model.Contract, error) {
	sorted := append([]*model.Contract(nil), m.contracts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]model.Contract, 0, len(sorted))
	for _, c := range sorted {
		result = append(result, m.hydrate(c))
	}
	return result, nil
}

func (m *mockContractRepo) ListSince(_ context.Context, from *time.Time) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		if from != nil && c.StartDate.Before(*from) {
			continue
		}
		result = append(result, m.hydrate(c))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment
	seq         int
	employees   *mockEmployeeRepo
	sections    *mockSectionRepo
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%d", m.seq)
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockAssignmentRepo) GetOpenByEmployee(_ context.Context, employeeID string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.EndDate == nil {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) CloseOpen(_ context.Context, employeeID string, endDate time.Time) error {
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.EndDate == nil {
			end := endDate
			a.EndDate = &end
		}
	}
	return nil
}

func (m *mockAssignmentRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.assignments)), nil
}

func (m *mockAssignmentRepo) CountOpen(_ context.Context) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if a.EndDate == nil {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepo) hydrate(a *model.Assignment) model.Assignment {
	cp := *a
	if m.employees != nil {
		if e, ok := m.employees.employees[a.EmployeeID]; ok {
			cp.Employee = m.employees.hydrate(e)
		}
	}
	if m.sections != nil {
		if s, ok := m.sections.sections[a.SectionID]; ok {
			cp.Section = s
		}
	}
	return cp
}

func (m *mockAssignmentRepo) ListRecent(_ context.Context, limit int) ([]model.Assignment, error) {
	sorted := append([]*model.Assignment(nil), m.assignments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]model.Assignment, 0, len(sorted))
	for _, a := range sorted {
		result = append(result, m.hydrate(a))
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListSince(_ context.Context, from *time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if from != nil && a.StartDate.Before(*from) {
			continue
		}
		result = append(result, m.hydrate(a))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

// ── Mock ResignationRepository ──

type mockResignationRepo struct {
	resignations []*model.Resignation
	seq          int
	employees    *mockEmployeeRepo
}

func newMockResignationRepo() *mockResignationRepo {
	return &mockResignationRepo{}
}

func (m *mockResignationRepo) Create(_ context.Context, resignation *model.Resignation) error {
	if resignation.ResignationID == "" {
		m.seq++
		resignation.ResignationID = fmt.Sprintf("res-%d", m.seq)
	}
	if resignation.CreatedAt.IsZero() {
		resignation.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.resignations = append(m.resignations, resignation)
	return nil
}

func (m *mockResignationRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*model.Resignation, error) {
	for _, r := range m.resignations {
		if r.EmployeeID == employeeID && r.ResignationDate.Equal(date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResignationRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.Resignation, error) {
	var result []model.Resignation
	for _, r := range m.resignations {
		if r.EmployeeID == employeeID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockResignationRepo) hydrate(r *model.Resignation) model.Resignation {
	cp := *r
	if m.employees != nil {
		if e, ok := m.employees.employees[r.EmployeeID]; ok {
			cp.Employee = m.employees.hydrate(e)
		}
	}
	return cp
}

func (m *mockResignationRepo) ListHistory(_ context.Context, filters *repository.HistoryFilters, offset, limit int) ([]model.Resignation, int64, error) {
	var matched []*model.Resignation
	for _, r := range m.resignations {
		e := (*model.Employee)(nil)
		if m.employees != nil {
			e = m.employees.employees[r.EmployeeID]
		}
		if e == nil {
			continue
		}
		if filters.Search != "" {
			full := strings.ToLower(e.FirstName + " " + e.MiddleName + " " + e.LastName)
			t := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(e.FirstName), t) &&
				!strings.Contains(strings.ToLower(e.LastName), t) &&
				!strings.Contains(full, t) {
				continue
			}
		}
		if filters.SectionID != "" && e.SectionID != filters.SectionID {
			continue
		}
		if filters.Since != nil && r.ResignationDate.Before(*filters.Since) {
			continue
		}
		matched = append(matched, r)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ResignationDate.After(matched[j].ResignationDate)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.Resignation{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	result := make([]model.Resignation, 0, end-offset)
	for _, r := range matched[offset:end] {
		result = append(result, m.hydrate(r))
	}
	return result, total, nil
}

func (m *mockResignationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.resignations)), nil
}

func (m *mockResignationRepo) CountInMonth(_ context.Context, year int, month time.Month) (int64, error) {
	var count int64
	for _, r := range m.resignations {
		if r.ResignationDate.Year() == year && r.ResignationDate.Month() == month {
			count++
		}
	}
	return count, nil
}

func (m *mockResignationRepo) ListRecent(_ context.Context, limit int) ([]model.Resignation, error) {
	sorted := append([]*model.Resignation(nil), m.resignations...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]model.Resignation, 0, len(sorted))
	for _, r := range sorted {
		result = append(result, m.hydrate(r))
	}
	return result, nil
}

func (m *mockResignationRepo) ListSince(_ context.Context, from *time.Time) ([]model.Resignation, error) {
	var result []model.Resignation
	for _, r := range m.resignations {
		if from != nil && r.ResignationDate.Before(*from) {
			continue
		}
		result = append(result, m.hydrate(r))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ResignationDate.Before(result[j].ResignationDate) })
	return result, nil
}

// ── Mock TimelineRepository ──

type mockTimelineRepo struct {
	events []*model.TimelineEvent
	seq    int
}

func newMockTimelineRepo() *mockTimelineRepo {
	return &mockTimelineRepo{}
}

func (m *mockTimelineRepo) Create(_ context.Context, event *model.TimelineEvent) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("ev-%d", m.seq)
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockTimelineRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.TimelineEvent, error) {
	var result []model.TimelineEvent
	for _, e := range m.events {
		if e.EmployeeID == employeeID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockTimelineRepo) byType(employeeID, eventType string) []*model.TimelineEvent {
	var result []*model.TimelineEvent
	for _, e := range m.events {
		if e.EmployeeID == employeeID && e.EventType == eventType {
			result = append(result, e)
		}
	}
	return result
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	logs []*model.ActivityLog
	seq  int
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, log *model.ActivityLog) error {
	if log.LogID == "" {
		m.seq++
		log.LogID = fmt.Sprintf("log-%d", m.seq)
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockActivityLogRepo) ListBySubject(_ context.Context, subjectType, subjectID string, limit int) ([]model.ActivityLog, error) {
	var result []model.ActivityLog
	for _, l := range m.logs {
		if l.SubjectType == subjectType && l.SubjectID == subjectID {
			result = append(result, *l)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── 聚合装配 ──

type mockRepos struct {
	employees    *mockEmployeeRepo
	sections     *mockSectionRepo
	statuses     *mockStatusRepo
	contracts    *mockContractRepo
	assignments  *mockAssignmentRepo
	resignations *mockResignationRepo
	timeline     *mockTimelineRepo
	logs         *mockActivityLogRepo
}

// newMockRepository 构造纯内存聚合；无底层连接，BeginTx 返回 nil 事务
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		employees:    newMockEmployeeRepo(),
		sections:     newMockSectionRepo(),
		statuses:     newMockStatusRepo(),
		contracts:    newMockContractRepo(),
		assignments:  newMockAssignmentRepo(),
		resignations: newMockResignationRepo(),
		timeline:     newMockTimelineRepo(),
		logs:         newMockActivityLogRepo(),
	}

	// 关联回填用的交叉引用
	m.employees.sections = m.sections
	m.employees.statuses = m.statuses
	m.employees.assignments = m.assignments
	m.sections.employees = m.employees
	m.statuses.employees = m.employees
	m.contracts.employees = m.employees
	m.assignments.employees = m.employees
	m.assignments.sections = m.sections
	m.resignations.employees = m.employees

	repo := &repository.Repository{
		Employee:         m.employees,
		Section:          m.sections,
		EmploymentStatus: m.statuses,
		Contract:         m.contracts,
		Assignment:       m.assignments,
		Resignation:      m.resignations,
		Timeline:         m.timeline,
		ActivityLog:      m.logs,
	}
	return repo, m
}

// seedSection / seedStatus 测试数据快捷构造
func (m *mockRepos) seedSection(id, name string) *model.Section {
	s := &model.Section{SectionID: id, Name: name}
	m.sections.sections[id] = s
	return s
}

func (m *mockRepos) seedStatus(id, name string) *model.EmploymentStatus {
	s := &model.EmploymentStatus{StatusID: id, Name: name}
	m.statuses.statuses[id] = s
	return s
}
