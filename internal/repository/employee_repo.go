package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldoffice-hris/internal/model"
)

// EmployeeSearchFilters 员工复合检索条件
type EmployeeSearchFilters struct {
	Search          string // 自由文本：姓名/全名/职位/当前任职职位/科室名
	SectionID       string
	StatusID        string
	Position        string // 子串匹配员工职位或当前任职职位
	IncludeArchived bool   // true 时返回 已归档 ∪ 已离职 并集
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	// GetByIDForUpdate 行级锁读取，生命周期事务内串行化同一员工的并发变更
	GetByIDForUpdate(ctx context.Context, id string) (*model.Employee, error)
	// GetByName 按规范化后的姓名精确匹配（导入身份识别）
	GetByName(ctx context.Context, firstName, lastName string) (*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filters *EmployeeSearchFilters, offset, limit int) ([]model.Employee, int64, error)
	Suggest(ctx context.Context, term string, limit int) ([]model.Employee, error)
	CountByArchived(ctx context.Context, archived bool) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountBySection(ctx context.Context) (map[string]int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Employee, error)
	ListPositions(ctx context.Context) ([]string, error)
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Preload("Section").
		Preload("EmploymentStatus").
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachCurrentAssignments(ctx, []*model.Employee{&employee}); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByName(ctx context.Context, firstName, lastName string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	// 合同/任职/离职/时间线由外键 ON DELETE CASCADE 一并删除；审计日志无外键故留存
	return r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		Delete(&model.Employee{}).Error
}

// searchableQuery 构建带科室与当前任职连接的基础查询
func (r *employeeRepo) searchableQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Joins("LEFT JOIN sections ON sections.section_id = employees.section_id").
		Joins("LEFT JOIN assignments cur ON cur.employee_id = employees.employee_id AND cur.end_date IS NULL")
}

// applyTextMatch 自由文本匹配：名/姓/中间名/全名拼接/职位/当前任职职位/科室名
func applyTextMatch(db *gorm.DB, term string) *gorm.DB {
	pattern := "%" + term + "%"
	return db.Where(`(employees.first_name ILIKE ?
		OR employees.last_name ILIKE ?
		OR employees.middle_name ILIKE ?
		OR (employees.first_name || ' ' || COALESCE(employees.middle_name, '') || ' ' || employees.last_name) ILIKE ?
		OR employees.position ILIKE ?
		OR cur.position ILIKE ?
		OR sections.name ILIKE ?)`,
		pattern, pattern, pattern, pattern, pattern, pattern, pattern)
}

// rankedOrder 七档相关度排序（仅在自由文本检索时使用）
// 1 名精确 → 2 姓精确 → 3 名前缀 → 4 姓前缀 → 5 全名子串 → 6 职位子串 → 7 其余
func rankedOrder(db *gorm.DB, term string) *gorm.DB {
	prefix := term + "%"
	substr := "%" + term + "%"
	return db.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL: `CASE
				WHEN LOWER(employees.first_name) = LOWER(?) THEN 1
				WHEN LOWER(employees.last_name) = LOWER(?) THEN 2
				WHEN employees.first_name ILIKE ? THEN 3
				WHEN employees.last_name ILIKE ? THEN 4
				WHEN (employees.first_name || ' ' || COALESCE(employees.middle_name, '') || ' ' || employees.last_name) ILIKE ? THEN 5
				WHEN employees.position ILIKE ? THEN 6
				ELSE 7
			END, employees.last_name ASC, employees.first_name ASC`,
			Vars:               []interface{}{term, term, prefix, prefix, substr, substr},
			WithoutParentheses: true,
		},
	})
}

func (r *employeeRepo) Search(ctx context.Context, filters *EmployeeSearchFilters, offset, limit int) ([]model.Employee, int64, error) {
	db := r.searchableQuery(ctx)

	if filters.Search != "" {
		db = applyTextMatch(db, filters.Search)
	}
	if filters.SectionID != "" {
		db = db.Where("employees.section_id = ?", filters.SectionID)
	}
	if filters.StatusID != "" {
		db = db.Where("employees.employment_status_id = ?", filters.StatusID)
	}
	if filters.Position != "" {
		pattern := "%" + filters.Position + "%"
		db = db.Where("(employees.position ILIKE ? OR cur.position ILIKE ?)", pattern, pattern)
	}

	// 可见性规则：
	//   archived=true   → 已归档 ∪ 已离职 并集
	//   默认无检索词    → 排除已归档与已离职
	//   默认有检索词    → 离职未归档者可被检索到，已归档仍隐藏
	switch {
	case filters.IncludeArchived:
		db = db.Where("(employees.is_archived = TRUE OR employees.date_resigned IS NOT NULL)")
	case filters.Search != "":
		db = db.Where("employees.is_archived = FALSE")
	default:
		db = db.Where("employees.is_archived = FALSE AND employees.date_resigned IS NULL")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Search != "" {
		db = rankedOrder(db, filters.Search)
	} else {
		db = db.Order("employees.last_name ASC, employees.first_name ASC")
	}

	var employees []model.Employee
	err := db.Select("employees.*").
		Preload("Section").
		Preload("EmploymentStatus").
		Offset(offset).Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*model.Employee, len(employees))
	for i := range employees {
		refs[i] = &employees[i]
	}
	if err := r.attachCurrentAssignments(ctx, refs); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// suggestOrder 建议接口的五档简化排序
func suggestOrder(db *gorm.DB, term string) *gorm.DB {
	prefix := term + "%"
	return db.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL: `CASE
				WHEN LOWER(employees.first_name) = LOWER(?) THEN 1
				WHEN LOWER(employees.last_name) = LOWER(?) THEN 2
				WHEN employees.first_name ILIKE ? THEN 3
				WHEN employees.last_name ILIKE ? THEN 4
				ELSE 5
			END, employees.last_name ASC, employees.first_name ASC`,
			Vars:               []interface{}{term, term, prefix, prefix},
			WithoutParentheses: true,
		},
	})
}

func (r *employeeRepo) Suggest(ctx context.Context, term string, limit int) ([]model.Employee, error) {
	db := applyTextMatch(r.searchableQuery(ctx), term).
		// 建议结果包含离职未归档者，排除已归档者
		Where("employees.is_archived = FALSE")

	db = suggestOrder(db, term)

	var employees []model.Employee
	err := db.Select("employees.*").
		Preload("Section").
		Preload("EmploymentStatus").
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*model.Employee, len(employees))
	for i := range employees {
		refs[i] = &employees[i]
	}
	if err := r.attachCurrentAssignments(ctx, refs); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *employeeRepo) CountByArchived(ctx context.Context, archived bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("is_archived = ?", archived).
		Count(&count).Error
	return count, err
}

func (r *employeeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&count).Error
	return count, err
}

func (r *employeeRepo) CountBySection(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Name  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("COALESCE(sections.name, 'N/A') AS name, COUNT(*) AS count").
		Joins("LEFT JOIN sections ON sections.section_id = employees.section_id").
		Where("employees.is_archived = FALSE").
		Group("sections.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Name] = r.Count
	}
	return result, nil
}

func (r *employeeRepo) ListRecent(ctx context.Context, limit int) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Preload("Section").
		Preload("EmploymentStatus").
		Where("is_archived = FALSE").
		Order("created_at DESC").
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*model.Employee, len(employees))
	for i := range employees {
		refs[i] = &employees[i]
	}
	if err := r.attachCurrentAssignments(ctx, refs); err != nil {
		return nil, err
	}

	return employees, nil
}

// ListPositions 员工职位与任职职位的去重并集（筛选下拉框数据源）
func (r *employeeRepo) ListPositions(ctx context.Context) ([]string, error) {
	var positions []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT position FROM (
			SELECT position FROM employees WHERE position IS NOT NULL AND position <> ''
			UNION
			SELECT position FROM assignments WHERE position IS NOT NULL AND position <> ''
		) p ORDER BY position ASC`).
		Scan(&positions).Error
	return positions, err
}

// attachCurrentAssignments 批量装载当前任职记录，避免 N+1 查询问题
func (r *employeeRepo) attachCurrentAssignments(ctx context.Context, employees []*model.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.EmployeeID)
	}

	var open []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Section").
		Where("employee_id IN ? AND end_date IS NULL", ids).
		Find(&open).Error
	if err != nil {
		return err
	}

	byEmployee := make(map[string]*model.Assignment, len(open))
	for i := range open {
		byEmployee[open[i].EmployeeID] = &open[i]
	}
	for _, e := range employees {
		e.CurrentAssignment = byEmployee[e.EmployeeID]
	}
	return nil
}
