//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=hris password=hris_password dbname=hris_test sslmode=disable TimeZone=Asia/Manila"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Section{},
		&model.EmploymentStatus{},
		&model.Employee{},
		&model.Contract{},
		&model.Assignment{},
		&model.Resignation{},
		&model.TimelineEvent{},
		&model.ActivityLog{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (section *model.Section, status *model.EmploymentStatus, employee *model.Employee, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	section = &model.Section{
		Name: fmt.Sprintf("测试科室-%d", time.Now().UnixNano()),
	}
	if err := testDB.WithContext(ctx).Create(section).Error; err != nil {
		t.Fatalf("创建科室失败: %v", err)
	}

	status = &model.EmploymentStatus{
		Name: fmt.Sprintf("测试状态-%d", time.Now().UnixNano()),
	}
	if err := testDB.WithContext(ctx).Create(status).Error; err != nil {
		t.Fatalf("创建聘用状态失败: %v", err)
	}

	started := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	employee = &model.Employee{
		FirstName:          "Juan",
		LastName:           fmt.Sprintf("Testcruz%d", time.Now().UnixNano()),
		Position:           "Clerk II",
		SectionID:          section.SectionID,
		EmploymentStatusID: status.StatusID,
		DateStarted:        &started,
	}
	if err := testDB.WithContext(ctx).Create(employee).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("employee_id = ?", employee.EmployeeID).Delete(&model.Resignation{})
		testDB.Unscoped().Where("employee_id = ?", employee.EmployeeID).Delete(&model.Contract{})
		testDB.Unscoped().Where("employee_id = ?", employee.EmployeeID).Delete(&model.Assignment{})
		testDB.Unscoped().Where("employee_id = ?", employee.EmployeeID).Delete(&model.TimelineEvent{})
		testDB.Unscoped().Where("employee_id = ?", employee.EmployeeID).Delete(&model.Employee{})
		testDB.Unscoped().Where("status_id = ?", status.StatusID).Delete(&model.EmploymentStatus{})
		testDB.Unscoped().Where("section_id = ?", section.SectionID).Delete(&model.Section{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback / Commit
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	_, _, employee, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	resignation := &model.Resignation{
		EmployeeID:      employee.EmployeeID,
		ResignationDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Reason:          "Rollback test",
	}
	if err := txRepo.Resignation.Create(ctx, resignation); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建离职记录失败: %v", err)
	}

	tx.Rollback()

	// 验证数据未持久化
	_, err = repo.Resignation.GetByEmployeeAndDate(ctx, employee.EmployeeID, resignation.ResignationDate)
	if err == nil {
		testDB.Unscoped().Where("resignation_id = ?", resignation.ResignationID).Delete(&model.Resignation{})
		t.Fatal("期望回滚后查不到离职记录，但实际查到了")
	}
}

func TestTransaction_Commit(t *testing.T) {
	_, _, employee, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	resignation := &model.Resignation{
		EmployeeID:      employee.EmployeeID,
		ResignationDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Reason:          "Commit test",
	}
	if err := txRepo.Resignation.Create(ctx, resignation); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建离职记录失败: %v", err)
	}

	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}

	found, err := repo.Resignation.GetByEmployeeAndDate(ctx, employee.EmployeeID, resignation.ResignationDate)
	if err != nil {
		t.Fatalf("提交后查询离职记录失败: %v", err)
	}
	if found.ResignationID != resignation.ResignationID {
		t.Errorf("ID 不匹配: expected %s, got %s", resignation.ResignationID, found.ResignationID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Employee Search
// ═══════════════════════════════════════════════════════════

func TestEmployeeRepo_Search_VisibilityAndRanking(t *testing.T) {
	_, _, employee, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 默认视图包含在职员工
	results, total, err := repo.Employee.Search(ctx, &repository.EmployeeSearchFilters{Search: employee.LastName}, 0, 12)
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if total < 1 {
		t.Fatal("应检索到在职员工")
	}
	found := false
	for _, r := range results {
		if r.EmployeeID == employee.EmployeeID {
			found = true
		}
	}
	if !found {
		t.Error("结果中应包含测试员工")
	}

	// 归档后默认视图不可见
	if err := testDB.Model(&model.Employee{}).Where("employee_id = ?", employee.EmployeeID).Update("is_archived", true).Error; err != nil {
		t.Fatalf("归档员工失败: %v", err)
	}
	_, total, err = repo.Employee.Search(ctx, &repository.EmployeeSearchFilters{Search: employee.LastName}, 0, 12)
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if total != 0 {
		t.Errorf("归档员工不应出现在默认视图, total = %d", total)
	}

	// 归档视图可见
	_, total, err = repo.Employee.Search(ctx, &repository.EmployeeSearchFilters{IncludeArchived: true}, 0, 12)
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if total < 1 {
		t.Error("归档视图应包含已归档员工")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Contract CloseActive
// ═══════════════════════════════════════════════════════════

func TestContractRepo_CloseActive(t *testing.T) {
	_, _, employee, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	contract := &model.Contract{
		EmployeeID:   employee.EmployeeID,
		ContractType: "Regular",
		StartDate:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:       model.ContractStatusActive,
	}
	if err := repo.Contract.Create(ctx, contract); err != nil {
		t.Fatalf("创建合同失败: %v", err)
	}

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	if err := repo.Contract.CloseActive(ctx, employee.EmployeeID, end); err != nil {
		t.Fatalf("CloseActive 失败: %v", err)
	}

	contracts, err := repo.Contract.ListByEmployee(ctx, employee.EmployeeID)
	if err != nil {
		t.Fatalf("查询合同失败: %v", err)
	}
	if len(contracts) != 1 {
		t.Fatalf("合同数 = %d", len(contracts))
	}
	if contracts[0].Status != model.ContractStatusExpired {
		t.Errorf("状态 = %q, 期望 Expired", contracts[0].Status)
	}
	if contracts[0].EndDate == nil {
		t.Error("应写入结束日期")
	}
}
