package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
)

func newImportTestEnv(t *testing.T) (ImportService, *mockRepos) {
	t.Helper()
	repo, m := newMockRepository()
	lifecycle := NewLifecycleService(repo, zap.NewNop())
	return NewImportService(repo, lifecycle, zap.NewNop()), m
}

func TestImportService_CreatesEmployeeAndLookups(t *testing.T) {
	svc, m := newImportTestEnv(t)

	resp, err := svc.ImportEmployees(context.Background(), &dto.ImportEmployeesRequest{
		Employees: []dto.ImportEmployeeRow{
			{
				Row:              2,
				FirstName:        "juan",
				LastName:         "dela cruz",
				Office:           "human resources",
				EmploymentStatus: "permanent",
				Position:         "Clerk II",
				ContractType:     "Regular",
				DateStarted:      "2023-01-15",
			},
		},
	}, SystemActor())
	if err != nil {
		t.Fatalf("ImportEmployees 应成功: %v", err)
	}
	if resp.Created != 1 || resp.Updated != 0 || resp.Failed != 0 {
		t.Fatalf("回执 = %+v", resp)
	}

	// 科室与聘用状态按名称创建
	if _, err := m.sections.GetActiveByName(context.Background(), "Human Resources"); err != nil {
		t.Error("应按规范化名称创建科室 Human Resources")
	}
	if _, err := m.statuses.GetActiveByName(context.Background(), "Permanent"); err != nil {
		t.Error("应按规范化名称创建聘用状态 Permanent")
	}

	// 入职路径产生完整记录集
	if len(m.employees.employees) != 1 {
		t.Fatalf("员工数 = %d", len(m.employees.employees))
	}
	if len(m.contracts.contracts) != 1 || len(m.assignments.assignments) != 1 {
		t.Error("入职路径应创建初始合同与任职记录")
	}
}

func TestImportService_ReusesExistingLookups(t *testing.T) {
	svc, m := newImportTestEnv(t)
	m.seedSection("sec-hr", "Human Resources")
	m.seedStatus("st-perm", "Permanent")

	resp, err := svc.ImportEmployees(context.Background(), &dto.ImportEmployeesRequest{
		Employees: []dto.ImportEmployeeRow{
			{Row: 2, FirstName: "Ana", LastName: "Garcia", Office: "Human Resources", EmploymentStatus: "Permanent"},
			{Row: 3, FirstName: "Ben", LastName: "Reyes", Office: "Human Resources", EmploymentStatus: "Permanent"},
		},
	}, SystemActor())
	if err != nil {
		t.Fatalf("ImportEmployees 应成功: %v", err)
	}
	if resp.Created != 2 {
		t.Fatalf("回执 = %+v", resp)
	}
	if len(m.sections.sections) != 1 {
		t.Errorf("科室数 = %d, 同名科室不应重复创建", len(m.sections.sections))
	}
	if len(m.statuses.statuses) != 1 {
		t.Errorf("聘用状态数 = %d, 不应重复创建", len(m.statuses.statuses))
	}
}

func TestImportService_UpdatesExistingByNormalizedName(t *testing.T) {
	svc, m := newImportTestEnv(t)
	m.seedSection("sec-hr", "Human Resources")
	m.seedStatus("st-perm", "Permanent")
	existing := seedEmployee(t, m, &model.Employee{
		FirstName: "Juan", LastName: "Dela Cruz", Position: "Clerk I",
	})

	resp, err := svc.ImportEmployees(context.Background(), &dto.ImportEmployeesRequest{
		Employees: []dto.ImportEmployeeRow{
			{
				Row:              2,
				FirstName:        "  juan ",
				LastName:         "DELA CRUZ",
				Office:           "Human Resources",
				EmploymentStatus: "Permanent",
				Position:         "Clerk III",
			},
		},
	}, SystemActor())
	if err != nil {
		t.Fatalf("ImportEmployees 应成功: %v", err)
	}
	if resp.Created != 0 || resp.Updated != 1 {
		t.Fatalf("回执 = %+v, 期望走改档路径", resp)
	}
	if len(m.employees.employees) != 1 {
		t.Errorf("员工数 = %d, 不应重复创建", len(m.employees.employees))
	}
	if m.employees.employees[existing.EmployeeID].Position != "Clerk III" {
		t.Errorf("职位 = %q, 期望更新为 Clerk III", m.employees.employees[existing.EmployeeID].Position)
	}
}

func TestImportService_RowErrorsDoNotAbortBatch(t *testing.T) {
	svc, m := newImportTestEnv(t)

	resp, err := svc.ImportEmployees(context.Background(), &dto.ImportEmployeesRequest{
		Employees: []dto.ImportEmployeeRow{
			{Row: 2, FirstName: "", LastName: "Garcia", Office: "HR", EmploymentStatus: "Permanent"},
			{Row: 3, FirstName: "Ben", LastName: "Reyes", Office: "", EmploymentStatus: "Permanent"},
			{Row: 4, FirstName: "Cruz", LastName: "Santos", Office: "Finance", EmploymentStatus: "Casual"},
		},
	}, SystemActor())
	if err != nil {
		t.Fatalf("逐行失败不应中断批次: %v", err)
	}
	if resp.Total != 3 || resp.Created != 1 || resp.Failed != 2 {
		t.Fatalf("回执 = %+v", resp)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("错误明细数 = %d", len(resp.Errors))
	}
	if resp.Errors[0].Row != 2 || resp.Errors[1].Row != 3 {
		t.Errorf("错误应携带源表行号: %+v", resp.Errors)
	}
	if len(m.employees.employees) != 1 {
		t.Errorf("员工数 = %d, 仅第三行应落库", len(m.employees.employees))
	}
}
