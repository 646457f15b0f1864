package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX_HeadersAndRows(t *testing.T) {
	table := &ExportTable{
		Name:    "contracts",
		Headers: []string{"Employee Name", "Section", "Status"},
		Rows: [][]string{
			{"Ana Garcia", "Human Resources", "Active"},
			{"Ben Reyes", "Finance", "Expired"},
		},
	}

	buf, err := RenderXLSX(table)
	if err != nil {
		t.Fatalf("RenderXLSX 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("工作簿不应为空")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("产物应为合法 xlsx: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("读取表头失败: %v", err)
	}
	if got != "Employee Name" {
		t.Errorf("A1 = %q, 期望 Employee Name", got)
	}
	got, _ = f.GetCellValue("Sheet1", "C3")
	if got != "Expired" {
		t.Errorf("C3 = %q, 期望 Expired", got)
	}
}

func TestRenderXLSX_EmptyTable(t *testing.T) {
	buf, err := RenderXLSX(&ExportTable{Name: "empty"})
	if err != nil {
		t.Fatalf("空表也应渲染成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("工作簿不应为空")
	}
}
