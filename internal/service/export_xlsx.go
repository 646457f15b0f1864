package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrExportGenerateFail 生成 Excel 文件失败
var ErrExportGenerateFail = errors.New("failed to generate export file")

// RenderXLSX 将表格投影渲染为 Excel 工作簿
// 输出格式：单 Sheet，首行表头加粗填色，列宽按内容类型预设
func RenderXLSX(table *ExportTable) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Sheet1"

	for i := range table.Headers {
		col := colName(i)
		width := 18.0
		if i == 0 {
			width = 24.0
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range table.Headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	if len(table.Headers) > 0 {
		f.SetCellStyle(sheetName, cell(colName(0), 1), cell(colName(len(table.Headers)-1), 1), headerStyle)
	}

	for r, row := range table.Rows {
		for c, value := range row {
			f.SetCellValue(sheetName, cell(colName(c), r+2), value)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
