// Package export — выгрузка журнала посещаемости в xlsx.
package export

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type AttendanceWorkbook struct {
	File *excelize.File
}

// NewAttendanceWorkbook строит лист: первая колонка — ученик, дальше по
// колонке на каждую дату занятия. Незаполненная отметка остаётся пустой
// ячейкой — это "ещё не отмечено", а не "отсутствовал".
func NewAttendanceWorkbook(groupName string, dates []string, matrix map[string]map[string]*string) (*AttendanceWorkbook, error) {
	f := excelize.NewFile()
	sheet := "Журнал"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := append([]string{"Ученик"}, dates...)
	for col, hdr := range header {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, hdr); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	// стиль заголовков + автофильтр по первой строке
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	end := colName(len(header)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	// стабильный порядок строк по имени
	names := make([]string, 0, len(matrix))
	for name := range matrix {
		names = append(names, name)
	}
	sort.Strings(names)

	for r, name := range names {
		if err := f.SetCellStr(sheet, fmt.Sprintf("A%d", r+2), name); err != nil {
			return nil, err
		}
		for c, d := range dates {
			status := matrix[name][d]
			if status == nil {
				continue
			}
			cell := fmt.Sprintf("%s%d", colName(c+2), r+2)
			if err := f.SetCellStr(sheet, cell, *status); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// эвристическая ширина: имя пошире, даты фиксированные
	nameWidth := float64(len("Ученик"))
	for _, n := range names {
		if w := float64(visualLen(n)) * 1.1; w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}
	_ = f.SetColWidth(sheet, "A", "A", nameWidth)
	if len(dates) > 0 {
		_ = f.SetColWidth(sheet, "B", colName(len(header)), 12)
	}

	return &AttendanceWorkbook{File: f}, nil
}

// BuildJournalFilename — человекочитаемое имя файла выгрузки.
func BuildJournalFilename(groupName string) string {
	base := fmt.Sprintf("Журнал посещаемости — %s — %s.xlsx",
		cleanName(groupName),
		time.Now().Format("2006-01-02"),
	)
	return sanitizeFileName(base)
}

// helpers

func colName(n int) string {
	// 1 -> A; 27 -> AA
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

// visualLen approximates text width by counting runes, treating tabs as 4 chars.
func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n += 1
		}
	}
	return n
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
