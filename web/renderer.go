// Package web предоставляет HTTP API обработки графика и функции предпросмотра результата
package web

import (
	"fmt"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// DefaultPreviewRows сколько строк показывать в предпросмотре
const DefaultPreviewRows = 10

// Preview первые строки листа для ответа API
type Preview struct {
	Sheet  string     `json:"sheet"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// PreviewRows возвращает первые limit строк листа
func PreviewRows(sheet domain.Sheet, limit int) Preview {
	if limit < 0 || limit > len(sheet.Rows) {
		limit = len(sheet.Rows)
	}
	rows := make([][]string, limit)
	for i := range rows {
		rows[i] = append([]string(nil), sheet.Rows[i]...)
	}
	return Preview{
		Sheet:  sheet.Name,
		Header: append([]string(nil), sheet.Header...),
		Rows:   rows,
	}
}

// LastSheet лист последнего дня; по нему показывается предпросмотр
func LastSheet(wb domain.Workbook) (domain.Sheet, bool) {
	if len(wb.Sheets) == 0 {
		return domain.Sheet{}, false
	}
	return wb.Sheets[len(wb.Sheets)-1], true
}

// RenderPreview рисует первые limit строк листа текстовой таблицей для терминала
func RenderPreview(sheet domain.Sheet, limit int) string {
	p := PreviewRows(sheet, limit)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(p.Header...).
		Rows(p.Rows...)

	title := lipgloss.NewStyle().Bold(true).Render(p.Sheet)
	return fmt.Sprintf("%s (%d of %d rows)\n%s", title, len(p.Rows), len(sheet.Rows), t.Render())
}
