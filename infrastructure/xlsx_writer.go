package infrastructure

import (
	"fmt"
	"io"
	"strings"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const defaultSheet = "Sheet1"

// XLSXWriter записывает книгу в xlsx
type XLSXWriter struct {
	logger *zap.Logger
}

// NewXLSXWriter создаёт новый экземпляр писателя
func NewXLSXWriter(logger *zap.Logger) *XLSXWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXWriter{logger: logger}
}

// Write пишет листы по порядку. Если имя листа уже занято (без учета регистра, как в Excel),
// более поздний лист заменяет содержимое прежнего на его месте.
func (w *XLSXWriter) Write(out io.Writer, wb domain.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range w.dedupe(wb.Sheets) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("invalid sheet name %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("invalid sheet name %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// dedupe оставляет одно место на каждое имя листа, содержимое берется у последнего
func (w *XLSXWriter) dedupe(sheets []domain.Sheet) []domain.Sheet {
	out := make([]domain.Sheet, 0, len(sheets))
	seen := make(map[string]int, len(sheets))
	for _, sheet := range sheets {
		key := strings.ToLower(sheet.Name)
		if i, ok := seen[key]; ok {
			w.logger.Warn("sheet name collision, overwriting earlier sheet", zap.String("sheet", sheet.Name))
			name := out[i].Name
			out[i] = sheet
			out[i].Name = name
			continue
		}
		seen[key] = len(out)
		out = append(out, sheet)
	}
	return out
}

func writeSheet(f *excelize.File, sheet domain.Sheet, headerStyle int) error {
	if err := setRow(f, sheet.Name, 1, sheet.Header); err != nil {
		return err
	}
	if len(sheet.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header of %q: %w", sheet.Name, err)
		}
	}
	for i, values := range sheet.Rows {
		if err := setRow(f, sheet.Name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}
