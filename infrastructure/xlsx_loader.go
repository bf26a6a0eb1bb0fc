package infrastructure

import (
	"context"
	"fmt"
	"io"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXLoader читает график из первого листа xlsx-книги
type XLSXLoader struct {
	logger *zap.Logger
}

// NewXLSXLoader создаёт новый экземпляр загрузчика
func NewXLSXLoader(logger *zap.Logger) *XLSXLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXLoader{logger: logger}
}

// Load читает все строки первого листа
func (l *XLSXLoader) Load(ctx context.Context, src io.ReadSeeker, name string) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyInput
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	table := make(domain.Table, len(rows))
	for i, row := range rows {
		cells := make([]domain.Cell, len(row))
		for j, value := range row {
			cells[j] = domain.CellFromString(cleanText(value))
		}
		table[i] = cells
	}

	l.logger.Debug("xlsx sheet read",
		zap.String("file", name),
		zap.String("sheet", sheets[0]),
		zap.Int("rows", len(table)),
	)
	return trimTrailingEmptyRows(table), nil
}
