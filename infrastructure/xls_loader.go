package infrastructure

// Загрузчик старых XLS-выгрузок (формат BIFF). Система планирования смен
// отдаёт график одной таблицей на первом листе; все строки читаются как есть,
// отрезание служебных строк и колонок делает domain.Validator.
//
// Ограничения:
// - Читается только первый лист.
// - Кодировка строк задаётся при создании загрузчика (по умолчанию utf-8,
//   для старых выгрузок бывает windows-1251).

import (
	"context"
	"fmt"
	"io"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/extrame/xls"
	"go.uber.org/zap"
)

// XLSLoader читает график из XLS-файла
type XLSLoader struct {
	charset string
	logger  *zap.Logger
}

// NewXLSLoader создаёт новый экземпляр загрузчика
func NewXLSLoader(charset string, logger *zap.Logger) *XLSLoader {
	if charset == "" {
		charset = "utf-8"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSLoader{charset: charset, logger: logger}
}

// Load читает первый лист книги в таблицу
func (l *XLSLoader) Load(ctx context.Context, src io.ReadSeeker, name string) (table domain.Table, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// библиотека паникует на повреждённых файлах
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = fmt.Errorf("corrupted xls file %s: %v", name, r)
		}
	}()

	book, err := xls.OpenReader(src, l.charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	if book.NumSheets() == 0 {
		return nil, domain.ErrEmptyInput
	}

	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, domain.ErrEmptyInput
	}

	table = l.readSheet(sheet)
	l.logger.Debug("xls sheet read",
		zap.String("file", name),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(table)),
	)
	return table, nil
}

// readSheet собирает строки листа; отсутствующие строки становятся пустыми
func (l *XLSLoader) readSheet(sheet *xls.WorkSheet) domain.Table {
	table := make(domain.Table, 0, int(sheet.MaxRow)+1)

	for rowIndex := 0; rowIndex <= int(sheet.MaxRow); rowIndex++ {
		row := sheet.Row(rowIndex)
		if row == nil {
			table = append(table, nil)
			continue
		}

		cells := make([]domain.Cell, 0, row.LastCol()+1)
		for col := 0; col <= row.LastCol(); col++ {
			cells = append(cells, domain.CellFromString(cleanText(row.Col(col))))
		}
		table = append(table, cells)
	}

	return trimTrailingEmptyRows(table)
}
