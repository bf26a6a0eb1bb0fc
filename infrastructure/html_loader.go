package infrastructure

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Vaflel/shift-cleaner/domain"
	"go.uber.org/zap"
)

// HTMLLoader читает график из HTML-таблицы.
// Многие системы отдают "xls", который на деле является HTML-страницей с одной таблицей.
type HTMLLoader struct {
	logger *zap.Logger
}

// NewHTMLLoader создаёт новый экземпляр загрузчика
func NewHTMLLoader(logger *zap.Logger) *HTMLLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLLoader{logger: logger}
}

// Load читает первую таблицу документа
func (l *HTMLLoader) Load(ctx context.Context, src io.ReadSeeker, name string) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, fmt.Errorf("%w: no <table> in %s", domain.ErrEmptyInput, name)
	}

	var table domain.Table
	tbl.Find("tr").Each(func(i int, tr *goquery.Selection) {
		// вложенные таблицы не разбираем
		if tr.Closest("table").Get(0) != tbl.Get(0) {
			return
		}
		var cells []domain.Cell
		tr.ChildrenFiltered("th, td").Each(func(j int, td *goquery.Selection) {
			cells = append(cells, domain.CellFromString(cleanText(td.Text())))
			for k := 1; k < colspan(td); k++ {
				cells = append(cells, domain.NullCell())
			}
		})
		table = append(table, cells)
	})

	l.logger.Debug("html table read", zap.String("file", name), zap.Int("rows", len(table)))
	return trimTrailingEmptyRows(table), nil
}

func colspan(td *goquery.Selection) int {
	value, ok := td.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
