package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Vaflel/shift-cleaner/domain"
	"go.uber.org/zap"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// FileLoader выбирает загрузчик по содержимому файла, а не только по расширению:
// выгрузка с расширением .xls часто оказывается HTML-страницей.
type FileLoader struct {
	xlsx   *XLSXLoader
	xls    *XLSLoader
	html   *HTMLLoader
	logger *zap.Logger
}

// NewFileLoader создаёт загрузчик всех поддерживаемых форматов
func NewFileLoader(xlsCharset string, logger *zap.Logger) *FileLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLoader{
		xlsx:   NewXLSXLoader(logger),
		xls:    NewXLSLoader(xlsCharset, logger),
		html:   NewHTMLLoader(logger),
		logger: logger,
	}
}

// Load определяет формат и передаёт чтение нужному загрузчику
func (l *FileLoader) Load(ctx context.Context, src io.ReadSeeker, name string) (domain.Table, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	head = head[:n]
	if n == 0 {
		return nil, domain.ErrEmptyInput
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", name, err)
	}

	format := detectFormat(head, name)
	l.logger.Debug("input format detected", zap.String("file", name), zap.String("format", format))

	switch format {
	case "xlsx":
		return l.xlsx.Load(ctx, src, name)
	case "xls":
		return l.xls.Load(ctx, src, name)
	case "html":
		return l.html.Load(ctx, src, name)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
}

// detectFormat смотрит на сигнатуру, затем на расширение
func detectFormat(head []byte, name string) string {
	switch {
	case bytes.HasPrefix(head, zipMagic):
		return "xlsx"
	case bytes.HasPrefix(head, oleMagic):
		return "xls"
	}

	text := bytes.TrimLeft(bytes.TrimPrefix(head, utf8BOM), " \t\r\n")
	if bytes.HasPrefix(text, []byte("<")) {
		return "html"
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "html"
	}
	return ""
}

// cleanText схлопывает пробелы и переводы строк внутри ячейки
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func trimTrailingEmptyRows(table domain.Table) domain.Table {
	end := len(table)
	for end > 0 && isEmptyRow(table[end-1]) {
		end--
	}
	return table[:end]
}

func isEmptyRow(row []domain.Cell) bool {
	for _, c := range row {
		if c.Valid {
			return false
		}
	}
	return true
}
