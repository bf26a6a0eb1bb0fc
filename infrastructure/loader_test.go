package infrastructure

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var grid = [][]string{
	{"Roster", "", "", "", ""},
	{"ID", "", "Team", "Mon 01.09", "Tue 02.09"},
	{"17", "Anna", "Live", "Live Day 08:00 - 16:00", "r"},
	{"18", "Bert", "QA", "QA  Night\n22:00 - 06:00", "Admin Early DEG 06:00 - 14:00"},
}

func xlsxFixture(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, values := range rows {
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func htmlFixture(rows [][]string) string {
	var b strings.Builder
	b.WriteString("<html><body><table>\n")
	for _, values := range rows {
		b.WriteString("<tr>")
		for _, v := range values {
			b.WriteString("<td>" + v + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func texts(table domain.Table) [][]string {
	out := make([][]string, len(table))
	for i, row := range table {
		out[i] = make([]string, 0, len(row))
		for _, c := range row {
			out[i] = append(out[i], c.Text)
		}
		// хвостовые пустые ячейки не важны для сравнения
		for len(out[i]) > 0 && out[i][len(out[i])-1] == "" {
			out[i] = out[i][:len(out[i])-1]
		}
	}
	return out
}

func TestXLSXAndHTMLLoadersAgree(t *testing.T) {
	ctx := context.Background()
	loader := NewFileLoader("", zap.NewNop())

	fromXLSX, err := loader.Load(ctx, bytes.NewReader(xlsxFixture(t, grid)), "roster.xlsx")
	require.NoError(t, err)

	fromHTML, err := loader.Load(ctx, strings.NewReader(htmlFixture(grid)), "roster.xls")
	require.NoError(t, err)

	assert.Equal(t, texts(fromXLSX), texts(fromHTML))
	require.Len(t, fromXLSX, 4)
	assert.Equal(t, "QA Night 22:00 - 06:00", fromXLSX[3][3].Text, "whitespace inside cells is collapsed")
	assert.False(t, fromXLSX[1][1].Valid, "blank cell is null")
}

func TestHTMLLoaderExpandsColspan(t *testing.T) {
	doc := `<table>
<tr><th colspan="3">Week 36</th><th>Mon</th></tr>
<tr><td>1</td><td>Anna</td><td>Live</td><td>Live Day 08:00 - 16:00</td></tr>
<tr><td colspan="4"><table><tr><td>nested</td></tr></table></td></tr>
</table>`

	table, err := NewHTMLLoader(nil).Load(context.Background(), strings.NewReader(doc), "roster.html")
	require.NoError(t, err)

	require.Len(t, table, 3)
	require.Len(t, table[0], 4)
	assert.Equal(t, "Mon", table[0][3].Text)
	assert.Equal(t, "Live Day 08:00 - 16:00", table[1][3].Text)
}

func TestHTMLLoaderWithoutTable(t *testing.T) {
	_, err := NewHTMLLoader(nil).Load(context.Background(), strings.NewReader("<html><p>nothing</p></html>"), "x.html")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestFileLoaderRejectsUnknownFormat(t *testing.T) {
	loader := NewFileLoader("", nil)

	_, err := loader.Load(context.Background(), strings.NewReader("just,some,csv\n"), "roster.csv")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = loader.Load(context.Background(), bytes.NewReader(nil), "empty.xlsx")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestXLSLoaderReportsCorruptedFile(t *testing.T) {
	data := append(append([]byte{}, oleMagic...), bytes.Repeat([]byte{0}, 600)...)

	_, err := NewFileLoader("utf-8", nil).Load(context.Background(), bytes.NewReader(data), "broken.xls")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "xlsx", detectFormat([]byte("PK\x03\x04rest"), "a.bin"))
	assert.Equal(t, "xls", detectFormat(oleMagic, "a.xls"))
	assert.Equal(t, "html", detectFormat([]byte("\xEF\xBB\xBF  <table>"), "a.xls"))
	assert.Equal(t, "html", detectFormat([]byte("plain"), "a.HTM"))
	assert.Equal(t, "", detectFormat([]byte("plain"), "a.txt"))
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewXLSXLoader(nil).Load(ctx, bytes.NewReader(xlsxFixture(t, grid)), "roster.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}
