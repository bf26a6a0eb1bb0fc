package web

import (
	"testing"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daySheet() domain.Sheet {
	return domain.Sheet{
		Name:   "Mon 01.09",
		Header: []string{"Shift time", "Colleague", "Mon 01.09"},
		Rows: [][]string{
			{"06:00 - 14:00", "Anna", "Live Day"},
			{"", "", ""},
			{"20:00 - 04:00", "Bert", "QA Night"},
		},
	}
}

func TestPreviewRowsLimit(t *testing.T) {
	p := PreviewRows(daySheet(), 2)
	assert.Equal(t, "Mon 01.09", p.Sheet)
	assert.Len(t, p.Rows, 2)

	assert.Len(t, PreviewRows(daySheet(), 50).Rows, 3)
	assert.Len(t, PreviewRows(daySheet(), -1).Rows, 3)
}

func TestPreviewRowsCopiesData(t *testing.T) {
	sheet := daySheet()
	p := PreviewRows(sheet, 1)
	p.Rows[0][1] = "changed"
	assert.Equal(t, "Anna", sheet.Rows[0][1])
}

func TestLastSheet(t *testing.T) {
	_, ok := LastSheet(domain.Workbook{})
	assert.False(t, ok)

	sheet, ok := LastSheet(domain.Workbook{Sheets: []domain.Sheet{{Name: "Cleaned_Shifts"}, daySheet()}})
	require.True(t, ok)
	assert.Equal(t, "Mon 01.09", sheet.Name)
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview(daySheet(), 1)

	assert.Contains(t, out, "Mon 01.09")
	assert.Contains(t, out, "(1 of 3 rows)")
	assert.Contains(t, out, "Anna")
	assert.NotContains(t, out, "Bert")
}
