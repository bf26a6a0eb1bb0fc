package domain

import "fmt"

// Layout описывает расположение данных в выгрузке
type Layout struct {
	SkipRows           int   // служебные строки перед заголовком
	DropColumns        []int // индексы колонок-идентификаторов, которые не нужны
	DropIncompleteRows bool  // убирать строки, где есть хотя бы одна пустая ячейка
}

// DefaultLayout раскладка выгрузки графика по умолчанию
func DefaultLayout() Layout {
	return Layout{
		SkipRows:           8,
		DropColumns:        []int{0, 2},
		DropIncompleteRows: true,
	}
}

// Validator проверяет форму таблицы и собирает из неё Roster
type Validator struct {
	layout Layout
}

// NewValidator создаёт новый Validator
func NewValidator(layout Layout) *Validator {
	return &Validator{layout: layout}
}

// Validate проверяет, что в таблице есть заголовок и хотя бы одна колонка дня
func (v *Validator) Validate(table Table) error {
	if len(table) == 0 {
		return ErrEmptyInput
	}
	if len(table) <= v.layout.SkipRows {
		return fmt.Errorf("%w: file has %d rows, expected more than %d", ErrMissingHeader, len(table), v.layout.SkipRows)
	}

	width := v.width(table)
	maxDrop := -1
	for _, c := range v.layout.DropColumns {
		if c > maxDrop {
			maxDrop = c
		}
	}
	// нужны колонка сотрудника и хотя бы одна колонка дня
	if width <= maxDrop || width-len(v.dropSet(width)) < 2 {
		return fmt.Errorf("%w: got %d columns", ErrTooFewColumns, width)
	}

	return nil
}

// BuildRoster отрезает служебные строки, удаляет колонки-идентификаторы,
// нормализует заголовки и фильтрует строки без сотрудника.
func (v *Validator) BuildRoster(table Table) (Roster, error) {
	if err := v.Validate(table); err != nil {
		return Roster{}, err
	}

	width := v.width(table)
	drop := v.dropSet(width)
	keep := make([]int, 0, width)
	for c := 0; c < width; c++ {
		if !drop[c] {
			keep = append(keep, c)
		}
	}

	header := v.project(table[v.layout.SkipRows], keep)
	// колонка сотрудника всегда называется IdentityLabel; пустые заголовки дней получают суффикс
	header[0] = NullCell()
	roster := Roster{Headers: NormalizeHeaders(header)}

	for _, raw := range table[v.layout.SkipRows+1:] {
		row := RawRow(v.project(raw, keep))
		if !row[0].Valid {
			continue
		}
		if v.layout.DropIncompleteRows && hasNull(row) {
			continue
		}
		roster.Rows = append(roster.Rows, row)
	}

	if len(roster.Rows) == 0 {
		return Roster{}, ErrNoDataRows
	}

	return roster, nil
}

// width считает ширину по заголовку и данным; хвостовые полностью пустые колонки не учитываются
func (v *Validator) width(table Table) int {
	width := 0
	for _, row := range table[v.layout.SkipRows:] {
		for c := len(row) - 1; c >= width; c-- {
			if row[c].Valid {
				width = c + 1
				break
			}
		}
	}
	return width
}

func (v *Validator) dropSet(width int) map[int]bool {
	set := make(map[int]bool, len(v.layout.DropColumns))
	for _, c := range v.layout.DropColumns {
		if c >= 0 && c < width {
			set[c] = true
		}
	}
	return set
}

// project выбирает нужные колонки; недостающие ячейки считаются null
func (v *Validator) project(row []Cell, keep []int) []Cell {
	out := make([]Cell, len(keep))
	for i, c := range keep {
		if c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

func hasNull(row RawRow) bool {
	for _, c := range row {
		if !c.Valid {
			return true
		}
	}
	return false
}
