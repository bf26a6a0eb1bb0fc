package domain

import "strings"

// IdentityLabel имя колонки с сотрудником во всех выходных листах
const IdentityLabel = "Colleague"

// ShiftTimeLabel заголовок колонки с временем смены
const ShiftTimeLabel = "Shift time"

// CleanedSheetName имя сводного листа
const CleanedSheetName = "Cleaned_Shifts"

// MaxSheetNameLength максимальная длина имени листа в xlsx
const MaxSheetNameLength = 31

// Cell содержит значение ячейки: строку или null
type Cell struct {
	Text  string
	Valid bool
}

// TextCell создает непустую ячейку
func TextCell(s string) Cell {
	return Cell{Text: s, Valid: true}
}

// NullCell создает пустую (null) ячейку
func NullCell() Cell {
	return Cell{}
}

// CellFromString превращает строку из файла в ячейку; пустая строка считается null
func CellFromString(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return NullCell()
	}
	return TextCell(s)
}

// Table сырая таблица, как её отдал загрузчик
type Table [][]Cell

// RawRow строка данных, выровненная по Roster.Headers
type RawRow []Cell

// Roster таблица после пропуска служебных строк, удаления колонок и нормализации заголовков.
// Первая колонка всегда колонка сотрудника (IdentityLabel).
type Roster struct {
	Headers []string
	Rows    []RawRow
}

// DayColumns возвращает индексы колонок, кроме колонки сотрудника
func (r Roster) DayColumns() []int {
	cols := make([]int, 0, len(r.Headers))
	for i := 1; i < len(r.Headers); i++ {
		cols = append(cols, i)
	}
	return cols
}

// ParsedCell результат разбора текста ячейки
type ParsedCell struct {
	Descriptor string // текст до первого времени
	TimeRange  string // "HH:MM - HH:MM", "HH:MM" или ""
}

// OutputRow строка листа дня. Пустая строка-разделитель имеет все поля пустыми.
type OutputRow struct {
	ShiftTime string
	Colleague string
	Category  string
}

// BlankRow возвращает строку-разделитель
func BlankRow() OutputRow {
	return OutputRow{}
}

// IsBlank сообщает, является ли строка разделителем
func (r OutputRow) IsBlank() bool {
	return r.ShiftTime == "" && r.Colleague == "" && r.Category == ""
}

// Values возвращает значения в порядке колонок листа
func (r OutputRow) Values() []string {
	return []string{r.ShiftTime, r.Colleague, r.Category}
}

// Sheet лист выходной книги
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Workbook выходная книга: листы в порядке записи
type Workbook struct {
	Filename string
	Sheets   []Sheet
}

// SheetNames возвращает имена листов по порядку
func (w Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// TruncateSheetName обрезает имя листа до MaxSheetNameLength символов
func TruncateSheetName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxSheetNameLength {
		return name
	}
	return string(runes[:MaxSheetNameLength])
}
