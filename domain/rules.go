package domain

import (
	"fmt"
	"strings"
)

// TimeMode режим сдвига времени: летнее время (-2 часа) или зимнее (-1 час)
type TimeMode string

const (
	TimeModeDST      TimeMode = "dst"
	TimeModeStandard TimeMode = "standard"
)

// ParseTimeMode разбирает режим из строки конфигурации или флага
func ParseTimeMode(s string) (TimeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dst", "summer", "-2":
		return TimeModeDST, nil
	case "standard", "non-dst", "nondst", "winter", "-1":
		return TimeModeStandard, nil
	}
	return "", fmt.Errorf("unknown time mode %q (want dst or standard)", s)
}

// OffsetHours возвращает сдвиг в часах
func (m TimeMode) OffsetHours() int {
	if m == TimeModeStandard {
		return -1
	}
	return -2
}

// OrderEntry элемент порядка категорий: категория или разделитель
type OrderEntry struct {
	name      string
	separator bool
}

// Category создает элемент-категорию
func Category(name string) OrderEntry {
	return OrderEntry{name: name}
}

// Separator создает элемент-разделитель (пустая строка в выходном листе)
func Separator() OrderEntry {
	return OrderEntry{separator: true}
}

// IsSeparator сообщает, является ли элемент разделителем
func (e OrderEntry) IsSeparator() bool {
	return e.separator
}

// Name возвращает имя категории; у разделителя пустое
func (e OrderEntry) Name() string {
	return e.name
}

// CategoryOrder фиксированный порядок категорий. Не изменяется после создания.
type CategoryOrder struct {
	entries []OrderEntry
}

// NewCategoryOrder копирует элементы в новый порядок
func NewCategoryOrder(entries []OrderEntry) CategoryOrder {
	return CategoryOrder{entries: append([]OrderEntry(nil), entries...)}
}

// Entries возвращает копию элементов
func (o CategoryOrder) Entries() []OrderEntry {
	return append([]OrderEntry(nil), o.entries...)
}

// Len количество элементов вместе с разделителями
func (o CategoryOrder) Len() int {
	return len(o.entries)
}

// DescriptorMapper приводит описание смены к короткому коду
type DescriptorMapper struct {
	table map[string]string
}

// NewDescriptorMapper строит таблицу; ключи приводятся к верхнему регистру
func NewDescriptorMapper(table map[string]string) DescriptorMapper {
	m := make(map[string]string, len(table))
	for k, v := range table {
		m[strings.ToUpper(k)] = v
	}
	return DescriptorMapper{table: m}
}

// Map ищет описание без учета регистра. Если ключа нет, возвращается исходная строка.
func (m DescriptorMapper) Map(descriptor string) string {
	if v, ok := m.table[strings.ToUpper(descriptor)]; ok {
		return v
	}
	return descriptor
}

// Table возвращает копию таблицы (ключи в верхнем регистре)
func (m DescriptorMapper) Table() map[string]string {
	out := make(map[string]string, len(m.table))
	for k, v := range m.table {
		out[k] = v
	}
	return out
}

// Rules статическая конфигурация прогона. Загружается один раз и передается явно.
type Rules struct {
	Order        CategoryOrder
	Mapper       DescriptorMapper
	Placeholders []string // значения без смены: выходной, отпуск и т.п.
	LocationTags []string // метки локации, вырезаемые из текста ячейки
}

// IsPlaceholder точное сравнение с плейсхолдерами
func (r Rules) IsPlaceholder(value string) bool {
	for _, p := range r.Placeholders {
		if value == p {
			return true
		}
	}
	return false
}

// StripLocationTags удаляет первое вхождение каждой метки локации
func (r Rules) StripLocationTags(value string) string {
	for _, tag := range r.LocationTags {
		if tag == "" {
			continue
		}
		value = strings.Replace(value, tag, "", 1)
	}
	return value
}

// DefaultCategoryOrder порядок категорий в том виде, в каком его ведут диспетчеры.
// Длинные названия сокращаются через DescriptorMapper при сравнении.
func DefaultCategoryOrder() CategoryOrder {
	return NewCategoryOrder([]OrderEntry{
		Category("Admin Early"),
		Category("Admin Late"),
		Category("Admin Night"),
		Category("QA Night"),
		Separator(),
		Category("QA Resulting Early"),
		Category("QA Resulting Late"),
		Separator(),
		Category("Resulting Day"),
		Category("Resulting Late"),
		Category("Resulting Night"),
		Separator(),
		Category("SPECIAL BETS RESULTING EARLY"),
		Category("SPECIAL BETS RESULTING LATE"),
		Category("SPECIAL BETS RESULTING NIGHT"),
		Separator(),
		Category("QA Live Early"),
		Category("QA Live Late"),
		Separator(),
		Category("Live Early"),
		Category("Live Day"),
		Category("Live Late"),
		Category("Live Night"),
		Separator(),
		Category("Training Day Live"),
		Category("Training Day Resulting"),
		Separator(),
		Category("PRODUCTION SUPPORT EARLY"),
		Category("PRODUCTION SUPPORT LATE"),
		Category("PRODUCTION SUPPORT NIGHT"),
		Separator(),
	})
}

// DefaultDescriptorTable таблица сокращений по умолчанию
func DefaultDescriptorTable() map[string]string {
	return map[string]string{
		"PRODUCTION SUPPORT EARLY":       "PS Early",
		"PRODUCTION SUPPORT LATE":        "PS Late",
		"PRODUCTION SUPPORT NIGHT":       "PS Night",
		"SPECIAL BETS RESULTING EARLY":   "SB Early",
		"SPECIAL BETS RESULTING LATE":    "SB Late",
		"SPECIAL BETS RESULTING NIGHT":   "SB Night",
		"TRAINING DAY LIVE":              "TT Live",
		"TRAINING DAY RESULTING":         "TT Resulting",
		"ADMINSTRATION":                  "A DE",
		"PRODUCTION SERVICE DAY":         "PSD",
		"SPECIAL TASK/ LIVE BACKUP LATE": "ST DE",
	}
}

// DefaultPlaceholders значения ячеек, которые не являются сменами
func DefaultPlaceholders() []string {
	return []string{"r", "rw", "u"}
}

// DefaultLocationTags метки локации, которые выгрузка добавляет к сменам
func DefaultLocationTags() []string {
	return []string{"Europe/Gera", "DEG"}
}

// DefaultRules правила по умолчанию
func DefaultRules() Rules {
	return Rules{
		Order:        DefaultCategoryOrder(),
		Mapper:       NewDescriptorMapper(DefaultDescriptorTable()),
		Placeholders: DefaultPlaceholders(),
		LocationTags: DefaultLocationTags(),
	}
}
