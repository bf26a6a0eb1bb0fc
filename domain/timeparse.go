package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// первое время в тексте: час из 1-2 цифр
	firstTimeRe = regexp.MustCompile(`\d{1,2}:\d{2}`)
	// время внутри интервала: строго две цифры часа
	rangeTimeRe = regexp.MustCompile(`\d{2}:\d{2}`)
)

// SplitAtFirstTime делит текст ячейки на описание и хвост, начиная с первого времени
func SplitAtFirstTime(text string) (string, string) {
	if text == "" {
		return "", ""
	}
	loc := firstTimeRe.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[0]:])
}

// AdjustTime сдвигает время "HH:MM" на offsetHours с переходом через полночь.
// Нераспознанная строка возвращается без изменений.
func AdjustTime(hhmm string, offsetHours int) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Add(time.Duration(offsetHours) * time.Hour).Format("15:04")
}

// FormatTimeRange находит времена "HH:MM" и собирает интервал из первых двух.
// Остальные времена игнорируются.
func FormatTimeRange(text string, offsetHours int) string {
	if text == "" {
		return ""
	}
	times := rangeTimeRe.FindAllString(text, 2)
	switch len(times) {
	case 0:
		return ""
	case 1:
		return AdjustTime(times[0], offsetHours)
	}
	return fmt.Sprintf("%s - %s", AdjustTime(times[0], offsetHours), AdjustTime(times[1], offsetHours))
}

// ParseCell разбирает текст ячейки: описание приводится к коду, время сдвигается
func ParseCell(text string, offsetHours int, mapper DescriptorMapper) ParsedCell {
	descriptor, rest := SplitAtFirstTime(text)
	return ParsedCell{
		Descriptor: mapper.Map(descriptor),
		TimeRange:  FormatTimeRange(rest, offsetHours),
	}
}
