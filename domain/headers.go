package domain

import "fmt"

// NormalizeHeaders делает имена колонок уникальными.
// Пустой заголовок заменяется на IdentityLabel, k-й повтор имени h получает суффикс "h.{k-1}".
func NormalizeHeaders(header []Cell) []string {
	counts := make(map[string]int, len(header))
	out := make([]string, 0, len(header))

	for _, cell := range header {
		name := IdentityLabel
		if cell.Valid {
			name = cell.Text
		}
		counts[name]++
		if n := counts[name]; n > 1 {
			name = fmt.Sprintf("%s.%d", name, n-1)
		}
		out = append(out, name)
	}

	return out
}
