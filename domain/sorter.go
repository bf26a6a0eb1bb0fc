package domain

// SortByCategory раскладывает строки дня по порядку категорий.
// Имена категорий сравниваются после DescriptorMapper. На месте каждого разделителя
// вставляется пустая строка. Строки с категорией вне порядка идут в самом конце,
// после последнего разделителя, в исходном относительном порядке.
func SortByCategory(rows []OutputRow, order CategoryOrder, mapper DescriptorMapper) []OutputRow {
	entries := order.Entries()
	position := positions(entries, mapper)

	buckets := make(map[int][]OutputRow, len(position))
	var unmatched []OutputRow
	for _, row := range rows {
		idx, ok := position[row.Category]
		if !ok {
			unmatched = append(unmatched, row)
			continue
		}
		buckets[idx] = append(buckets[idx], row)
	}

	result := make([]OutputRow, 0, len(rows)+len(entries))
	for i, entry := range entries {
		if entry.IsSeparator() {
			result = append(result, BlankRow())
			continue
		}
		result = append(result, buckets[i]...)
	}

	return append(result, unmatched...)
}

// SortKey позиция категории в порядке; для неизвестной категории order.Len()
func SortKey(category string, order CategoryOrder, mapper DescriptorMapper) int {
	if idx, ok := positions(order.Entries(), mapper)[category]; ok {
		return idx
	}
	return order.Len()
}

// positions индекс первого вхождения каждой категории после DescriptorMapper
func positions(entries []OrderEntry, mapper DescriptorMapper) map[string]int {
	position := make(map[string]int, len(entries))
	for i, entry := range entries {
		if entry.IsSeparator() {
			continue
		}
		key := mapper.Map(entry.Name())
		if _, seen := position[key]; !seen {
			position[key] = i
		}
	}
	return position
}
