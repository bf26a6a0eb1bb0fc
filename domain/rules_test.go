package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorMapper(t *testing.T) {
	mapper := NewDescriptorMapper(DefaultDescriptorTable())

	assert.Equal(t, "PS Early", mapper.Map("production support early"))
	assert.Equal(t, "PS Early", mapper.Map("PRODUCTION SUPPORT EARLY"))
	assert.Equal(t, "A DE", mapper.Map("Adminstration"))
	assert.Equal(t, "ST DE", mapper.Map("Special Task/ Live Backup Late"))
	assert.Equal(t, "Unknown Shift", mapper.Map("Unknown Shift"))
	assert.Equal(t, "Production Support", mapper.Map("Production Support"), "no substring matching")
	assert.Equal(t, "", mapper.Map(""))
}

func TestDescriptorMapperNormalizesKeys(t *testing.T) {
	mapper := NewDescriptorMapper(map[string]string{"Production Service Day": "PSD"})

	assert.Equal(t, "PSD", mapper.Map("production service day"))
	assert.Equal(t, map[string]string{"PRODUCTION SERVICE DAY": "PSD"}, mapper.Table())
}

func TestDescriptorMapperIsImmutable(t *testing.T) {
	table := map[string]string{"LIVE DAY": "LD"}
	mapper := NewDescriptorMapper(table)
	table["LIVE DAY"] = "changed"

	exported := mapper.Table()
	exported["LIVE DAY"] = "changed"

	assert.Equal(t, "LD", mapper.Map("live day"))
}

func TestCategoryOrderIsImmutable(t *testing.T) {
	order := DefaultCategoryOrder()
	entries := order.Entries()
	entries[0] = Separator()

	assert.False(t, order.Entries()[0].IsSeparator())
	assert.Equal(t, "Admin Early", order.Entries()[0].Name())
	assert.Equal(t, 31, order.Len())
}

func TestParseTimeMode(t *testing.T) {
	mode, err := ParseTimeMode("DST")
	require.NoError(t, err)
	assert.Equal(t, -2, mode.OffsetHours())

	mode, err = ParseTimeMode("non-DST")
	require.NoError(t, err)
	assert.Equal(t, -1, mode.OffsetHours())

	_, err = ParseTimeMode("utc")
	assert.Error(t, err)
}

func TestRulesPlaceholdersAndTags(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, rules.IsPlaceholder("r"))
	assert.True(t, rules.IsPlaceholder("rw"))
	assert.True(t, rules.IsPlaceholder("u"))
	assert.False(t, rules.IsPlaceholder("R"))
	assert.False(t, rules.IsPlaceholder("r "))

	assert.Equal(t, "Live Day 06:00 - 14:00 ", rules.StripLocationTags("Live Day 06:00 - 14:00 Europe/Gera"))
	assert.Equal(t, "Admin Early  06:00", rules.StripLocationTags("Admin Early DEG 06:00"))
	assert.Equal(t, "x  DEG", rules.StripLocationTags("x DEG DEG"), "only the first occurrence is removed")
}

func TestTruncateSheetName(t *testing.T) {
	assert.Equal(t, "Mon 01.05", TruncateSheetName("Mon 01.05"))
	long := "Wednesday the third of September 2025"
	assert.Equal(t, "Wednesday the third of Septembe", TruncateSheetName(long))
	assert.Len(t, []rune(TruncateSheetName("Ärger über Übergabe und Überstunden")), MaxSheetNameLength)
}
