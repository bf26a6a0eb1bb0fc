package domain

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAtFirstTime(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		prefix string
		suffix string
	}{
		{"descriptor and range", "Admin Early 06:00 - 14:00", "Admin Early", "06:00 - 14:00"},
		{"single digit hour", "Live Day 6:00 - 14:00", "Live Day", "6:00 - 14:00"},
		{"empty", "", "", ""},
		{"no time", "  Training Day Live  ", "Training Day Live", ""},
		{"only time", "22:00 - 06:00", "", "22:00 - 06:00"},
		{"trailing tag", "QA Night 22:00-06:00 ", "QA Night", "22:00-06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, suffix := SplitAtFirstTime(tt.in)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestAdjustTime(t *testing.T) {
	assert.Equal(t, "04:00", AdjustTime("06:00", -2))
	assert.Equal(t, "23:30", AdjustTime("00:30", -1))
	assert.Equal(t, "22:15", AdjustTime("00:15", -2))
	assert.Equal(t, "01:00", AdjustTime("23:00", 2))
	assert.Equal(t, "not a time", AdjustTime("not a time", -2))
	assert.Equal(t, "25:00", AdjustTime("25:00", -2))
	assert.Equal(t, "", AdjustTime("", -1))
}

func TestAdjustTimeAlwaysValidClock(t *testing.T) {
	clock := regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 1, 30, 59} {
			in := fmt.Sprintf("%02d:%02d", h, m)
			for offset := -23; offset <= 23; offset++ {
				got := AdjustTime(in, offset)
				if !clock.MatchString(got) {
					t.Fatalf("AdjustTime(%q, %d) = %q, not a clock time", in, offset, got)
				}
				wantHour := ((h+offset)%24 + 24) % 24
				assert.Equal(t, fmt.Sprintf("%02d:%02d", wantHour, m), got)
			}
		}
	}
}

func TestAdjustTwiceIsNotAdjustOnce(t *testing.T) {
	once := AdjustTime("06:00", -2)
	twice := AdjustTime(once, -2)
	assert.NotEqual(t, once, twice)

	rangeOnce := FormatTimeRange("06:00 - 14:00", -1)
	assert.NotEqual(t, rangeOnce, FormatTimeRange(rangeOnce, -1))
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
		want   string
	}{
		{"range dst", "06:00 - 14:00", -2, "04:00 - 12:00"},
		{"range standard", "06:00 - 14:00", -1, "05:00 - 13:00"},
		{"across midnight", "22:00 - 06:00", -2, "20:00 - 04:00"},
		{"single time", "14:00", -1, "13:00"},
		{"extras ignored", "06:00 - 14:00 / 15:00 - 16:00", -2, "04:00 - 12:00"},
		{"single digit hour not matched", "6:00", -2, ""},
		{"no times", "Europe", -2, ""},
		{"empty", "", -2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeRange(tt.in, tt.offset))
		})
	}
}

func TestParseCell(t *testing.T) {
	mapper := NewDescriptorMapper(DefaultDescriptorTable())

	got := ParseCell("PRODUCTION SUPPORT LATE 14:00 - 22:00", -2, mapper)
	assert.Equal(t, ParsedCell{Descriptor: "PS Late", TimeRange: "12:00 - 20:00"}, got)

	got = ParseCell("10:00 - 18:00", -1, mapper)
	assert.Equal(t, ParsedCell{Descriptor: "", TimeRange: "09:00 - 17:00"}, got)

	got = ParseCell("Sick leave", -1, mapper)
	assert.Equal(t, ParsedCell{Descriptor: "Sick leave", TimeRange: ""}, got)
}
