package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesRepositoryMissingFileGivesDefaults(t *testing.T) {
	repo := NewYAMLRulesRepository(filepath.Join(t.TempDir(), "absent.yaml"))

	rules, err := repo.LoadRules()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCategoryOrder(), rules.Order)
	assert.Equal(t, "PS Early", rules.Mapper.Map("production support early"))
	assert.Equal(t, domain.DefaultPlaceholders(), rules.Placeholders)
}

func TestRulesRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	repo := NewYAMLRulesRepository(path)

	require.NoError(t, repo.SaveRules(domain.DefaultRules()))
	rules, err := repo.LoadRules()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCategoryOrder(), rules.Order)
	assert.Equal(t, domain.NewDescriptorMapper(domain.DefaultDescriptorTable()).Table(), rules.Mapper.Table())
	assert.Equal(t, domain.DefaultLocationTags(), rules.LocationTags)
}

func TestRulesRepositoryPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
category_order:
  - Live Day
  - ""
  - Night Watch
descriptor_map:
  night watch 22-06: Night Watch
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := NewYAMLRulesRepository(path).LoadRules()
	require.NoError(t, err)

	entries := rules.Order.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Live Day", entries[0].Name())
	assert.True(t, entries[1].IsSeparator())
	assert.Equal(t, "Night Watch", rules.Mapper.Map("Night Watch 22-06"))
	assert.Equal(t, domain.DefaultPlaceholders(), rules.Placeholders, "missing sections fall back to defaults")
}

func TestRulesRepositoryBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("category_order: [unclosed"), 0644))

	_, err := NewYAMLRulesRepository(path).LoadRules()
	assert.Error(t, err)
}
