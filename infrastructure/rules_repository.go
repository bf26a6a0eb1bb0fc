package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Vaflel/shift-cleaner/domain"
	"gopkg.in/yaml.v3"
)

// RulesFile структура файла правил. Пустая строка в category_order означает разделитель.
type RulesFile struct {
	CategoryOrder []string          `yaml:"category_order"`
	DescriptorMap map[string]string `yaml:"descriptor_map"`
	Placeholders  []string          `yaml:"placeholders"`
	LocationTags  []string          `yaml:"location_tags"`
}

// YAMLRulesRepository реализует RulesRepository для работы с YAML-файлом
type YAMLRulesRepository struct {
	filename string
	mutex    sync.RWMutex
}

// NewYAMLRulesRepository создает новый экземпляр репозитория
func NewYAMLRulesRepository(filename string) *YAMLRulesRepository {
	return &YAMLRulesRepository{
		filename: filename,
	}
}

// LoadRules загружает правила из YAML файла.
// Если файла нет, возвращаются правила по умолчанию; отсутствующие разделы тоже берутся по умолчанию.
func (r *YAMLRulesRepository) LoadRules() (domain.Rules, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.filename == "" {
		return domain.DefaultRules(), nil
	}

	data, err := os.ReadFile(r.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultRules(), nil
	}
	if err != nil {
		return domain.Rules{}, fmt.Errorf("не удалось прочитать файл правил: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Rules{}, fmt.Errorf("не удалось распарсить YAML: %w", err)
	}

	return file.toRules(), nil
}

// SaveRules сохраняет правила в YAML файл
func (r *YAMLRulesRepository) SaveRules(rules domain.Rules) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := MarshalRules(rules)
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}

	return nil
}

// MarshalRules сериализует правила в YAML
func MarshalRules(rules domain.Rules) ([]byte, error) {
	data, err := yaml.Marshal(rulesToFile(rules))
	if err != nil {
		return nil, fmt.Errorf("не удалось сериализовать YAML: %w", err)
	}
	return data, nil
}

func (f RulesFile) toRules() domain.Rules {
	rules := domain.DefaultRules()

	if f.CategoryOrder != nil {
		entries := make([]domain.OrderEntry, 0, len(f.CategoryOrder))
		for _, name := range f.CategoryOrder {
			if name == "" {
				entries = append(entries, domain.Separator())
				continue
			}
			entries = append(entries, domain.Category(name))
		}
		rules.Order = domain.NewCategoryOrder(entries)
	}
	if f.DescriptorMap != nil {
		rules.Mapper = domain.NewDescriptorMapper(f.DescriptorMap)
	}
	if f.Placeholders != nil {
		rules.Placeholders = f.Placeholders
	}
	if f.LocationTags != nil {
		rules.LocationTags = f.LocationTags
	}

	return rules
}

func rulesToFile(rules domain.Rules) RulesFile {
	entries := rules.Order.Entries()
	file := RulesFile{
		CategoryOrder: make([]string, len(entries)),
		DescriptorMap: rules.Mapper.Table(),
		Placeholders:  append([]string{}, rules.Placeholders...),
		LocationTags:  append([]string{}, rules.LocationTags...),
	}
	for i, entry := range entries {
		file.CategoryOrder[i] = entry.Name()
	}
	return file
}
