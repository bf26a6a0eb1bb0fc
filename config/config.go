// Package config загружает настройки запуска: YAML-файл, .env и переменные окружения.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "shiftclean.yaml"
	envPrefix         = "SHIFTCLEAN_"
)

type Config struct {
	SkipRows           int    `yaml:"skip_rows"`
	DropColumns        []int  `yaml:"drop_columns"`
	KeepIncompleteRows bool   `yaml:"keep_incomplete_rows"`
	TimeMode           string `yaml:"time_mode"`
	RulesPath          string `yaml:"rules_path"`
	OutputDir          string `yaml:"output_dir"`
	Workers            int    `yaml:"workers"`
	XLSCharset         string `yaml:"xls_charset"`

	Port             int   `yaml:"port"`
	ResultTTLMinutes int   `yaml:"result_ttl_minutes"`
	MaxUploadBytes   int64 `yaml:"max_upload_bytes"`
}

// Default настройки по умолчанию
func Default() Config {
	layout := domain.DefaultLayout()
	return Config{
		SkipRows:         layout.SkipRows,
		DropColumns:      layout.DropColumns,
		TimeMode:         string(domain.TimeModeDST),
		OutputDir:        ".",
		Workers:          4,
		XLSCharset:       "utf-8",
		Port:             8060,
		ResultTTLMinutes: 30,
		MaxUploadBytes:   32 << 20,
	}
}

// Load читает .env, затем YAML (путь из аргумента, SHIFTCLEAN_CONFIG или shiftclean.yaml),
// затем переменные окружения. Отсутствующий файл не считается ошибкой.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("не удалось прочитать .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
		if envPath := os.Getenv(envPrefix + "CONFIG"); envPath != "" {
			path = envPath
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("не удалось распарсить %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("не удалось прочитать %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, с которыми прогон невозможен
func (c Config) Validate() error {
	if c.SkipRows < 0 {
		return fmt.Errorf("некорректный skip_rows %d: должен быть >= 0", c.SkipRows)
	}
	for _, col := range c.DropColumns {
		if col < 0 {
			return fmt.Errorf("некорректный элемент drop_columns %d: должен быть >= 0", col)
		}
	}
	if _, err := domain.ParseTimeMode(c.TimeMode); err != nil {
		return fmt.Errorf("некорректный time_mode: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("некорректный workers %d: должен быть >= 1", c.Workers)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("некорректный port %d", c.Port)
	}
	if c.ResultTTLMinutes < 1 {
		return fmt.Errorf("некорректный result_ttl_minutes %d: должен быть >= 1", c.ResultTTLMinutes)
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("некорректный max_upload_bytes %d: должен быть >= 1024", c.MaxUploadBytes)
	}
	return nil
}

// Layout раскладка входного файла
func (c Config) Layout() domain.Layout {
	return domain.Layout{
		SkipRows:           c.SkipRows,
		DropColumns:        append([]int(nil), c.DropColumns...),
		DropIncompleteRows: !c.KeepIncompleteRows,
	}
}

// Mode режим сдвига времени; значение уже проверено в Validate
func (c Config) Mode() domain.TimeMode {
	mode, err := domain.ParseTimeMode(c.TimeMode)
	if err != nil {
		return domain.TimeModeDST
	}
	return mode
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.TimeMode, "TIME_MODE")
	envOverride(&cfg.RulesPath, "RULES")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverride(&cfg.XLSCharset, "XLS_CHARSET")

	for key, field := range map[string]*int{
		"SKIP_ROWS":          &cfg.SkipRows,
		"WORKERS":            &cfg.Workers,
		"PORT":               &cfg.Port,
		"RESULT_TTL_MINUTES": &cfg.ResultTTLMinutes,
	} {
		if err := envOverrideInt(field, key); err != nil {
			return err
		}
	}

	if cols := os.Getenv(envPrefix + "DROP_COLUMNS"); cols != "" {
		cfg.DropColumns = nil
		for _, part := range strings.Split(cols, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return fmt.Errorf("некорректное значение %sDROP_COLUMNS %q: %w", envPrefix, cols, err)
			}
			cfg.DropColumns = append(cfg.DropColumns, n)
		}
	}

	if v := os.Getenv(envPrefix + "KEEP_INCOMPLETE_ROWS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("некорректное значение %sKEEP_INCOMPLETE_ROWS %q: %w", envPrefix, v, err)
		}
		cfg.KeepIncompleteRows = b
	}

	return nil
}

func envOverride(field *string, key string) {
	if val := os.Getenv(envPrefix + key); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, key string) error {
	val := os.Getenv(envPrefix + key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("некорректное значение %s%s %q: %w", envPrefix, key, val, err)
	}
	*field = n
	return nil
}
