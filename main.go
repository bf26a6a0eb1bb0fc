package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vaflel/shift-cleaner/config"
	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/Vaflel/shift-cleaner/infrastructure"
	"github.com/Vaflel/shift-cleaner/usecases"
	"github.com/Vaflel/shift-cleaner/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	cleanMode           string
	cleanOut            string
	cleanSkipRows       int
	cleanRules          string
	cleanPreview        int
	cleanKeepIncomplete bool

	servePort int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shiftclean",
	Short: "Раскладывает выгрузку графика смен по листам дней",
	Long: `shiftclean читает выгрузку графика (xlsx, xls или HTML-таблицу),
переводит время смен, раскладывает сотрудников по категориям и пишет
книгу Daily-YYYY-MM-DD-HH-MM.xlsx: сводный лист и по листу на каждый день.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("не удалось создать логгер: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Обработать файл графика и записать книгу",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Работа с файлом правил",
}

var rulesInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Записать правила по умолчанию в YAML-файл",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesInit,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать действующие правила",
	Args:  cobra.NoArgs,
	RunE:  runRulesShow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "путь к YAML-конфигу (по умолчанию SHIFTCLEAN_CONFIG или shiftclean.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "подробный лог")

	cleanCmd.Flags().StringVarP(&cleanMode, "mode", "m", "", "режим времени: dst (-2 ч) или standard (-1 ч)")
	cleanCmd.Flags().StringVarP(&cleanOut, "out", "o", "", "каталог для выходной книги")
	cleanCmd.Flags().IntVar(&cleanSkipRows, "skip-rows", 0, "служебные строки перед заголовком")
	cleanCmd.Flags().StringVar(&cleanRules, "rules", "", "YAML-файл правил")
	cleanCmd.Flags().IntVar(&cleanPreview, "preview", 0, "показать первые N строк последнего дня")
	cleanCmd.Flags().BoolVar(&cleanKeepIncomplete, "keep-incomplete", false, "не убирать строки с пустыми ячейками из сводного листа")

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "порт HTTP API")

	rulesShowCmd.Flags().StringVar(&cleanRules, "rules", "", "YAML-файл правил")

	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings собирает конфиг и правила с учётом флагов команды
func loadSettings(cmd *cobra.Command) (config.Config, domain.Rules, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, domain.Rules{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.TimeMode = cleanMode
	}
	if flags.Changed("out") {
		cfg.OutputDir = cleanOut
	}
	if flags.Changed("skip-rows") {
		cfg.SkipRows = cleanSkipRows
	}
	if flags.Changed("rules") {
		cfg.RulesPath = cleanRules
	}
	if flags.Changed("keep-incomplete") {
		cfg.KeepIncompleteRows = cleanKeepIncomplete
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, domain.Rules{}, err
	}

	rules, err := infrastructure.NewYAMLRulesRepository(cfg.RulesPath).LoadRules()
	if err != nil {
		return config.Config{}, domain.Rules{}, err
	}
	return cfg, rules, nil
}

func serviceOptions(cfg config.Config, rules domain.Rules) usecases.Options {
	return usecases.Options{
		Layout:  cfg.Layout(),
		Rules:   rules,
		Mode:    cfg.Mode(),
		Workers: cfg.Workers,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, rules, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("не удалось открыть %s: %w", path, err)
	}
	defer file.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader := infrastructure.NewFileLoader(cfg.XLSCharset, logger)
	service := usecases.NewCleaningService(serviceOptions(cfg, rules), logger)
	result, err := service.Load(ctx, loader, file, path)
	if err != nil {
		return err
	}

	target, err := usecases.SaveWorkbook(infrastructure.NewXLSXWriter(logger), result.Workbook, cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("workbook saved",
		zap.String("path", target),
		zap.Int("sheets", len(result.Workbook.Sheets)),
		zap.String("mode", string(cfg.Mode())),
	)
	fmt.Fprintln(cmd.OutOrStdout(), target)

	if cleanPreview > 0 {
		if sheet, ok := web.LastSheet(result.Workbook); ok {
			fmt.Fprintln(cmd.OutOrStdout(), web.RenderPreview(sheet, cleanPreview))
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, rules, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	server := web.NewServer(
		serviceOptions(cfg, rules),
		infrastructure.NewFileLoader(cfg.XLSCharset, logger),
		infrastructure.NewXLSXWriter(logger),
		web.NewResultCache(time.Duration(cfg.ResultTTLMinutes)*time.Minute),
		cfg.MaxUploadBytes,
		logger,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("не удалось остановить сервер: %w", err)
	}
	return <-errCh
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("файл %s уже существует", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := infrastructure.NewYAMLRulesRepository(path).SaveRules(domain.DefaultRules()); err != nil {
		return err
	}
	logger.Info("rules written", zap.String("path", path))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	_, rules, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := infrastructure.MarshalRules(rules)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
