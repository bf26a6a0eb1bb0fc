package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Vaflel/shift-cleaner/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Options параметры прогона
type Options struct {
	Layout  domain.Layout
	Rules   domain.Rules
	Mode    domain.TimeMode
	Workers int              // сколько колонок обрабатывать параллельно
	Now     func() time.Time // часы для имени файла
}

// CleaningService управляет оркестрацией разбора и раскладки графика
type CleaningService struct {
	validator *domain.Validator
	rules     domain.Rules
	offset    int
	workers   int
	now       func() time.Time
	logger    *zap.Logger
}

// CleaningResult содержит результаты обработки графика
type CleaningResult struct {
	Roster   domain.Roster
	Workbook domain.Workbook
	Days     []DayResult
}

// DayResult строки одного дня после сортировки
type DayResult struct {
	Column string
	Rows   []domain.OutputRow
}

// NewCleaningService создает новый экземпляр сервиса
func NewCleaningService(opts Options, logger *zap.Logger) *CleaningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mode := opts.Mode
	if mode == "" {
		mode = domain.TimeModeDST
	}

	return &CleaningService{
		validator: domain.NewValidator(opts.Layout),
		rules:     opts.Rules,
		offset:    mode.OffsetHours(),
		workers:   workers,
		now:       now,
		logger:    logger,
	}
}

// OutputFilename имя выходного файла по текущему времени UTC
func (s *CleaningService) OutputFilename() string {
	return fmt.Sprintf("Daily-%s.xlsx", s.now().UTC().Format("2006-01-02-15-04"))
}

// Load читает файл загрузчиком и обрабатывает таблицу
func (s *CleaningService) Load(ctx context.Context, loader RosterLoader, src io.ReadSeeker, name string) (CleaningResult, error) {
	table, err := loader.Load(ctx, src, name)
	if err != nil {
		return CleaningResult{}, fmt.Errorf("не удалось прочитать %s: %w", name, err)
	}
	s.logger.Debug("table loaded", zap.String("file", name), zap.Int("rows", len(table)))
	return s.Process(ctx, table)
}

// Process строит сводный лист и листы дней
func (s *CleaningService) Process(ctx context.Context, table domain.Table) (CleaningResult, error) {
	roster, err := s.validator.BuildRoster(table)
	if err != nil {
		return CleaningResult{}, err
	}
	s.logger.Info("roster prepared",
		zap.Int("colleagues", len(roster.Rows)),
		zap.Int("days", len(roster.DayColumns())),
	)

	columns := roster.DayColumns()
	days := make([]DayResult, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, col := range columns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			days[i] = s.cleanColumn(roster, col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CleaningResult{}, err
	}

	wb := domain.Workbook{
		Filename: s.OutputFilename(),
		Sheets:   make([]domain.Sheet, 0, len(days)+1),
	}
	wb.Sheets = append(wb.Sheets, cleanedSheet(roster))
	for _, day := range days {
		sheet := domain.Sheet{
			Name:   domain.TruncateSheetName(day.Column),
			Header: []string{domain.ShiftTimeLabel, domain.IdentityLabel, day.Column},
			Rows:   make([][]string, len(day.Rows)),
		}
		for i, r := range day.Rows {
			sheet.Rows[i] = r.Values()
		}
		wb.Sheets = append(wb.Sheets, sheet)
		s.logger.Debug("sheet ready", zap.String("sheet", sheet.Name), zap.Int("rows", len(sheet.Rows)))
	}

	return CleaningResult{Roster: roster, Workbook: wb, Days: days}, nil
}

// cleanColumn разбирает одну колонку дня и раскладывает строки по категориям
func (s *CleaningService) cleanColumn(roster domain.Roster, col int) DayResult {
	rows := make([]domain.OutputRow, 0, len(roster.Rows))

	for _, raw := range roster.Rows {
		cell := raw[col]
		if !cell.Valid || s.rules.IsPlaceholder(cell.Text) {
			continue
		}
		parsed := domain.ParseCell(s.rules.StripLocationTags(cell.Text), s.offset, s.rules.Mapper)
		rows = append(rows, domain.OutputRow{
			ShiftTime: parsed.TimeRange,
			Colleague: raw[0].Text,
			Category:  parsed.Descriptor,
		})
	}

	return DayResult{
		Column: roster.Headers[col],
		Rows:   domain.SortByCategory(rows, s.rules.Order, s.rules.Mapper),
	}
}

// cleanedSheet сводный лист: все колонки, только фильтрация строк
func cleanedSheet(roster domain.Roster) domain.Sheet {
	sheet := domain.Sheet{
		Name:   domain.CleanedSheetName,
		Header: append([]string(nil), roster.Headers...),
		Rows:   make([][]string, len(roster.Rows)),
	}
	for i, raw := range roster.Rows {
		values := make([]string, len(raw))
		for j, c := range raw {
			values[j] = c.Text
		}
		sheet.Rows[i] = values
	}
	return sheet
}
