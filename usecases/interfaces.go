package usecases

import (
	"context"
	"io"

	"github.com/Vaflel/shift-cleaner/domain"
)

// RosterLoader читает выгрузку графика в сырую таблицу.
// name используется для выбора формата по расширению.
type RosterLoader interface {
	Load(ctx context.Context, src io.ReadSeeker, name string) (domain.Table, error)
}

// WorkbookWriter записывает выходную книгу
type WorkbookWriter interface {
	Write(w io.Writer, wb domain.Workbook) error
}

// RulesRepository определяет интерфейс для работы с файлом правил
type RulesRepository interface {
	LoadRules() (domain.Rules, error)
	SaveRules(rules domain.Rules) error
}
