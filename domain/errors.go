package domain

import "errors"

// Ошибки формы входного файла. Любая из них прерывает прогон.
var (
	ErrEmptyInput    = errors.New("input file is empty")
	ErrMissingHeader = errors.New("header row not found")
	ErrTooFewColumns = errors.New("unexpected column count")
	ErrNoDataRows    = errors.New("no data rows after header")

	// ErrUnsupportedFormat файл не похож ни на xlsx, ни на xls, ни на HTML-таблицу
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// IsInputError сообщает, что ошибка вызвана некорректным входным файлом
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrTooFewColumns) ||
		errors.Is(err, ErrNoDataRows) ||
		errors.Is(err, ErrUnsupportedFormat)
}
