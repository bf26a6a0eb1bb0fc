package usecases

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vaflel/shift-cleaner/domain"
)

// SaveWorkbook пишет книгу во временный файл в dir и переименовывает его.
// При ошибке файл с итоговым именем не появляется.
func SaveWorkbook(writer WorkbookWriter, wb domain.Workbook, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("не удалось создать каталог для книги: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".daily-*.xlsx.tmp")
	if err != nil {
		return "", fmt.Errorf("не удалось создать временный файл: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writer.Write(tmp, wb); err != nil {
		tmp.Close()
		return "", fmt.Errorf("не удалось записать книгу: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("не удалось закрыть книгу: %w", err)
	}

	target := filepath.Join(dir, wb.Filename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("не удалось переместить книгу на место: %w", err)
	}

	return target, nil
}
