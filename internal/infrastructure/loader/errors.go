package loader

import (
	"fmt"
	"os"
)

// ErrFileNotFound возникает когда входной файл не найден
// Это техническая ошибка инфраструктуры (файловая система, HTTP)
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Unwrap allows errors.Is(err, os.ErrNotExist)
func (e *ErrFileNotFound) Unwrap() error {
	return os.ErrNotExist
}
