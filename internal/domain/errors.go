package domain

import (
	"errors"
	"fmt"
)

// ErrCannotValidate - документ не имеет минимальной структуры, необходимой для валидации.
// Используется с errors.Is для всех фатальных ошибок валидации.
var ErrCannotValidate = errors.New("cannot validate document")

// MalformedDocumentError - фатальная ошибка: документ не соответствует ожидаемой форме
type MalformedDocumentError struct {
	Path   Pointer
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document at %s: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrCannotValidate.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrCannotValidate
}

// MaxDepthError - вложенность ссылок превысила допустимый предел
type MaxDepthError struct {
	Ref   string
	Depth int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("maximum reference depth %d exceeded while resolving %s", e.Depth, e.Ref)
}

// Is reports whether target is ErrCannotValidate.
func (e *MaxDepthError) Is(target error) bool {
	return target == ErrCannotValidate
}

// ErrCircularReference - ссылка разрешается через цикл
type ErrCircularReference struct {
	Ref string
}

func (e *ErrCircularReference) Error() string {
	return fmt.Sprintf("circular reference detected: %s", e.Ref)
}

// ErrInvalidReference - ссылка не соответствует формату JSON Pointer
type ErrInvalidReference struct {
	Ref   string
	Cause error
}

func (e *ErrInvalidReference) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid reference: %s: %v", e.Ref, e.Cause)
	}
	return fmt.Sprintf("invalid reference: %s", e.Ref)
}

func (e *ErrInvalidReference) Unwrap() error {
	return e.Cause
}

// ErrReferenceNotFound - цель ссылки отсутствует в документе
type ErrReferenceNotFound struct {
	Ref string
}

func (e *ErrReferenceNotFound) Error() string {
	return fmt.Sprintf("reference target not found: %s", e.Ref)
}

// ErrRemoteReference - внешние ссылки не загружаются
type ErrRemoteReference struct {
	Ref string
}

func (e *ErrRemoteReference) Error() string {
	return fmt.Sprintf("remote references are not supported: %s", e.Ref)
}
