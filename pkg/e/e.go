package e

import (
	"errors"
	"fmt"
)

var (
	// Ошибки транспорта до инвентарного API
	ErrTransport = fmt.Errorf("inventory api unreachable")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("missing environment variable")

	// Ошибки запроса (400)
	ErrInvalidID         = fmt.Errorf("invalid id")
	ErrInvalidPagination = fmt.Errorf("invalid pagination parameters")
	ErrInvalidBody       = fmt.Errorf("invalid request body")
	ErrUnsupportedFormat = fmt.Errorf("unsupported report format")

	// Ошибки выгрузки отчетов
	ErrReportsDisabled = fmt.Errorf("report export is not configured")
	ErrReportTooLarge  = fmt.Errorf("report exceeds page limit")

	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrSessionNotFound      = fmt.Errorf("session not found")
	ErrAuditQueueOverflowed = fmt.Errorf("audit queue is full")
)

// APIError описывает ответ инвентарного API со статусом вне диапазона 2xx.
// Message заполняется из поля "error" тела ответа, если бэкенд его прислал.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

func (a *APIError) Error() string {
	if a.Message == "" {
		return fmt.Sprintf("inventory api responded with status %d", a.StatusCode)
	}

	return fmt.Sprintf("inventory api responded with status %d: %s", a.StatusCode, a.Message)
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// MessageOf возвращает сообщение бэкенда из цепочки ошибок.
// Если сообщения нет или оно пустое, возвращается fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}

// messageError несет сообщение для пользователя поверх исходной ошибки.
type messageError struct {
	msg string
	err error
}

func (m *messageError) Error() string {
	return m.err.Error()
}

func (m *messageError) Unwrap() error {
	return m.err
}

// WithMessage прикрепляет к ошибке сообщение, которое можно показать пользователю.
func WithMessage(err error, msg string) error {
	return &messageError{msg: msg, err: err}
}

// UserMessage возвращает ближайшее сообщение, прикрепленное через WithMessage.
func UserMessage(err error) (string, bool) {
	var m *messageError
	if errors.As(err, &m) {
		return m.msg, true
	}

	return "", false
}
