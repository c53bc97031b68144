package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("некорректный ответ сервера")
	ErrNoUploadURL       = errors.New("Сервер не вернул URL загруженного фото")
)

// APIError ответ бэкенда с кодом не из диапазона 2xx
type APIError struct {
	Status int
	Detail string // поле detail из тела ответа, если было
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ошибка API (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("ошибка API (%d)", e.Status)
}

// parseDetail достаёт строковое поле detail. Ошибки валидации приходят списком, их не показываем
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

// Describe превращает ошибку в текст для уведомления:
// detail сервера, иначе "generic (код)", иначе просто generic
func Describe(err error, generic string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("%s (%d)", generic, apiErr.Status)
	}
	if errors.Is(err, ErrNoUploadURL) {
		return ErrNoUploadURL.Error()
	}
	return generic
}

// Detail возвращает текст detail, если он был в ответе
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
