package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// usecase内で検出した失敗はHTTPErrorで表現し、handler境界で1回だけ
// レスポンスに変換する
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errUnauthorized(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func errInternal() error {
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
