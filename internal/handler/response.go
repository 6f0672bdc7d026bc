package handler

import (
	"net/http"

	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 成功レスポンスの共通エンベロープ
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

// エラーレスポンスの共通エンベロープ
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func writeData(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// usecaseのHTTPErrorをここで1回だけwireのエラーに変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, APIErrorResponse{
			StatusCode: he.Status,
			Message:    he.Message,
			Errors:     []string{},
		})
	}

	//500
	return c.JSON(http.StatusInternalServerError, APIErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal error",
		Errors:     []string{},
	})
}
