package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoのc.Validate()に差すリクエスト検証。
type RequestValidator struct {
	validate *playground.Validate
}

func New() *RequestValidator {
	return &RequestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		// フィールド単位のメッセージをそのまま400で返す
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
