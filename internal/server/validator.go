package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

// NewValidator настраивает проверку тел запросов по тегам validate.
func NewValidator() echo.Validator {
	return &requestValidator{validate: validator.New()}
}

// Validate проверяет привязанную структуру запроса.
func (rv *requestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}
