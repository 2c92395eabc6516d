package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/princinho/schoolpanel/models"
)

// RegisterValidators adds the "role" and "news_status" tags to gin's
// validator. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("dto: gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("role", validRole); err != nil {
		return err
	}
	return v.RegisterValidation("news_status", validNewsStatus)
}

func validRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}

func validNewsStatus(fl validator.FieldLevel) bool {
	return models.NewsStatus(fl.Field().String()).Valid()
}
