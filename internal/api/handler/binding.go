package handler

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/phone"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义校验 tag：phone
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phone.Valid(fl.Field().String())
		})
	})
}

// bindError 把绑定/校验错误转成面向用户的 ValidationError
func bindError(err error, fallback string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Validation(fallback)
	}
	switch verrs[0].Tag() {
	case "phone":
		return apperror.Validation("please provide a valid phone number")
	case "required":
		return apperror.Validation(fallback)
	default:
		return apperror.Validation("invalid field: " + verrs[0].Field())
	}
}
