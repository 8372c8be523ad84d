package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate = validator.New()
	trans    ut.Translator

	initOnce sync.Once
	initErr  error
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Response struct {
	Message string `json:"message"`
}

// InitValidator registers english messages and json field names. Safe to call more than once.
func InitValidator() error {
	initOnce.Do(func() {
		uni := ut.New(en.New(), en.New())
		trans, _ = uni.GetTranslator("en")

		if err := enTranslations.RegisterDefaultTranslations(Validate, trans); err != nil {
			initErr = err
			return
		}

		Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})

	return initErr
}

// ValidateSingleError returns the first validation failure as a translated message.
func ValidateSingleError(req interface{}) error {
	if err := Validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && trans != nil {
			return errors.New(ve[0].Translate(trans))
		}
		return err
	}
	return nil
}
