package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 以 key:message 形式拼接所有校验错误
func (v ValidErrors) MapsToString() string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Key+":"+err.Message)
	}
	return strings.Join(errs, ",")
}

// BindAndValid binds request parameters and validates them with the translator in context
// BindAndValid 绑定请求参数并使用上下文中的翻译器进行校验
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans, _ := c.Value("trans").(ut.Translator)
		for _, validationErr := range validationErrors {
			var message string
			if trans != nil {
				message = validationErr.Translate(trans)
			} else {
				message = validationErr.Error()
			}
			errs = append(errs, &ValidError{
				Key:     validationErr.Field(),
				Message: message,
			})
		}
		return false, errs
	}

	return true, nil
}
