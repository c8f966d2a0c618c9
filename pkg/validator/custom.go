package validator

import (
	"strings"

	val "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin/binding"
)

// RegisterCustom 注册项目自定义校验规则
// 需要在 binding.Validator 替换为 CustomValidator 之后调用
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}

	// notblank 非空白字符串
	_ = validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// username 3-30 位字母数字下划线
	_ = validate.RegisterValidation("username", func(fl val.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 3 || len(s) > 30 {
			return false
		}
		for _, r := range s {
			if !(r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
		}
		return true
	})
}
