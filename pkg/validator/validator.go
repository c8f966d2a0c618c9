package validator

import (
	"reflect"
	"sync"

	val "github.com/go-playground/validator/v10"
)

// CustomValidator 实现 gin binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	Validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyInit()
		if err := v.Validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() any {
	v.lazyInit()
	return v.Validate
}

func (v *CustomValidator) lazyInit() {
	v.once.Do(func() {
		v.Validate = val.New()
		v.Validate.SetTagName("binding")
	})
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}
