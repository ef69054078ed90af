package validatorx

import (
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

// Init initializes the validator singleton (idempotent)
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
		_ = v.RegisterValidation("category", validateCategory)
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// validateCategory accepts empty values (defaulted later) and the known
// property types, case-insensitively.
func validateCategory(fl gpvalidator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, c := range constant.Categories {
		if strings.EqualFold(c, val) {
			return true
		}
	}
	return false
}
