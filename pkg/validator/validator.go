package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var pinRegexp = regexp.MustCompile(`^\d{4}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("pin", pinValidator)
		if err != nil {
			log.Fatal("register pin validator failed")
		}
	}
}

// IsPin reports whether p is a 4-digit numeric PIN string.
func IsPin(p string) bool {
	return pinRegexp.MatchString(p)
}

var pinValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsPin(fl.Field().String())
}
