package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", validateUsername)
	}
}

// validateUsername allows alphanumeric, underscore, dash, and dot.
func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims every exported string field (including *string and
// named string types) of a struct pointer. The `sanitize` tag adjusts this:
// "html" also escapes HTML, "-" leaves the field untouched.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}

	elem := rv.Elem()
	typ := elem.Type()
	for i := 0; i < elem.NumField(); i++ {
		mode := typ.Field(i).Tag.Get("sanitize")
		if mode == "-" {
			continue
		}

		f := elem.Field(i)
		if !f.CanSet() {
			continue
		}
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		if f.Kind() == reflect.String {
			f.SetString(sanitize(f.String(), mode == "html"))
		}
	}
}

func sanitize(s string, escape bool) string {
	s = strings.TrimSpace(s)
	if escape {
		s = html.EscapeString(s)
	}
	return s
}
