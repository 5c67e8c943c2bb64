package validators

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// TagLength checks a string is between two rune counts, e.g. `length=4-256`.
	TagLength = "length"
	// TagNotEmpty rejects empty or whitespace-only strings and empty collections.
	TagNotEmpty = "notempty"
)

var registerOnce sync.Once

// RegisterBindings installs the custom tags on gin's binding validator.
func RegisterBindings() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		err = Register(v)
	})
	return err
}

func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagLength, Length); err != nil {
		return err
	}
	return v.RegisterValidation(TagNotEmpty, NotEmpty, true)
}

func Length(fl validator.FieldLevel) bool {
	lo, hi, ok := lengthBounds(fl.Param())
	if !ok || fl.Field().Kind() != reflect.String {
		return false
	}
	n := utf8.RuneCountInString(fl.Field().String())
	return n >= lo && n <= hi
}

func NotEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Ptr, reflect.Interface, reflect.Invalid:
		return !field.IsValid() || !field.IsNil()
	default:
		return !field.IsZero()
	}
}

// Errors maps each failing field (indexed for collection elements, e.g.
// "Ingredients[0]") to exactly one message.
func Errors(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = []string{Message(fe)}
	}
	return out
}

// Message renders a field error for API clients.
func Message(fe validator.FieldError) string {
	name := displayName(fe.Field())

	switch fe.Tag() {
	case TagLength:
		lo, hi, _ := lengthBounds(fe.Param())
		entered := 0
		if s, ok := fe.Value().(string); ok {
			entered = utf8.RuneCountInString(s)
		}
		return fmt.Sprintf("'%s' must be between %d and %d characters. You entered %d characters.", name, lo, hi, entered)
	case TagNotEmpty, "required":
		return fmt.Sprintf("'%s' must not be empty.", name)
	case "min", "gte":
		return fmt.Sprintf("'%s' must be greater than or equal to '%s'.", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("'%s' must be less than or equal to '%s'.", name, fe.Param())
	case "uuid":
		return fmt.Sprintf("'%s' is not a valid identifier.", name)
	default:
		return fmt.Sprintf("'%s' is not valid.", name)
	}
}

// displayName drops the element index: "Ingredients[2]" reads as "Ingredients".
func displayName(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		return field[:i]
	}
	return field
}

func lengthBounds(param string) (int, int, bool) {
	minStr, maxStr, found := strings.Cut(param, "-")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.Atoi(maxStr)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
