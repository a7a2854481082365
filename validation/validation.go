package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Carats lists the gold purities a product may be listed with.
var Carats = []int{18, 22, 24}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		register(validate)
	})
	return validate
}

func register(v *validator.Validate) {
	_ = v.RegisterValidation("carat", func(fl validator.FieldLevel) bool {
		return IsCarat(int(fl.Field().Int()))
	})
}

// RegisterGin installs the custom rules on gin's binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: unexpected gin validator engine")
	}
	register(v)
	return nil
}

func IsCarat(c int) bool {
	for _, allowed := range Carats {
		if c == allowed {
			return true
		}
	}
	return false
}

// Struct validates s and flattens the first failure into a client-facing message.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return errors.New(Message(err))
}

// Message turns validator errors into a short sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "carat":
		return "carat must be 18, 22 or 24."
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
