// Package validator registers the ledger's binding tags with gin and turns
// validation failures into client-facing messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

// Any three upper-case letters pass. Codes outside the display catalog are
// shown verbatim.
var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

var rules = map[string]struct {
	fn      validator.Func
	message string
}{
	"currency_code": {
		fn:      func(fl validator.FieldLevel) bool { return currencyCode.MatchString(fl.Field().String()) },
		message: "must be a three-letter upper-case currency code",
	},
	"transaction_type": {
		fn:      func(fl validator.FieldLevel) bool { return models.TransactionType(fl.Field().String()).Valid() },
		message: "must be income or expense",
	},
	"category": {
		fn:      func(fl validator.FieldLevel) bool { return models.Category(fl.Field().String()).Valid() },
		message: "must be one of " + strings.Join(categoryNames(), ", "),
	},
}

// Register installs the custom tags on gin's default validator.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags on v and makes field errors report
// json names instead of Go field names.
func RegisterOn(v *validator.Validate) {
	for tag, r := range rules {
		if err := v.RegisterValidation(tag, r.fn); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}
	v.RegisterTagNameFunc(jsonName)
}

// Describe renders a binding error as one sentence per failed field, e.g.
// "name is required; currency must be a three-letter upper-case currency code".
// Errors that are not validation failures are returned as is.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" "+explain(fe))
	}
	return strings.Join(parts, "; ")
}

func explain(fe validator.FieldError) string {
	if r, ok := rules[fe.Tag()]; ok {
		return r.message
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	}
	return "failed " + fe.Tag() + " validation"
}

func jsonName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func categoryNames() []string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return names
}
