package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a wire name such as hire_date or hireDate into "Hire Date".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

// MapValidationError converts a gin binding failure into a client error.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		case "min", "gte":
			return New(CodeInvalidInput,
				fmt.Sprintf("%s must be at least %s", humanReadableField, e.Param()),
				http.StatusBadRequest)
		case "max", "lte":
			return New(CodeInvalidInput,
				fmt.Sprintf("%s must be at most %s", humanReadableField, e.Param()),
				http.StatusBadRequest)
		case "oneof":
			return New(CodeInvalidInput,
				fmt.Sprintf("%s must be one of: %s", humanReadableField, strings.ReplaceAll(e.Param(), " ", ", ")),
				http.StatusBadRequest)
		default:
			return InvalidField(humanReadableField)
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return InvalidField(formatFieldName(typeErr.Field))
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return New(CodeInvalidInput, "Query parameters must be numeric where a number is expected", http.StatusBadRequest)
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return New(CodeInvalidInput,
			fmt.Sprintf("Unknown field %s", strings.Trim(field, `"`)),
			http.StatusBadRequest)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
