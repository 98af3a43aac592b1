package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by running validator.Struct on validate tags.
type Validatable interface {
	Validate() error
}

// DeferredBody is implemented by payloads whose body is bound later than
// their path params, e.g. only once the record the path names is found.
// BindAndValidate leaves the body of such payloads unread.
type DeferredBody interface {
	BindBody(c echo.Context) error
}

// validate is shared by every payload; *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("content") rather than Go field names ("Content").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "param", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Struct runs tag validation on s using the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

// StructPartial validates only the named Go fields of s.
func StructPartial(s any, fields ...string) error {
	return validate.StructPartial(s, fields...)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates path params, query (GET/DELETE) and body.
//     A DeferredBody payload gets its path params only.
//  2. payload.Validate() applies validation rules.
//  3. Any failure becomes a 400 *errs.HTTPError, with field errors when
//     validation (not binding) failed.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if _, ok := payload.(DeferredBody); ok {
		err = (&echo.DefaultBinder{}).BindPathParams(c, payload)
	} else {
		err = c.Bind(payload)
	}
	if err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	return Check(payload.Validate())
}

// BindBody decodes the request body into payload. An empty body leaves
// payload untouched. Decode failures become the same 400 BindAndValidate
// returns.
func BindBody(c echo.Context, payload any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}
	return nil
}

// Check converts the result of a Validate call into the 400 *errs.HTTPError
// BindAndValidate returns. It is used where validation runs after binding,
// e.g. once a service has confirmed the target record exists.
func Check(err error) error {
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
}

// bindErrorMessage extracts the binder's message, e.g.
// "Unmarshal type error: expected=string, got=number, field=title, offset=12".
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return "Unsupported content type, expected application/json"
		}
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request payload"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min/max mean length for strings and value for numbers.
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "alphanum":
			msg = "must contain only letters and digits"

		case "dive":
			msg = "some items are invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
