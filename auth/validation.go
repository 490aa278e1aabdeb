package auth

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/tierapi-go/apperror"
)

// identifiers never contain '@', which keeps them disjoint from emails at login
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// created once at package load; validator caches struct metadata internally
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their JSON names so clients can map errors to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct returns an InvalidInput *apperror.AppError listing each failed
// field and rule, or nil.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewInternalError("failed to validate request", err)
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperror.NewValidationError("invalid input", ErrInvalidInput).WithDetails(details)
}
