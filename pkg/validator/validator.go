// Package validator valida DTOs de entrada con etiquetas de go-playground/validator.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate ejecuta la validación de struct según las etiquetas `validate`.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors convierte validator.ValidationErrors en campo -> mensaje.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[fieldPath(e)] = formatFieldError(e)
	}
	return errs
}

// fieldPath quita el nombre del struct raíz: "CreateProductRequest.sku" -> "sku".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo obligatorio"
	case "uuid", "uuid4":
		return "debe ser un UUID válido"
	case "min":
		return fmt.Sprintf("mínimo %s", e.Param())
	case "max":
		return fmt.Sprintf("máximo %s", e.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", e.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", e.Param())
	case "oneof":
		return fmt.Sprintf("valores permitidos: %s", e.Param())
	default:
		return fmt.Sprintf("validación '%s' falló", e.Tag())
	}
}
