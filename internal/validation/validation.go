// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/sketchquiz/internal/imagedata"
)

const TagPNGBase64 = "pngbase64"

// Register installs the custom tags on gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation(TagPNGBase64, isPNGBase64); err != nil {
		return fmt.Errorf("register %s: %w", TagPNGBase64, err)
	}
	return nil
}

// isPNGBase64 accepts base64 text, with or without a data-URI prefix, that decodes to a PNG.
func isPNGBase64(fl validator.FieldLevel) bool {
	_, _, err := imagedata.DecodePNG(fl.Field().String())
	return err == nil
}

// Message turns a binding error into the text returned to the caller.
func Message(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", lowerFirst(fe.Field()))
	case TagPNGBase64:
		return fmt.Sprintf("%s must be a base64 encoded PNG", lowerFirst(fe.Field()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", lowerFirst(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", lowerFirst(fe.Field()))
	}
}

// jsonFieldName reports fields by their JSON name so messages match the request body.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
