package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError, field string) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "min":
		if isList {
			return fmt.Sprintf("%v must contain at least %v entries", field, fe.Param())
		}
		return fmt.Sprintf("%v must be at least %v characters", field, fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("%v must contain at most %v entries", field, fe.Param())
		}
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	case "cmin":
		return fmt.Sprintf("%v must be at least %v non-whitespace characters", field, fe.Param())
	case "cmax":
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace characters", field)
	case "oneof":
		return fmt.Sprintf("%v must be one of: %v", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%v must be a valid id", field)
	case "url", "http_url":
		return fmt.Sprintf("%v must be a valid url", field)
	}

	return fe.Error()
}

/*
GenerateErrorMessages turns err into a list of ApiError for the response envelope.

Validation errors produce one entry per failed field, using the json name of the field
once RegisterCustomValidations has been applied:

	[
	  {
		"field": "title",
		"message": "title must not be empty or contain only whitespace characters"
	  }
	]

Optional parameters:
  - map[string]string renames fields, e.g. {"title": "Item title"}
  - string is the field reported for errors that are not validation errors
*/
func GenerateErrorMessages(err error, optionalParams ...any) []ApiError {
	var customField map[string]string
	fieldName := "Unknown"

	for _, param := range optionalParams {
		switch v := param.(type) {
		case map[string]string:
			customField = v
		case string:
			if v != "" {
				fieldName = v
			}
		}
	}

	if err == nil {
		return []ApiError{}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, 0, len(ve))
		for _, fe := range ve {
			field := fe.Field()
			if renamed, ok := customField[field]; ok {
				field = renamed
			}
			out = append(out, ApiError{Field: field, Message: msgForTag(fe, field)})
		}
		return out
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []ApiError{{Field: fieldName, Message: "Record not found"}}
	}

	return []ApiError{{Field: fieldName, Message: err.Error()}}
}

// Register strNotEmpty, cmin and cmax on a validator, usually the gin binding engine.
// Field errors are reported under their json name.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return sf.Name
		}
		return name
	})

	validations := map[string]validator.Func{
		"strNotEmpty": StrNotEmpty,
		"cmin":        CustomMin,
		"cmax":        CustomMax,
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation %s: %w", tag, err)
		}
	}

	return nil
}

// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	n, ok := trimmedLength(fl)
	return ok && n > 0
}

// Trimmed string has at least n characters.
// Usage: `binding:"cmin=3"`
func CustomMin(fl validator.FieldLevel) bool {
	n, ok := trimmedLength(fl)
	if !ok {
		return false
	}

	limit, err := strconv.Atoi(fl.Param())
	return err == nil && n >= limit
}

// Trimmed string has at most n characters. Optional fields pass when empty.
// Usage: `binding:"cmax=100"`
func CustomMax(fl validator.FieldLevel) bool {
	n, ok := trimmedLength(fl)
	if !ok {
		return false
	}

	limit, err := strconv.Atoi(fl.Param())
	return err == nil && n <= limit
}

// Characters, not bytes, so titles in any script get the same limit
func trimmedLength(fl validator.FieldLevel) (int, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return 0, false
	}

	return utf8.RuneCountInString(strings.TrimSpace(field.String())), true
}
