package wistia

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/goccy/go-json"
)

// Resource shapes are declared with `validate` struct tags on the model
// types. This file turns those declarations into decode errors; it knows
// nothing about individual resources.

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("wistia: failed to get 'en' translator")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("assetkind", func(fl validator.FieldLevel) bool {
		return AssetKind(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

// validateShape checks v, a pointer to a decoded value, against the shape
// declared on its type. Structs are validated directly; slices and arrays are
// validated element by element so the error path carries the index. raw is
// the body v was decoded from; it tells a missing key from an empty value.
func validateShape(v any, raw []byte) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validateStruct(rv, "", raw)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer {
				if elem.IsNil() {
					break
				}
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := validateStruct(elem, fmt.Sprintf("[%d]", i), raw); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateStruct(rv reflect.Value, prefix string, raw []byte) error {
	err := validate.Struct(rv.Interface())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &DecodeError{Path: prefix, Err: err}
	}

	// First failure wins; a decode error never carries a partial value.
	fe := verrs[0]
	path := joinPath(prefix, fieldPath(fe.Namespace()))
	decErr := fieldDecodeError(path, fe)
	if fe.Tag() == "required" {
		var doc any
		if json.Unmarshal(raw, &doc) == nil {
			if value, ok := lookupPath(doc, path); ok {
				decErr.Actual = presentValue(value)
			}
		}
	}
	return decErr
}

// lookupPath follows a path such as "[1].assets[0].type" through a
// generically decoded document.
func lookupPath(doc any, path string) (any, bool) {
	for _, part := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(part, "[")
		if name != "" {
			obj, ok := doc.(map[string]any)
			if !ok {
				return nil, false
			}
			if _, doc, ok = lookupKey(obj, name); !ok {
				return nil, false
			}
		}
		if rest == "" {
			continue
		}
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			i, err := strconv.Atoi(idx)
			list, ok := doc.([]any)
			if err != nil || !ok || i < 0 || i >= len(list) {
				return nil, false
			}
			doc = list[i]
		}
	}
	return doc, true
}

// presentValue describes a value that was sent but failed a required check.
func presentValue(value any) string {
	if s, ok := value.(string); ok {
		return strconv.Quote(s)
	}
	return jsonKind(value)
}

// fieldPath drops the root type name from a validator namespace:
// "Media.assets[0].type" becomes "assets[0].type".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	}
	return prefix + "." + path
}

func fieldDecodeError(path string, fe validator.FieldError) *DecodeError {
	actual := fmt.Sprintf("%q", fmt.Sprint(fe.Value()))

	switch fe.Tag() {
	case "required":
		return &DecodeError{
			Path:     path,
			Expected: "non-empty " + fe.Type().String(),
			Actual:   "missing",
			Err:      errors.New(fe.Translate(translator)),
		}
	case "assetkind":
		return &DecodeError{
			Path:     path,
			Expected: "asset kind",
			Actual:   actual,
			Err:      fmt.Errorf("%w: %v", ErrUnknownAssetKind, fe.Value()),
		}
	case "url":
		return &DecodeError{
			Path:     path,
			Expected: "URL",
			Actual:   actual,
			Err:      errors.New(fe.Translate(translator)),
		}
	default:
		return &DecodeError{
			Path:     path,
			Expected: fe.Tag(),
			Actual:   actual,
			Err:      errors.New(fe.Translate(translator)),
		}
	}
}
