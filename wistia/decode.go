package wistia

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// OutcomeState tells which of the three decode results an Outcome holds.
type OutcomeState int

const (
	// OutcomeAbsent means there was nothing to decode. It is not an error.
	OutcomeAbsent OutcomeState = iota
	// OutcomeValue means the body decoded into a value.
	OutcomeValue
	// OutcomeError means the body was present but did not match the shape.
	OutcomeError
)

// String returns the state name
func (s OutcomeState) String() string {
	switch s {
	case OutcomeValue:
		return "value"
	case OutcomeError:
		return "error"
	default:
		return "absent"
	}
}

// Outcome is the result of decoding a response body into T. Exactly one of
// value, absence or error is set; the zero Outcome is absent.
type Outcome[T any] struct {
	state OutcomeState
	value *T
	err   error
}

// Absent returns an outcome holding neither value nor error.
func Absent[T any]() Outcome[T] { return Outcome[T]{state: OutcomeAbsent} }

// Success returns an outcome holding v.
func Success[T any](v *T) Outcome[T] {
	if v == nil {
		return Absent[T]()
	}
	return Outcome[T]{state: OutcomeValue, value: v}
}

// Failure returns an outcome holding err.
func Failure[T any](err error) Outcome[T] {
	if err == nil {
		return Absent[T]()
	}
	return Outcome[T]{state: OutcomeError, err: err}
}

// State reports which result the outcome holds.
func (o Outcome[T]) State() OutcomeState { return o.state }

// Value returns the decoded value and whether there is one.
func (o Outcome[T]) Value() (*T, bool) { return o.value, o.state == OutcomeValue }

// Err returns the decode error, if any.
func (o Outcome[T]) Err() error { return o.err }

// IsAbsent reports whether there was no data and no error.
func (o Outcome[T]) IsAbsent() bool { return o.state == OutcomeAbsent }

// Result flattens the outcome into Go's two-slot convention. Absence is
// (nil, nil): callers that need data must check the pointer as well as the
// error.
func (o Outcome[T]) Result() (*T, error) { return o.value, o.err }

// Decode parses raw into T.
//
// A nil raw slice is absence. A non-nil slice, even an empty one, must be a
// JSON document matching T's declared shape; otherwise the outcome carries a
// *DecodeError and no partially filled value.
func Decode[T any](raw []byte) Outcome[T] {
	if raw == nil {
		return Absent[T]()
	}
	if len(raw) == 0 {
		return Failure[T](&DecodeError{Err: errors.New("empty response body")})
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Failure[T](toDecodeError(err, raw, reflect.TypeOf((*T)(nil)).Elem()))
	}

	if err := validateShape(&v, raw); err != nil {
		return Failure[T](err)
	}

	return Success(&v)
}

func toDecodeError(err error, raw []byte, target reflect.Type) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// The library only knows the Go field name, so the position is
		// recovered by walking the generic document against target.
		var doc any
		if json.Unmarshal(raw, &doc) == nil {
			if decErr := locateMismatch(doc, target, ""); decErr != nil {
				decErr.Err = err
				return decErr
			}
		}
		return &DecodeError{
			Path:     typeErr.Field,
			Expected: expectedKind(typeErr.Type),
			Actual:   typeErr.Value,
			Err:      err,
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &DecodeError{Err: fmt.Errorf("malformed JSON at offset %d: %w", syntaxErr.Offset, err)}
	}

	return &DecodeError{Err: err}
}

var jsonUnmarshalerType = reflect.TypeOf((*interface{ UnmarshalJSON([]byte) error })(nil)).Elem()

// locateMismatch returns the first value in doc whose JSON kind cannot be
// stored in the Go type at the same position, or nil. Struct fields are
// visited in declaration order, list elements by index.
func locateMismatch(doc any, t reflect.Type, path string) *DecodeError {
	if doc == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(jsonUnmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		return nil
	case reflect.Struct:
		obj, ok := doc.(map[string]any)
		if !ok {
			return mismatch(path, t, doc)
		}
		return locateInStruct(obj, t, path)
	case reflect.Map:
		obj, ok := doc.(map[string]any)
		if !ok {
			return mismatch(path, t, doc)
		}
		keys := slices.Sorted(maps.Keys(obj))
		for _, k := range keys {
			if decErr := locateMismatch(obj[k], t.Elem(), joinPath(path, k)); decErr != nil {
				return decErr
			}
		}
		return nil
	case reflect.Slice, reflect.Array:
		list, ok := doc.([]any)
		if !ok {
			if _, isString := doc.(string); isString && t.Elem().Kind() == reflect.Uint8 {
				return nil
			}
			return mismatch(path, t, doc)
		}
		for i, elem := range list {
			if decErr := locateMismatch(elem, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); decErr != nil {
				return decErr
			}
		}
		return nil
	case reflect.String:
		if _, ok := doc.(string); !ok {
			return mismatch(path, t, doc)
		}
	case reflect.Bool:
		if _, ok := doc.(bool); !ok {
			return mismatch(path, t, doc)
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := doc.(float64); !ok {
			return mismatch(path, t, doc)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := doc.(float64)
		if !ok || n != math.Trunc(n) {
			return mismatch(path, t, doc)
		}
		if n < 0 && t.Kind() >= reflect.Uint {
			return mismatch(path, t, doc)
		}
	}
	return nil
}

func locateInStruct(obj map[string]any, t reflect.Type, path string) *DecodeError {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || (!field.IsExported() && !field.Anonymous) {
			continue
		}

		if field.Anonymous && name == "" {
			ft := field.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if decErr := locateInStruct(obj, ft, path); decErr != nil {
					return decErr
				}
				continue
			}
		}

		if name == "" {
			name = field.Name
		}
		key, value, ok := lookupKey(obj, name)
		if !ok {
			continue
		}
		if decErr := locateMismatch(value, field.Type, joinPath(path, key)); decErr != nil {
			return decErr
		}
	}
	return nil
}

// lookupKey finds name in obj, preferring an exact match and falling back to
// a case-insensitive one the way the decoder matches keys.
func lookupKey(obj map[string]any, name string) (string, any, bool) {
	if v, ok := obj[name]; ok {
		return name, v, true
	}
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if strings.EqualFold(k, name) {
			return k, obj[k], true
		}
	}
	return "", nil, false
}

func mismatch(path string, t reflect.Type, doc any) *DecodeError {
	return &DecodeError{Path: path, Expected: expectedKind(t), Actual: jsonKind(doc)}
}

// jsonKind names the JSON kind of a generically decoded value.
func jsonKind(doc any) string {
	switch doc.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", doc)
	}
}

// expectedKind names the JSON kind a Go type decodes from.
func expectedKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}
