// Package envstruct fills configuration structs from environment variables.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("invalid value")
)

//nolint:gochecknoglobals // reflected types compared against the fields.
var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// Populate sets every field of the struct pointed to by v that carries an `env:"NAME"` tag.
//
// The value comes from lookupEnv, which has the signature of [os.LookupEnv], and falls back to the `envDefault` tag.
// A field with neither yields ErrEnvNotSet. All fields are processed and the errors are joined.
//
// Supported field types are string, int, bool, float64, time.Duration in [time.ParseDuration] format and time.Time
// as a YYYY-MM-DD date. An empty date leaves the zero time.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: want a pointer to a struct, got %T", ErrInvalidValue, v)
	}
	target := ptr.Elem()
	targetType := target.Type()

	var errs []error
	for i := range targetType.NumField() {
		field := targetType.Field(i)
		name, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		value := target.Field(i)
		if !value.CanSet() {
			errs = append(errs, fmt.Errorf("%w: unexported field %s", ErrInvalidValue, field.Name))
			continue
		}
		raw, ok := lookupEnv(name)
		if !ok {
			if raw, ok = field.Tag.Lookup("envDefault"); !ok {
				errs = append(errs, fmt.Errorf("%w: %s", ErrEnvNotSet, name))
				continue
			}
		}
		if err := set(value, raw); err != nil {
			errs = append(errs, fmt.Errorf("field %s from %s: %w", field.Name, name, err))
		}
	}
	return errors.Join(errs...)
}

func set(field reflect.Value, raw string) error {
	switch field.Type() {
	case durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: duration %q: %w", ErrInvalidValue, raw, err)
		}
		field.SetInt(int64(d))
		return nil
	case timeType:
		var date time.Time
		if raw != "" {
			var err error
			if date, err = time.Parse(time.DateOnly, raw); err != nil {
				return fmt.Errorf("%w: date %q: %w", ErrInvalidValue, raw, err)
			}
		}
		field.Set(reflect.ValueOf(date))
		return nil
	}

	switch field.Kind() { //nolint:exhaustive // the remaining kinds are rejected below.
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: int %q: %w", ErrInvalidValue, raw, err)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: bool %q: %w", ErrInvalidValue, raw, err)
		}
		field.SetBool(b)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: float %q: %w", ErrInvalidValue, raw, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%w: unsupported type %s", ErrInvalidValue, field.Type())
	}
	return nil
}
