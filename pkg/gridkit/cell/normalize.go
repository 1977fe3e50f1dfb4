// Package cell converts raw cell values into display text.
package cell

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

const (
	Yes = "Yes"
	No  = "No"
)

// Normalizer renders cell values as text.
type Normalizer struct {
	// DateLayout formats time.Time cells. The time of day is never rendered.
	DateLayout string
}

var defaultNormalizer = &Normalizer{DateLayout: DateLayout("")}

// Default returns the en-US normalizer.
func Default() *Normalizer {
	return defaultNormalizer
}

// ForLocale returns a normalizer whose dates follow the given BCP 47 locale.
func ForLocale(locale string) *Normalizer {
	return &Normalizer{DateLayout: DateLayout(locale)}
}

// Normalize renders v with the default normalizer.
func Normalize(v any, t models.ColumnType) string {
	return defaultNormalizer.Normalize(v, t)
}

// Normalize renders v as text according to the column type t.
// Checkbox columns always yield Yes or No; image columns always yield "".
// A value that cannot be rendered yields "".
func (n *Normalizer) Normalize(v any, t models.ColumnType) string {
	s, err := n.Render(v, t)
	if err != nil {
		return ""
	}
	return s
}

// Render is Normalize with an error for values that cannot be rendered,
// such as maps or slices that contain themselves.
func (n *Normalizer) Render(v any, t models.ColumnType) (string, error) {
	if t.IsCheckbox() {
		return yesNo(Truthy(v)), nil
	}
	if t == models.ColumnImage {
		return "", nil
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(x), nil
	case bool:
		return yesNo(x), nil
	case time.Time:
		return n.date(x), nil
	case *time.Time:
		if x == nil {
			return "", nil
		}
		return n.date(*x), nil
	case float64:
		return formatFloat(x, 64), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case json.Number:
		return strings.TrimSpace(x.String()), nil
	case error:
		return strings.TrimSpace(x.Error()), nil
	case fmt.Stringer:
		return strings.TrimSpace(x.String()), nil
	}
	if isComposite(v) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("render %T: %w", v, err)
		}
		return string(b), nil
	}
	return strings.TrimSpace(fmt.Sprint(v)), nil
}

// isComposite reports whether v is a map, slice, array or struct, directly
// or behind pointers.
func isComposite(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

func (n *Normalizer) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	layout := n.DateLayout
	if layout == "" {
		layout = ISODateLayout
	}
	return t.Format(layout)
}

// Truthy coerces a checkbox value: booleans pass through, strings are true
// when equal to "true" (any case) or "1", numbers are true when non-zero.
// Everything else is false.
func Truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true") || x == "1"
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return Yes
	}
	return No
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// ParseNumber parses s as an int64 or float64 and returns s unchanged when it
// is neither.
func ParseNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
