// Package analyzer formats property values with source attribution,
// extracts binding metadata, captures binding errors off the framework's
// diagnostic trace, and tracks property-watch bookkeeping.
package analyzer

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
)

// maxValueLen is the truncation point for stringified property values.
const maxValueLen = 200

const ellipsis = "..."

// FormatValue renders a raw adapter value as its normalized wire string:
// strings verbatim, booleans as
// true/false, numbers as decimal, composite shapes as "(l,t,r,b)",
// colors as "#AARRGGBB", everything else via its canonical string form,
// truncated at 200 characters. typeName is used only for the
// "[<TypeName>]" fallback when the canonical form carries no information
// beyond the type itself.
func FormatValue(raw any, typeName string) string {
	var s string
	switch v := raw.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case bool:
		s = strconv.FormatBool(v)
	case adapter.Thickness:
		s = formatThickness(v)
	case *adapter.Thickness:
		if v == nil {
			s = ""
		} else {
			s = formatThickness(*v)
		}
	case adapter.Color:
		s = formatColor(v)
	case fmt.Stringer:
		s = v.String()
	default:
		if isNumeric(v) {
			s = formatNumeric(v)
		} else {
			s = fmt.Sprintf("%v", v)
		}
	}

	if s == "" || looksLikeBareTypeName(s, typeName) {
		return fmt.Sprintf("[%s]", typeName)
	}
	return truncate(s, maxValueLen)
}

func formatThickness(t adapter.Thickness) string {
	return fmt.Sprintf("(%s,%s,%s,%s)", trimFloat(t.L), trimFloat(t.T), trimFloat(t.R), trimFloat(t.B))
}

func formatColor(c adapter.Color) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

func isNumeric(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func formatNumeric(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return trimFloat(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	default:
		return strconv.FormatUint(rv.Uint(), 10)
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// looksLikeBareTypeName reports whether s, trimmed, is exactly typeName or
// "<nil>"; it is always false when typeName is empty. Other renderings,
// such as a struct's "{0 0 0}" or a package-qualified type name, are not
// detected.
func looksLikeBareTypeName(s, typeName string) bool {
	if typeName == "" {
		return false
	}
	trimmed := strings.TrimSpace(s)
	return trimmed == typeName || trimmed == "<nil>"
}

// truncate shortens s to at most n characters, appending an ellipsis
// marker when it does.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + ellipsis
}
