package memory

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"boxfactory/internal/domain/filter"
)

// normalize reduces a column value to nil, string, float64, bool or time.Time
// so that values read from entities compare against values from filters.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	v = rv.Interface()

	switch x := v.(type) {
	case time.Time:
		return x
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

// compare orders two normalized values. Nil sorts first. ok is false
// when the values have different types.
func compare(a, b any) (int, bool) {
	a, b = normalize(a), normalize(b)
	switch {
	case a == nil && b == nil:
		return 0, true
	case a == nil:
		return -1, true
	case b == nil:
		return 1, true
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case float64:
		y, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func equal(a, b any) bool {
	c, ok := compare(a, b)
	return ok && c == 0
}

// matches evaluates one condition against a row's column map.
// Unknown columns never match.
func matches(row map[string]any, cond filter.Item) bool {
	val, ok := row[cond.Field]
	if !ok {
		return false
	}

	switch cond.Operator {
	case filter.Equal:
		return equal(val, cond.Value)
	case filter.NotEqual:
		return !equal(val, cond.Value)
	case filter.LessOrEqual:
		c, ok := compare(val, cond.Value)
		return ok && c <= 0
	case filter.GreaterOrEqual:
		c, ok := compare(val, cond.Value)
		return ok && c >= 0
	case filter.InList:
		list := reflect.ValueOf(cond.Value)
		if list.Kind() != reflect.Slice && list.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < list.Len(); i++ {
			if equal(val, list.Index(i).Interface()) {
				return true
			}
		}
		return false
	case filter.Contains:
		s, ok := normalize(val).(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(fmt.Sprint(cond.Value)))
	}
	return false
}
