package views

import (
	"reflect"
	"strconv"
	"strings"
)

// formatPrice печатает число с пробелами между разрядами: 1 250 000.
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// limit обрезает слайс до n элементов. Не слайс возвращается как есть.
func limit(items any, n int) any {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice || v.Len() <= n {
		return items
	}
	return v.Slice(0, n).Interface()
}
