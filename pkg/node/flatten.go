package node

import "reflect"

// Flatten expands the raw input into a flat, left-to-right sequence of
// nodes. The input may be a single Node, nil, or sequences nested to any
// depth; nesting carries no meaning beyond ordering. Nil and boolean
// entries are discarded. Any other non-sequence value that does not
// implement Node is wrapped in Value so it still reaches the catch-all
// bucket. An absent input yields an empty sequence, not an error.
func Flatten(input any) []Node {
	return appendFlat(make([]Node, 0), input)
}

func appendFlat(dst []Node, v any) []Node {
	switch item := v.(type) {
	case nil:
		return dst
	case bool:
		return dst
	case Node:
		return append(dst, item)
	case []Node:
		for _, el := range item {
			dst = appendFlat(dst, el)
		}
		return dst
	case []any:
		for _, el := range item {
			dst = appendFlat(dst, el)
		}
		return dst
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			dst = appendFlat(dst, rv.Index(i).Interface())
		}
		return dst
	}
	return append(dst, Value{V: v})
}
