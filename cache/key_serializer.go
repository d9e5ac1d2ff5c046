package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "_"

// Operation namespaces. Every content key starts with one of these followed by
// KeySeparator, which keeps content keys apart from each other and from work ids.
const (
	NamespaceAnalysis = "analysis"
	NamespaceTOC      = "toc"
	NamespaceContent  = "content"
)

// noneSegment stands in for an empty Optional argument.
const noneSegment = "none"

// Optional marks a free-text argument that may be empty. Empty (or whitespace
// only) values serialize as "none"; the literal text "none" is escaped so the
// two never collide.
type Optional string

var segmentEscaper = strings.NewReplacer(`\`, `\\`, KeySeparator, `\`+KeySeparator)

// defaultKeySerializer joins the namespace and escaped argument segments with
// KeySeparator. Escaping keeps keys injective: a separator inside an argument can
// never be mistaken for a segment boundary.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from namespace and args.
func (s *defaultKeySerializer) SerializeKey(namespace string, args ...any) string {
	if len(args) == 0 {
		return namespace
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}

	return strings.Join(parts, KeySeparator)
}

// serializeValue handles individual argument serialization based on type.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case Optional:
		text := strings.TrimSpace(string(val))
		if text == "" {
			return noneSegment
		}
		if text == noneSegment {
			return `\` + noneSegment
		}
		return escapeSegment(text)
	case fmt.Stringer:
		return escapeSegment(val.String())
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	}

	if rv.Kind() == reflect.String {
		return escapeSegment(rv.String())
	}

	if s.isBasicType(rv.Kind()) {
		return escapeSegment(fmt.Sprintf("%v", v))
	}

	return escapeSegment(s.jsonFallback(v))
}

// isBasicType checks if a kind represents a basic Go type
func (s *defaultKeySerializer) isBasicType(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// jsonFallback provides JSON serialization as a last resort
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%T", v)
	}
	return string(data)
}

func escapeSegment(s string) string {
	return segmentEscaper.Replace(s)
}
