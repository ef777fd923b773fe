package resp

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// SerDeOpts carries per connection protocol settings, e.g. "resp_version".
type SerDeOpts map[string]string

var defaultSerdeOpts = SerDeOpts{"resp_version": "2"}

func SerializeSimpleString(m string, opts *SerDeOpts) (string, error) {
	return fmt.Sprintf("+%s\r\n", m), nil
}

func SerializeSimpleError(err error, opts *SerDeOpts) (string, error) {
	return fmt.Sprintf("-%s\r\n", err), nil
}

func SerializeInt(m int64, opts *SerDeOpts) (string, error) {
	return fmt.Sprintf(":%d\r\n", m), nil
}

func SerializeBulkString(m string, opts *SerDeOpts) (string, error) {
	return fmt.Sprintf("$%d\r\n%s\r\n", len(m), m), nil
}

func SerializeNull(opts *SerDeOpts) (string, error) {
	return "$-1\r\n", nil
}

func SerializeArray(m []any, opts *SerDeOpts) (string, error) {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("*%d\r\n", len(m)))
	for _, i := range m {
		result, err := Serialize(i, opts)
		if err != nil {
			return "", err
		}
		s.WriteString(result)
	}
	return s.String(), nil
}

func SerializeBulkError(m error, opts *SerDeOpts) (string, error) {
	return fmt.Sprintf("!%d\r\n%s\r\n", len(m.Error()), m), nil
}

func needsBulk(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsControl(r) || r == '\n' || r == '\r'
	})
}

// SerializeError writes a simple error unless the message cannot travel on
// a single line. RESP2 has no bulk errors, so those are sent as bulk strings.
func SerializeError(m error, opts *SerDeOpts) (string, error) {
	if !needsBulk(m.Error()) {
		return SerializeSimpleError(m, opts)
	}
	if (*opts)["resp_version"] == "3" {
		return SerializeBulkError(m, opts)
	}
	return SerializeBulkString(m.Error(), opts)
}

func SerializeString(m string, opts *SerDeOpts) (string, error) {
	if needsBulk(m) {
		return SerializeBulkString(m, opts)
	}
	return SerializeSimpleString(m, opts)
}

func Serialize(m any, opts *SerDeOpts) (string, error) {
	if opts == nil {
		opts = &defaultSerdeOpts
	}

	if m == nil {
		return SerializeNull(opts)
	}

	switch mt := m.(type) {
	case string:
		return SerializeString(mt, opts)
	case error:
		return SerializeError(mt, opts)
	}

	rv := reflect.ValueOf(m)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return SerializeInt(rv.Int(), opts)
	case reflect.Slice, reflect.Array:
		l := make([]any, rv.Len())
		for i := range l {
			l[i] = rv.Index(i).Interface()
		}
		return SerializeArray(l, opts)
	}
	return "", fmt.Errorf("failed to Serialize %#v", m)
}
