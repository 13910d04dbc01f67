package remote

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// flexString accepts a JSON string, number or null. Document ids arrive
// either way depending on the source system. Numbers are rendered in their
// shortest decimal form, so 1001, 1001.0 and 1.001e3 all read as "1001".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("cannot decode %s into a string: %w", data, err)
		}
		*s = flexString(strconv.FormatFloat(v, 'f', -1, 64))
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = flexString(data)
	default:
		return fmt.Errorf("cannot decode %s into a string", data)
	}
	return nil
}

// flexWeight is a headcount. Anything that does not start with an integer
// (missing, null, "abc", objects) decodes to 0 and is later read as 1.
type flexWeight int

func (w *flexWeight) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		data = []byte(v)
	}
	n, _ := leadingInt(string(data))
	*w = flexWeight(n)
	return nil
}

// leadingInt parses the integer prefix of s the way a lenient form parser
// does: "3", " 3 personas" and "3.9" all give 3.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeCollection decodes either a bare JSON array or an object wrapping
// the array in "data". An object without "data" is an empty collection.
func decodeCollection(body []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty response body")
	}

	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		data = []byte("[]")
	}
	return json.Unmarshal(data, out)
}
