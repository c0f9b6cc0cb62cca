package agent

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// flexString decodes any JSON scalar as text. Objects, arrays and null
// decode as "". It never fails, so one odd field cannot sink a payload.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*f = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = ""
			return nil
		}
		*f = flexString(s)
	case '{', '[', 'n':
		*f = ""
	default:
		*f = flexString(b)
	}
	return nil
}

// flexInt accepts a positive whole number or a numeric string. Anything
// else decodes as 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	_ = s.UnmarshalJSON(b)
	n, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil || n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// flexOptions accepts a letter-to-text object or a plain list, which is
// lettered A, B, C and so on. Other shapes decode as no options.
type flexOptions map[string]string

func (f *flexOptions) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*f = nil
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '{':
		var m map[string]flexString
		if err := json.Unmarshal(b, &m); err != nil {
			return nil
		}
		out := make(flexOptions, len(m))
		for k, v := range m {
			out[strings.TrimSpace(k)] = string(v)
		}
		*f = out
	case '[':
		var list []flexString
		if err := json.Unmarshal(b, &list); err != nil || len(list) > 26 {
			return nil
		}
		out := make(flexOptions, len(list))
		for i, v := range list {
			out[string(rune('A'+i))] = string(v)
		}
		*f = out
	}
	return nil
}
