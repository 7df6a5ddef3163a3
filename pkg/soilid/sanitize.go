package soilid

import (
	"bytes"
	"encoding/json"
	"math"
)

// Sanitize replaces every NaN spelling the engine emits (float NaN, "nan",
// "NaN", "None") with nil, walking maps and slices recursively. It rewrites
// containers in place and returns the possibly replaced root.
func Sanitize(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(t)) {
			return nil
		}
	case string:
		switch t {
		case "nan", "NaN", "None":
			return nil
		}
	case map[string]any:
		for k, child := range t {
			t[k] = Sanitize(child)
		}
	case []any:
		for i, child := range t {
			t[i] = Sanitize(child)
		}
	}
	return v
}

// Decode unmarshals engine JSON into v, accepting the bare NaN, Infinity and
// -Infinity tokens the engine writes for missing numbers as null.
func Decode(data []byte, v any) error {
	return json.Unmarshal(nullNaN(data), v)
}

var bareTokens = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

func nullNaN(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		replaced := false
		for _, tok := range bareTokens {
			if bytes.HasPrefix(data[i:], tok) {
				out.WriteString("null")
				i += len(tok) - 1
				replaced = true
				break
			}
		}
		if !replaced {
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
