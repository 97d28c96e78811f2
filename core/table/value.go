package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the native scalar type of a cell.
type Kind uint8

const (
	// KindEmpty is a blank cell.
	KindEmpty Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
)

// String returns the kind name used in logs and JSON.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Value is a single cell. Values are comparable and can be used as map keys.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// Empty returns the blank value.
func Empty() Value {
	return Value{}
}

// Text returns a text value. The empty string is the blank value.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: KindText, Text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// IsEmpty reports whether the cell is blank.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// Equal reports exact, type-sensitive equality: Number(5) and Text("5") differ.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == other.Text
	case KindNumber:
		return v.Number == other.Number
	default:
		return true
	}
}

// String renders the value for display and delimited output.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes text as a string, numbers as numbers and blanks as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Empty()
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Text(strings.ToUpper(strconv.FormatBool(x)))
	default:
		return fmt.Errorf("cannot decode %s into a cell value", data)
	}
	return nil
}
