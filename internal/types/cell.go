package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
	KindBool
)

func (k CellKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// CellValue is a single resolved cell. The zero value is an empty cell.
type CellValue struct {
	kind CellKind
	str  string
	num  float64
	b    bool
}

func Empty() CellValue { return CellValue{} }

func String(s string) CellValue { return CellValue{kind: KindString, str: s} }

func Number(f float64) CellValue { return CellValue{kind: KindNumber, num: f} }

func Bool(b bool) CellValue { return CellValue{kind: KindBool, b: b} }

// StringOrEmpty maps "" to an empty cell and anything else to a string cell.
func StringOrEmpty(s string) CellValue {
	if s == "" {
		return Empty()
	}
	return String(s)
}

func (c CellValue) Kind() CellKind { return c.kind }

func (c CellValue) IsEmpty() bool { return c.kind == KindEmpty }

// Float returns the numeric payload and whether the cell is a number.
func (c CellValue) Float() (float64, bool) { return c.num, c.kind == KindNumber }

// Boolean returns the boolean payload and whether the cell is a boolean.
func (c CellValue) Boolean() (bool, bool) { return c.b, c.kind == KindBool }

// String returns the display form of the cell: "" for empty cells, numbers in
// their shortest decimal form and booleans as true/false.
func (c CellValue) String() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return FormatNumber(c.num)
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// MarshalJSON writes empty cells as null and keeps numbers and booleans
// unquoted.
func (c CellValue) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindString:
		return MarshalString(c.str)
	case KindNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return []byte("null"), nil
		}
		return []byte(FormatNumber(c.num)), nil
	case KindBool:
		return json.Marshal(c.b)
	default:
		return []byte("null"), nil
	}
}

// FormatNumber renders f the way spreadsheet front ends print numbers: plain
// decimals between 1e-6 and 1e21, exponent form outside that range.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalString encodes s as a JSON string without escaping HTML characters.
func MarshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
