// Package reply models a single store reply as a tagged union.
package reply

import "strconv"

// Kind is the variant tag of a Value.
type Kind uint8

// Reply variants.
const (
	Absent Kind = iota
	Integer
	Text
	List
	Status
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Integer:
		return "integer"
	case Text:
		return "text"
	case List:
		return "list"
	case Status:
		return "status"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one reply element. The zero value is Absent.
type Value struct {
	kind  Kind
	num   int64
	str   string
	items []Value
}

// Nil returns an Absent value.
func Nil() Value { return Value{} }

// Int returns an Integer value.
func Int(n int64) Value { return Value{kind: Integer, num: n} }

// TextOf returns a Text (bulk string) value.
func TextOf(s string) Value { return Value{kind: Text, str: s} }

// StatusOf returns a Status (simple string) value.
func StatusOf(s string) Value { return Value{kind: Status, str: s} }

// ListOf returns a List value holding items.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: List, items: items}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the integer and true for Integer values.
func (v Value) Int64() (int64, bool) {
	if v.kind != Integer {
		return 0, false
	}
	return v.num, true
}

// Str returns the string and true for Text and Status values.
func (v Value) Str() (string, bool) {
	if v.kind != Text && v.kind != Status {
		return "", false
	}
	return v.str, true
}

// Items returns the elements and true for List values.
func (v Value) Items() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return v.items, true
}

// Len returns the number of elements of a List, 0 otherwise.
func (v Value) Len() int { return len(v.items) }

// At returns the element at i, or Absent when v is not a List or i is out of range.
func (v Value) At(i int) Value {
	if v.kind != List || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case Absent:
		return "(nil)"
	case Integer:
		return strconv.FormatInt(v.num, 10)
	case Text, Status:
		return v.str
	case List:
		return "(list of " + strconv.Itoa(len(v.items)) + ")"
	default:
		return v.kind.String()
	}
}
