package github

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	return [...]string{"null", "object", "array", "string", "number", "bool"}[k]
}

// Value is an opaque JSON document as returned by the API. The raw bytes are kept exactly as
// received; accessors decode lazily and never impose a schema.
type Value struct {
	raw json.RawMessage
}

// ParseValue validates data as JSON. Empty input yields a null Value.
func ParseValue(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, nil
	}
	if !json.Valid(trimmed) {
		return Value{}, fmt.Errorf("invalid JSON document (%d bytes)", len(trimmed))
	}
	return Value{raw: json.RawMessage(trimmed)}, nil
}

func MustParseValue(data string) Value {
	v, err := ParseValue([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Kind() Kind {
	if len(v.raw) == 0 {
		return KindNull
	}
	switch v.raw[0] {
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	case 'n':
		return KindNull
	default:
		return KindNumber
	}
}

func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Raw returns the document bytes unmodified.
func (v Value) Raw() json.RawMessage {
	if len(v.raw) == 0 {
		return json.RawMessage("null")
	}
	return v.raw
}

// Field returns the member name of an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind() != KindObject {
		return Value{}, false
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(v.raw, &members); err != nil {
		return Value{}, false
	}
	member, ok := members[name]
	if !ok {
		return Value{}, false
	}
	return Value{raw: member}, true
}

// Items returns the elements of an array value.
func (v Value) Items() ([]Value, bool) {
	if v.Kind() != KindArray {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(v.raw, &elems); err != nil {
		return nil, false
	}
	items := make([]Value, len(elems))
	for i, e := range elems {
		items[i] = Value{raw: e}
	}
	return items, true
}

// Path follows nested object members, e.g. Path("commit", "message").
func (v Value) Path(names ...string) (Value, bool) {
	cur := v
	for _, name := range names {
		next, ok := cur.Field(name)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

func (v Value) Str() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text renders scalars for display: strings unquoted, everything else as raw JSON.
func (v Value) Text() string {
	if s, ok := v.Str(); ok {
		return s
	}
	return string(v.Raw())
}

func (v Value) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
