// Package frontmatter encodes and decodes the delimited metadata block
// carried at the top of agent-to-agent messages. The format is a deliberately
// small subset of what general markup libraries offer: one `key: value` line
// per field between `---` delimiter lines, followed by a blank line and the
// free-text body.
package frontmatter

import (
	"strings"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// Kind identifies the shape of a metadata value.
type Kind int

const (
	// KindScalar is a single-line string value.
	KindScalar Kind = iota
	// KindNull is an explicit null, rendered as the literal "null".
	KindNull
	// KindList is an ordered list of strings, rendered comma-space joined.
	KindList
)

// Value is a metadata value: a scalar string, an explicit null, or an
// ordered list of strings. The zero value is the empty scalar.
//
// Known limitation: a scalar whose text contains ", " is indistinguishable
// on the wire from a list and will decode as one. Callers that need to
// round-trip such values must not use this codec for them.
type Value struct {
	Kind  Kind
	Str   string   // set when Kind == KindScalar
	Items []string // set when Kind == KindList
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{Kind: KindScalar, Str: s}
}

// Null returns an explicit null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// List returns an ordered list value.
func List(items ...string) Value {
	return Value{Kind: KindList, Items: items}
}

// encode renders the value as it appears after "key: " on a metadata line.
func (v Value) encode() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindList:
		return strings.Join(v.Items, ", ")
	default:
		return v.Str
	}
}

// Field is one metadata entry. Metadata is kept as an ordered slice so that
// Render emits fields in the order the caller supplied them.
type Field struct {
	Key   string
	Value Value
}

// Envelope is a parsed message: ordered metadata plus the free-text body.
type Envelope struct {
	Meta []Field
	Body string
}

// Get returns the value for key and whether it was present.
func (e Envelope) Get(key string) (Value, bool) {
	for _, f := range e.Meta {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Render encodes metadata and body into a single document. Scalar values
// must not contain newlines; no escaping is performed. With no metadata the
// body is returned unchanged.
func Render(meta []Field, body string) string {
	if len(meta) == 0 {
		return body
	}

	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for _, f := range meta {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value.encode())
		b.WriteByte('\n')
	}
	b.WriteString(Delimiter)
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

// Parse decodes a document produced by Render, or any externally written
// text in the same shape. Parse never fails: text that does not begin with
// the opening delimiter (or whose block is never closed) is returned whole
// as the body with empty metadata.
func Parse(text string) Envelope {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || lines[0] != Delimiter {
		return Envelope{Body: text}
	}

	var meta []Field
	closing := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == Delimiter {
			closing = i
			break
		}
		key, raw, found := strings.Cut(lines[i], ": ")
		if !found {
			// Tolerate "key:" with no value.
			key, found = strings.CutSuffix(lines[i], ":")
			if !found {
				continue
			}
			raw = ""
		}
		meta = append(meta, Field{Key: key, Value: decodeValue(raw)})
	}
	if closing == -1 {
		// Unterminated block: treat the whole text as body.
		return Envelope{Body: text}
	}

	rest := lines[closing+1:]
	// Exactly one leading blank line separates metadata from body.
	if len(rest) > 0 && rest[0] == "" {
		rest = rest[1:]
	}
	return Envelope{Meta: meta, Body: strings.Join(rest, "\n")}
}

// decodeValue interprets the text after "key: " on a metadata line.
func decodeValue(raw string) Value {
	if strings.EqualFold(raw, "null") {
		return Null()
	}
	if strings.Contains(raw, ", ") {
		return List(strings.Split(raw, ", ")...)
	}
	return Scalar(raw)
}
