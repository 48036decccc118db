package frontmatter

import (
	"reflect"
	"testing"
)

func TestRender(t *testing.T) {
	meta := []Field{
		{Key: "from", Value: Scalar("planner")},
		{Key: "reply_to", Value: Null()},
		{Key: "tags", Value: List("review", "urgent")},
	}
	got := Render(meta, "Please look at the diff.")
	want := "---\n" +
		"from: planner\n" +
		"reply_to: null\n" +
		"tags: review, urgent\n" +
		"---\n\n" +
		"Please look at the diff."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNoMetadata(t *testing.T) {
	if got := Render(nil, "just a body"); got != "just a body" {
		t.Errorf("Render(nil, body) = %q, want body unchanged", got)
	}
}

func TestParseNoDelimiter(t *testing.T) {
	env := Parse("plain text\nwith lines")
	if len(env.Meta) != 0 {
		t.Errorf("Meta = %v, want empty", env.Meta)
	}
	if env.Body != "plain text\nwith lines" {
		t.Errorf("Body = %q, want full text", env.Body)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	text := "---\nfrom: planner\nno closing delimiter"
	env := Parse(text)
	if len(env.Meta) != 0 || env.Body != text {
		t.Errorf("Parse(%q) = %+v, want whole text as body", text, env)
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Value
	}{
		{"scalar", "branch: loom/fix-sync", Scalar("loom/fix-sync")},
		{"null lowercase", "reply_to: null", Null()},
		{"null mixed case", "reply_to: NULL", Null()},
		{"list", "tags: a, b, c", List("a", "b", "c")},
		{"empty value", "note: ", Scalar("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Parse("---\n" + tt.line + "\n---\n\nbody")
			if len(env.Meta) != 1 {
				t.Fatalf("Meta = %v, want one field", env.Meta)
			}
			if !reflect.DeepEqual(env.Meta[0].Value, tt.want) {
				t.Errorf("value = %+v, want %+v", env.Meta[0].Value, tt.want)
			}
		})
	}
}

func TestParseBodyLeadingBlankLine(t *testing.T) {
	// Exactly one leading blank line is removed; further blanks belong to
	// the body.
	env := Parse("---\nfrom: worker\n---\n\n\nbody starts here")
	if env.Body != "\nbody starts here" {
		t.Errorf("Body = %q, want one blank line kept", env.Body)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		meta []Field
		body string
	}{
		{
			"scalars and null",
			[]Field{
				{Key: "from", Value: Scalar("worker")},
				{Key: "bead", Value: Scalar("at-7f2k")},
				{Key: "reply_to", Value: Null()},
			},
			"Done. Branch pushed.",
		},
		{
			"list value",
			[]Field{{Key: "tags", Value: List("blocked", "needs-review")}},
			"Waiting on upstream.",
		},
		{
			"multiline body",
			[]Field{{Key: "from", Value: Scalar("planner")}},
			"First paragraph.\n\nSecond paragraph.\n",
		},
		{
			"no metadata",
			nil,
			"bare body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Parse(Render(tt.meta, tt.body))
			if !reflect.DeepEqual(env.Meta, tt.meta) {
				t.Errorf("meta = %+v, want %+v", env.Meta, tt.meta)
			}
			if env.Body != tt.body {
				t.Errorf("body = %q, want %q", env.Body, tt.body)
			}
		})
	}
}

// A scalar containing ", " decodes as a list. This pins the known ambiguity
// in the wire format rather than hiding it.
func TestScalarWithCommaSpaceDecodesAsList(t *testing.T) {
	env := Parse(Render([]Field{{Key: "subject", Value: Scalar("fix a, b and c")}}, ""))
	got, ok := env.Get("subject")
	if !ok {
		t.Fatal("subject missing after round trip")
	}
	if got.Kind != KindList {
		t.Errorf("Kind = %v, want KindList (documented ambiguity)", got.Kind)
	}
}

func TestEnvelopeGet(t *testing.T) {
	env := Parse("---\nfrom: planner\nto: worker\n---\n\nhi")
	if v, ok := env.Get("to"); !ok || v.Str != "worker" {
		t.Errorf("Get(to) = %+v, %v", v, ok)
	}
	if _, ok := env.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
}
