package normalize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRecord struct {
	ID   int
	Name string
}

func (r fakeRecord) Record() map[string]any {
	return map[string]any{"id": r.ID, "name": r.Name}
}

type fakeRecords []fakeRecord

func (rs fakeRecords) Records() []map[string]any {
	out := make([]map[string]any, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Record())
	}
	return out
}

type plainStruct struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

func TestPayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "bool", in: true, want: true},
		{name: "int becomes float", in: 7, want: float64(7)},
		{name: "json number", in: json.Number("2.5"), want: 2.5},
		{name: "opaque text", in: "hello", want: "hello"},
		{name: "json text", in: `{"id": 1, "tags": ["a"]}`, want: map[string]any{"id": float64(1), "tags": []any{"a"}}},
		{name: "json scalar text", in: "42", want: float64(42)},
		{
			name: "record text",
			in:   "Root(id=3, name='Pen', price=1.5, category='Office', in_stock=False)",
			want: map[string]any{"id": float64(3), "name": "Pen", "price": 1.5, "category": "Office", "in_stock": false},
		},
		{
			name: "record text with product prefix",
			in:   "result: Product(id=1, name='Ручка', price=12, category='Канцелярия', in_stock=True)",
			want: map[string]any{"id": float64(1), "name": "Ручка", "price": float64(12), "category": "Канцелярия", "in_stock": true},
		},
		{name: "record", in: fakeRecord{ID: 2, Name: "Cup"}, want: map[string]any{"id": float64(2), "name": "Cup"}},
		{
			name: "records",
			in:   fakeRecords{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
			want: []any{map[string]any{"id": float64(1), "name": "A"}, map[string]any{"id": float64(2), "name": "B"}},
		},
		{name: "root wrapper", in: map[string]any{"root": []any{1, "x"}}, want: []any{float64(1), "x"}},
		{name: "root with siblings stays", in: map[string]any{"root": 1, "other": 2}, want: map[string]any{"root": float64(1), "other": float64(2)}},
		{name: "nested json text in map", in: map[string]any{"data": `[1,2]`}, want: map[string]any{"data": []any{float64(1), float64(2)}}},
		{name: "raw message", in: json.RawMessage(`{"ok":true}`), want: map[string]any{"ok": true}},
		{name: "struct round trip", in: plainStruct{Count: 3, Label: "x"}, want: map[string]any{"count": float64(3), "label": "x"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, Payload(tc.in)); diff != "" {
				t.Fatalf("Payload() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPayloadUnencodableFallsBackToText(t *testing.T) {
	t.Parallel()

	if got, ok := Payload(make(chan int)).(string); !ok || got == "" {
		t.Fatalf("Payload(chan) = %#v, want non-empty text", got)
	}
}

func TestStructured(t *testing.T) {
	t.Parallel()

	if !Structured(map[string]any{}) || !Structured([]any{}) {
		t.Fatal("mappings and sequences must be structured")
	}
	if Structured("x") || Structured(float64(1)) || Structured(nil) {
		t.Fatal("scalars must not be structured")
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "abc", want: "abc"},
		{in: 66.67, want: "66.67"},
		{in: float64(180), want: "180"},
		{in: false, want: "false"},
	}
	for _, tc := range cases {
		tc := tc
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
