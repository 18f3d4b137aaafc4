package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	"github.com/tanpawarit/catalog-agent/agent/normalize"
)

const Unrecognized = "request not recognized"

// Render formats plain data as indented JSON with non-ASCII text and HTML
// characters left as is.
func Render(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// StructuredAnswer wraps a mapping or sequence.
func StructuredAnswer(data any) contractx.Answer {
	return contractx.Answer{Text: Render(data), Data: data}
}

func answerFor(payload any) contractx.Answer {
	if normalize.Structured(payload) {
		return StructuredAnswer(payload)
	}
	return contractx.Answer{Text: normalize.Text(payload)}
}
