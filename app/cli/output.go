package cli

import (
	"fmt"
	"io"
	"strings"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	"github.com/tanpawarit/catalog-agent/agent/router"
	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

func (f *OutputFormat) String() string {
	if *f == "" {
		return string(OutputFormatJSON)
	}
	return string(*f)
}

func (f *OutputFormat) Set(value string) error {
	switch OutputFormat(strings.ToLower(value)) {
	case OutputFormatJSON:
		*f = OutputFormatJSON
	case OutputFormatYAML, "yml":
		*f = OutputFormatYAML
	default:
		return fmt.Errorf("invalid output format %q: must be json or yaml", value)
	}
	return nil
}

func (f *OutputFormat) Type() string {
	return "format"
}

func render(w io.Writer, v any, format OutputFormat) error {
	switch format {
	case OutputFormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintln(w, router.Render(v))
		return err
	}
}

// renderAnswer prints structured answers in the chosen format and text
// answers verbatim.
func renderAnswer(w io.Writer, answer contractx.Answer, format OutputFormat) error {
	if answer.Structured() && format == OutputFormatYAML {
		return render(w, answer.Data, format)
	}
	_, err := fmt.Fprintln(w, answer.Text)
	return err
}
