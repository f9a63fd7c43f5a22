package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter writes a chat report as indented JSON. Emojis and links are
// written verbatim rather than HTML-escaped.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter returns a JSON formatter. Quiet reduces the document to
// the headline numbers.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

func (f *JSONFormatter) Name() string { return "json" }

func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	var doc any = report
	if f.opts.Quiet {
		doc = report.Summary
	}
	return enc.Encode(doc)
}
