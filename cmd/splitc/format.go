package main

import (
	"fmt"
	"strings"

	"splitc/internal/splitoutput"
)

// OutputFormat is the CLI's output format flag value.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats resp according to format.
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := splitoutput.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *splitoutput.Report:
		return formatReportHuman(v)
	default:
		return formatJSON(resp)
	}
}

func formatReportHuman(r *splitoutput.Report) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("split: %s\n", r.Stem))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Files: %d\n", len(r.Files)))
	for _, f := range r.Files {
		b.WriteString(fmt.Sprintf("  - %s (%d bytes)\n", f.Filename, len(f.Content)))
	}

	if len(r.Diagnostics) > 0 {
		b.WriteString("\nDiagnostics:\n")
		for _, d := range r.Diagnostics {
			marker := "!"
			if d.Severity == splitoutput.SeverityError {
				marker = "x"
			}
			b.WriteString(fmt.Sprintf("  %s [%s] %s", marker, d.Code, d.Message))
			if d.ItemName != "" {
				b.WriteString(fmt.Sprintf(" (%s)", d.ItemName))
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
