package campaign

// csv.go implements the permissive CSV line parser used by the ingestion
// pipeline and the preview flow.
//
// Real-world campaign exports are frequently malformed (unbalanced quotes,
// ragged field counts, stray blank lines), so the parser never rejects a
// line: it handles the standard "" escape, carries whatever quote state it
// ends in, and leaves padding of short rows to the caller.

import "strings"

// ParseLine splits one CSV line into its fields.
//
// It performs a single left-to-right scan honoring RFC4180-style quoting:
// a doubled quote inside a quoted field emits a literal quote, a comma
// outside quotes ends the field. Fields are trimmed of surrounding
// whitespace. Unbalanced quotes are not an error.
func ParseLine(line string) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				buf.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}

	fields = append(fields, strings.TrimSpace(buf.String()))
	return fields
}

// SplitLines splits raw CSV text into its non-blank lines.
//
// Lines that are empty or whitespace-only after trimming are discarded
// before parsing, so a stray blank line never produces a spurious record.
// The first returned line is always treated as the header row. A leading
// UTF-8 BOM is stripped.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// QuoteField returns the field quoted for CSV output if it contains a
// comma, quote, or newline; otherwise it is returned unchanged.
func QuoteField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// WriteLine joins fields into one CSV line with proper quoting, such that
// ParseLine(WriteLine(fields)) reproduces the original field values.
func WriteLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = QuoteField(f)
	}
	return strings.Join(quoted, ",")
}
