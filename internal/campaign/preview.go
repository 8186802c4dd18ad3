package campaign

// PreviewSampleRows caps how many raw rows a preview returns.
const PreviewSampleRows = 5

// Preview describes what an upload would look like before it is committed:
// the parsed headers, the auto-detected mapping proposal, and a small
// sample of raw rows for the mapping UI.
type Preview struct {
	Headers         []string     `json:"headers"`
	ProposedMapping FieldMapping `json:"proposedMapping"`
	DetectedCount   int          `json:"detectedCount"`
	SampleRows      []RawRow     `json:"sampleRows"`
	TotalRows       int          `json:"totalRows"`
}

// PreviewUpload analyzes raw CSV text without touching storage or
// encryption. It backs the interactive preview-before-commit flow; the
// proposed mapping may be fully overridden before Ingest.
func (s *Service) PreviewUpload(rawCSV string) (*Preview, error) {
	lines := SplitLines(rawCSV)
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	headers := ParseLine(lines[0])
	proposed, detected := AutoMap(headers)

	dataLines := lines[1:]
	sampleCount := len(dataLines)
	if sampleCount > PreviewSampleRows {
		sampleCount = PreviewSampleRows
	}

	samples := make([]RawRow, 0, sampleCount)
	for _, line := range dataLines[:sampleCount] {
		samples = append(samples, zipRow(headers, ParseLine(line)))
	}

	return &Preview{
		Headers:         headers,
		ProposedMapping: proposed,
		DetectedCount:   detected,
		SampleRows:      samples,
		TotalRows:       len(dataLines),
	}, nil
}
