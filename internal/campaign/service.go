package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Service is the entry point for all campaign operations. It orchestrates
// the pure parsing/mapping helpers with the injected Store and Cipher
// collaborators; it holds no mutable state of its own, so concurrent
// requests may share one instance.
type Service struct {
	store  Store
	cipher Cipher
}

// NewService creates a Service backed by the given collaborators.
func NewService(store Store, cipher Cipher) *Service {
	return &Service{store: store, cipher: cipher}
}

// Ingest runs the full upload pipeline: validate the mapping, parse the CSV
// text, normalize rows, derive timezones, encrypt, and persist. Either the
// complete campaign is written or nothing is; validation errors surface
// before any persistence call is made.
func (s *Service) Ingest(ctx context.Context, rawCSV string, mapping FieldMapping, filename string) (*Summary, error) {
	mapping = mapping.clean()
	for _, f := range RequiredFields {
		if mapping[f] == "" {
			return nil, &MissingRequiredFieldError{Field: f}
		}
	}

	lines := SplitLines(rawCSV)
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	rawHeaders := ParseLine(lines[0])

	rows := make([]NormalizedRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		raw := zipRow(rawHeaders, ParseLine(line))
		rows = append(rows, normalizeRow(raw, mapping))
	}

	data := CampaignData{
		Headers:       dataHeaders(mapping),
		Rows:          rows,
		FieldMappings: withTimeZone(mapping),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("serialize campaign data: %w", err)
	}

	ciphertext, err := s.cipher.Encrypt(string(payload))
	if err != nil {
		return nil, fmt.Errorf("encrypt campaign data: %w", err)
	}

	created, err := s.store.CreateCampaign(ctx, CreateCampaignParams{
		Name:          campaignName(filename),
		EncryptedData: ciphertext,
		FieldMappings: data.FieldMappings,
		RecordCount:   len(rows),
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	return summaryOf(created), nil
}

// Campaign retrieves and decrypts one campaign. Decrypt or decode failures
// surface as *CorruptedCampaignError; they affect only this campaign and
// are not retried.
func (s *Service) Campaign(ctx context.Context, id string) (*Detail, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}

	plaintext, err := s.cipher.Decrypt(c.EncryptedData)
	if err != nil {
		return nil, &CorruptedCampaignError{ID: c.ID, Err: err}
	}

	var data CampaignData
	if err := json.Unmarshal([]byte(plaintext), &data); err != nil {
		return nil, &CorruptedCampaignError{ID: c.ID, Err: err}
	}

	return &Detail{Summary: *summaryOf(c), Data: data}, nil
}

// Campaigns lists all campaigns as plaintext summaries. No decryption is
// performed on this path.
func (s *Service) Campaigns(ctx context.Context) ([]Summary, error) {
	list, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	summaries := make([]Summary, 0, len(list))
	for i := range list {
		summaries = append(summaries, *summaryOf(&list[i]))
	}
	return summaries, nil
}

// DeleteCampaign removes a campaign permanently.
func (s *Service) DeleteCampaign(ctx context.Context, id string) error {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return fmt.Errorf("get campaign: %w", err)
	}
	if c == nil {
		return ErrCampaignNotFound
	}
	if err := s.store.DeleteCampaign(ctx, id); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

// ExportCSV decrypts a campaign and re-serializes it as CSV text with
// proper quoting. The returned name is the campaign name, for use as a
// download filename.
func (s *Service) ExportCSV(ctx context.Context, id string) (name, csvText string, err error) {
	detail, err := s.Campaign(ctx, id)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	header := make([]string, len(detail.Data.Headers))
	for i, f := range detail.Data.Headers {
		header[i] = string(f)
	}
	b.WriteString(WriteLine(header))
	b.WriteByte('\n')

	for _, row := range detail.Data.Rows {
		values := make([]string, len(detail.Data.Headers))
		for i, f := range detail.Data.Headers {
			values[i] = row[f]
		}
		b.WriteString(WriteLine(values))
		b.WriteByte('\n')
	}

	return detail.Name, b.String(), nil
}

// zipRow pairs header names with parsed values positionally. Header indexes
// beyond the parsed value count map to "" — short rows are zero-padded, not
// rejected.
func zipRow(headers, values []string) RawRow {
	row := make(RawRow, len(headers))
	for i, h := range headers {
		if i < len(values) {
			row[h] = values[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

// normalizeRow resolves each mapping entry against the raw row and appends
// the derived Time Zone value.
func normalizeRow(raw RawRow, mapping FieldMapping) NormalizedRow {
	row := make(NormalizedRow, len(mapping)+1)
	for field, header := range mapping {
		row[field] = raw[header]
	}
	row[FieldTimeZone] = DeriveTimezone(row[FieldState], row[FieldCountry])
	return row
}

// dataHeaders returns the mapped canonical fields in enumeration order,
// with Time Zone appended last.
func dataHeaders(mapping FieldMapping) []Field {
	headers := make([]Field, 0, len(mapping)+1)
	for _, f := range MappableFields {
		if _, ok := mapping[f]; ok {
			headers = append(headers, f)
		}
	}
	return append(headers, FieldTimeZone)
}

// withTimeZone copies the mapping and adds the Time Zone self-mapping, so
// len(headers) == len(fieldMappings) always holds in the stored payload.
func withTimeZone(mapping FieldMapping) FieldMapping {
	out := make(FieldMapping, len(mapping)+1)
	for f, h := range mapping {
		out[f] = h
	}
	out[FieldTimeZone] = string(FieldTimeZone)
	return out
}

// campaignName derives the campaign name from the uploaded filename by
// stripping a trailing .csv extension (any casing).
func campaignName(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return filename[:len(filename)-len(".csv")]
	}
	return filename
}

func summaryOf(c *Campaign) *Summary {
	return &Summary{
		ID:            c.ID,
		Name:          c.Name,
		RecordCount:   c.RecordCount,
		FieldMappings: c.FieldMappings,
		CreatedAt:     c.CreatedAt,
	}
}
