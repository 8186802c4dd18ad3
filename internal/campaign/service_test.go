package campaign

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubStore is an in-package Store fake that records calls.
type stubStore struct {
	campaigns   map[string]Campaign
	notes       map[string]Note
	createCalls int
	nextID      int
}

func newStubStore() *stubStore {
	return &stubStore{
		campaigns: make(map[string]Campaign),
		notes:     make(map[string]Note),
	}
}

func (s *stubStore) CreateCampaign(_ context.Context, p CreateCampaignParams) (*Campaign, error) {
	s.createCalls++
	s.nextID++
	c := Campaign{
		ID:            "campaign-" + string(rune('0'+s.nextID)),
		Name:          p.Name,
		EncryptedData: p.EncryptedData,
		FieldMappings: p.FieldMappings,
		RecordCount:   p.RecordCount,
		CreatedAt:     time.Now(),
	}
	s.campaigns[c.ID] = c
	return &c, nil
}

func (s *stubStore) GetCampaign(_ context.Context, id string) (*Campaign, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *stubStore) ListCampaigns(_ context.Context) ([]Campaign, error) {
	var list []Campaign
	for _, c := range s.campaigns {
		list = append(list, c)
	}
	return list, nil
}

func (s *stubStore) DeleteCampaign(_ context.Context, id string) error {
	delete(s.campaigns, id)
	return nil
}

func (s *stubStore) CreateNote(_ context.Context, p CreateNoteParams) (*Note, error) {
	s.nextID++
	n := Note{
		ID:            "note-" + string(rune('0'+s.nextID)),
		Title:         p.Title,
		EncryptedBody: p.EncryptedBody,
		CreatedAt:     time.Now(),
	}
	s.notes[n.ID] = n
	return &n, nil
}

func (s *stubStore) GetNote(_ context.Context, id string) (*Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (s *stubStore) ListNotes(_ context.Context) ([]Note, error) {
	var list []Note
	for _, n := range s.notes {
		list = append(list, n)
	}
	return list, nil
}

func (s *stubStore) DeleteNote(_ context.Context, id string) error {
	delete(s.notes, id)
	return nil
}

// stubCipher is a reversible fake that fails on tampered ciphertext, like
// the real AEAD does.
type stubCipher struct{}

func (stubCipher) Encrypt(plaintext string) (string, error) {
	return "enc:" + base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

func (stubCipher) Decrypt(ciphertext string) (string, error) {
	raw, ok := strings.CutPrefix(ciphertext, "enc:")
	if !ok {
		return "", errors.New("invalid ciphertext")
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.New("invalid ciphertext")
	}
	return string(decoded), nil
}

func newTestService() (*Service, *stubStore) {
	store := newStubStore()
	return NewService(store, stubCipher{}), store
}

// fullMapping maps the end-to-end scenario's four headers, with Full Name
// backing both name fields.
func fullMapping() FieldMapping {
	return FieldMapping{
		FieldFirstName: "Full Name",
		FieldLastName:  "Full Name",
		FieldEmail:     "Email Address",
		FieldState:     "State",
		FieldCountry:   "Country",
	}
}

const sampleCSV = "Full Name,Email Address,State,Country\nJane Doe,jane@x.com,CA,USA\n"

// ============================================================================
// Ingest Tests
// ============================================================================

func TestIngest_MissingRequiredField(t *testing.T) {
	svc, store := newTestService()

	// Last Name unmapped
	mapping := FieldMapping{
		FieldFirstName: "Full Name",
		FieldEmail:     "Email Address",
		FieldState:     "State",
		FieldCountry:   "Country",
	}

	_, err := svc.Ingest(context.Background(), sampleCSV, mapping, "contacts.csv")

	var missing *MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Ingest error = %v, want MissingRequiredFieldError", err)
	}
	if missing.Field != FieldLastName {
		t.Errorf("missing field = %q, want %q", missing.Field, FieldLastName)
	}
	if store.createCalls != 0 {
		t.Errorf("CreateCampaign called %d times, want 0", store.createCalls)
	}
}

func TestIngest_EmptyFile(t *testing.T) {
	svc, store := newTestService()

	for _, text := range []string{"", "\n\n", "   \n\t\n"} {
		_, err := svc.Ingest(context.Background(), text, fullMapping(), "empty.csv")
		if !errors.Is(err, ErrEmptyFile) {
			t.Errorf("Ingest(%q) error = %v, want ErrEmptyFile", text, err)
		}
	}
	if store.createCalls != 0 {
		t.Errorf("CreateCampaign called %d times, want 0", store.createCalls)
	}
}

func TestIngest_EndToEnd(t *testing.T) {
	svc, _ := newTestService()

	summary, err := svc.Ingest(context.Background(), sampleCSV, fullMapping(), "Q3 Outreach.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if summary.Name != "Q3 Outreach" {
		t.Errorf("Name = %q, want %q", summary.Name, "Q3 Outreach")
	}
	if summary.RecordCount != 1 {
		t.Errorf("RecordCount = %d, want 1", summary.RecordCount)
	}
	if summary.FieldMappings[FieldTimeZone] != string(FieldTimeZone) {
		t.Errorf("Time Zone self-mapping missing: %v", summary.FieldMappings)
	}

	// Read back through the decrypt path
	detail, err := svc.Campaign(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("Campaign() error = %v", err)
	}

	wantRow := NormalizedRow{
		FieldFirstName: "Jane Doe",
		FieldLastName:  "Jane Doe",
		FieldEmail:     "jane@x.com",
		FieldState:     "CA",
		FieldCountry:   "USA",
		FieldTimeZone:  "PST",
	}
	if len(detail.Data.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(detail.Data.Rows))
	}
	row := detail.Data.Rows[0]
	if len(row) != len(wantRow) {
		t.Errorf("row has %d fields, want %d: %v", len(row), len(wantRow), row)
	}
	for f, want := range wantRow {
		if row[f] != want {
			t.Errorf("row[%s] = %q, want %q", f, row[f], want)
		}
	}

	// Headers: mapped fields in enumeration order, Time Zone last
	wantHeaders := []Field{FieldFirstName, FieldLastName, FieldEmail, FieldState, FieldCountry, FieldTimeZone}
	if len(detail.Data.Headers) != len(wantHeaders) {
		t.Fatalf("headers = %v, want %v", detail.Data.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if detail.Data.Headers[i] != h {
			t.Errorf("headers[%d] = %q, want %q", i, detail.Data.Headers[i], h)
		}
	}
	if len(detail.Data.Headers) != len(detail.Data.FieldMappings) {
		t.Errorf("len(headers) = %d, len(fieldMappings) = %d, want equal",
			len(detail.Data.Headers), len(detail.Data.FieldMappings))
	}
}

func TestIngest_RecordCountSkipsBlankLines(t *testing.T) {
	svc, _ := newTestService()

	text := "Full Name,Email Address,State,Country\n" +
		"Jane Doe,jane@x.com,CA,USA\n" +
		"\n" +
		"   \n" +
		"John Roe,john@x.com,TX,USA\n" +
		"\n"

	summary, err := svc.Ingest(context.Background(), text, fullMapping(), "list.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if summary.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", summary.RecordCount)
	}

	detail, err := svc.Campaign(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("Campaign() error = %v", err)
	}
	if len(detail.Data.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(detail.Data.Rows))
	}
}

func TestIngest_ShortRowZeroPadded(t *testing.T) {
	svc, _ := newTestService()

	// Second line produces only two fields; State and Country are padded.
	text := "Full Name,Email Address,State,Country\nJane Doe,jane@x.com\n"

	summary, err := svc.Ingest(context.Background(), text, fullMapping(), "short.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	detail, err := svc.Campaign(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("Campaign() error = %v", err)
	}

	row := detail.Data.Rows[0]
	if row[FieldState] != "" || row[FieldCountry] != "" {
		t.Errorf("padded fields = (%q, %q), want empty", row[FieldState], row[FieldCountry])
	}
	if row[FieldTimeZone] != "NA" {
		t.Errorf("Time Zone = %q, want NA for empty state/country", row[FieldTimeZone])
	}
}

func TestIngest_NonCanonicalMappingKeysDropped(t *testing.T) {
	svc, _ := newTestService()

	// The mapping arrives as caller-supplied JSON, so arbitrary keys are
	// reachable. Only canonical fields may survive into the payload.
	mapping := fullMapping()
	mapping[Field("Bogus Field")] = "Full Name"

	summary, err := svc.Ingest(context.Background(), sampleCSV, mapping, "x.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if _, ok := summary.FieldMappings[Field("Bogus Field")]; ok {
		t.Errorf("non-canonical key survived into field mappings: %v", summary.FieldMappings)
	}

	detail, err := svc.Campaign(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("Campaign() error = %v", err)
	}
	if len(detail.Data.Headers) != len(detail.Data.FieldMappings) {
		t.Errorf("len(headers) = %d, len(fieldMappings) = %d, want equal",
			len(detail.Data.Headers), len(detail.Data.FieldMappings))
	}
	if _, ok := detail.Data.Rows[0][Field("Bogus Field")]; ok {
		t.Errorf("non-canonical key persisted in row: %v", detail.Data.Rows[0])
	}
}

func TestIngest_RowOrderPreserved(t *testing.T) {
	svc, _ := newTestService()

	text := "Full Name,Email Address,State,Country\n" +
		"A,a@x.com,CA,USA\n" +
		"B,b@x.com,NY,USA\n" +
		"C,c@x.com,TX,USA\n"

	summary, err := svc.Ingest(context.Background(), text, fullMapping(), "order.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	detail, err := svc.Campaign(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("Campaign() error = %v", err)
	}

	want := []string{"A", "B", "C"}
	for i, name := range want {
		if detail.Data.Rows[i][FieldFirstName] != name {
			t.Errorf("rows[%d] first name = %q, want %q", i, detail.Data.Rows[i][FieldFirstName], name)
		}
	}
}

func TestCampaignName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"contacts.csv", "contacts"},
		{"Contacts.CSV", "Contacts"},
		{"no-extension", "no-extension"},
		{"archive.csv.csv", "archive.csv"},
		{"data.txt", "data.txt"},
	}

	for _, tt := range tests {
		if got := campaignName(tt.filename); got != tt.want {
			t.Errorf("campaignName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

// ============================================================================
// Read Path Tests
// ============================================================================

func TestCampaign_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Campaign(context.Background(), "missing")
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("Campaign() error = %v, want ErrCampaignNotFound", err)
	}
}

func TestCampaign_CorruptedPayload(t *testing.T) {
	svc, store := newTestService()

	summary, err := svc.Ingest(context.Background(), sampleCSV, fullMapping(), "x.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// Tamper with the stored ciphertext
	c := store.campaigns[summary.ID]
	c.EncryptedData = "garbage"
	store.campaigns[summary.ID] = c

	_, err = svc.Campaign(context.Background(), summary.ID)
	var corrupted *CorruptedCampaignError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Campaign() error = %v, want CorruptedCampaignError", err)
	}
	if corrupted.ID != summary.ID {
		t.Errorf("corrupted.ID = %q, want %q", corrupted.ID, summary.ID)
	}
}

func TestCampaigns_ListWithoutDecryption(t *testing.T) {
	svc, _ := newTestService()

	for _, name := range []string{"a.csv", "b.csv"} {
		if _, err := svc.Ingest(context.Background(), sampleCSV, fullMapping(), name); err != nil {
			t.Fatalf("Ingest(%q) error = %v", name, err)
		}
	}

	summaries, err := svc.Campaigns(context.Background())
	if err != nil {
		t.Fatalf("Campaigns() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("len(summaries) = %d, want 2", len(summaries))
	}
	for _, s := range summaries {
		if s.RecordCount != 1 {
			t.Errorf("summary %q RecordCount = %d, want 1", s.Name, s.RecordCount)
		}
	}
}

func TestDeleteCampaign(t *testing.T) {
	svc, _ := newTestService()

	summary, err := svc.Ingest(context.Background(), sampleCSV, fullMapping(), "x.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if err := svc.DeleteCampaign(context.Background(), summary.ID); err != nil {
		t.Fatalf("DeleteCampaign() error = %v", err)
	}
	if err := svc.DeleteCampaign(context.Background(), summary.ID); !errors.Is(err, ErrCampaignNotFound) {
		t.Errorf("second delete error = %v, want ErrCampaignNotFound", err)
	}
}

// ============================================================================
// Export Tests
// ============================================================================

func TestExportCSV_RoundTrip(t *testing.T) {
	svc, _ := newTestService()

	text := "Full Name,Email Address,State,Country\n" +
		"\"Doe, Jane\",jane@x.com,CA,USA\n"

	summary, err := svc.Ingest(context.Background(), text, fullMapping(), "export.csv")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	name, out, err := svc.ExportCSV(context.Background(), summary.ID)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if name != "export" {
		t.Errorf("name = %q, want %q", name, "export")
	}

	lines := SplitLines(out)
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want 2:\n%s", len(lines), out)
	}

	header := ParseLine(lines[0])
	wantHeader := []string{"First Name", "Last Name", "Email", "State", "Country", "Time Zone"}
	for i, h := range wantHeader {
		if header[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := ParseLine(lines[1])
	want := []string{"Doe, Jane", "Doe, Jane", "jane@x.com", "CA", "USA", "PST"}
	for i, v := range want {
		if row[i] != v {
			t.Errorf("row[%d] = %q, want %q", i, row[i], v)
		}
	}
}

// ============================================================================
// Preview Tests
// ============================================================================

func TestPreviewUpload(t *testing.T) {
	svc, _ := newTestService()

	preview, err := svc.PreviewUpload(sampleCSV)
	if err != nil {
		t.Fatalf("PreviewUpload() error = %v", err)
	}

	wantHeaders := []string{"Full Name", "Email Address", "State", "Country"}
	for i, h := range wantHeaders {
		if preview.Headers[i] != h {
			t.Errorf("Headers[%d] = %q, want %q", i, preview.Headers[i], h)
		}
	}

	// "Email Address" keyword-matches Email; State and Country are direct.
	if preview.ProposedMapping[FieldEmail] != "Email Address" {
		t.Errorf("proposed Email = %q, want %q", preview.ProposedMapping[FieldEmail], "Email Address")
	}
	if preview.ProposedMapping[FieldState] != "State" {
		t.Errorf("proposed State = %q, want %q", preview.ProposedMapping[FieldState], "State")
	}
	if preview.TotalRows != 1 {
		t.Errorf("TotalRows = %d, want 1", preview.TotalRows)
	}
	if len(preview.SampleRows) != 1 {
		t.Fatalf("SampleRows = %d, want 1", len(preview.SampleRows))
	}
	if preview.SampleRows[0]["Full Name"] != "Jane Doe" {
		t.Errorf("sample row Full Name = %q", preview.SampleRows[0]["Full Name"])
	}

	if _, err := svc.PreviewUpload(""); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("PreviewUpload(empty) error = %v, want ErrEmptyFile", err)
	}
}

// ============================================================================
// Notes Tests
// ============================================================================

func TestNotes(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "", "body"); !errors.Is(err, ErrNoteTitleRequired) {
		t.Errorf("CreateNote without title error = %v, want ErrNoteTitleRequired", err)
	}

	summary, err := svc.CreateNote(ctx, "call list", "ring the PST folks after 9am")
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	// Stored body must be ciphertext, not plaintext
	stored := store.notes[summary.ID]
	if stored.EncryptedBody == "ring the PST folks after 9am" {
		t.Error("note body stored in plaintext")
	}

	detail, err := svc.Note(ctx, summary.ID)
	if err != nil {
		t.Fatalf("Note() error = %v", err)
	}
	if detail.Body != "ring the PST folks after 9am" {
		t.Errorf("Body = %q, want original text", detail.Body)
	}

	notes, err := svc.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "call list" {
		t.Errorf("Notes() = %v, want one note titled %q", notes, "call list")
	}

	if err := svc.DeleteNote(ctx, summary.ID); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	if _, err := svc.Note(ctx, summary.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Note() after delete error = %v, want ErrNoteNotFound", err)
	}
}
