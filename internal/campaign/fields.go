package campaign

// Field is one of the fixed canonical contact attributes this system
// understands. The 13 mappable fields are user-assignable; Time Zone is
// derived by the pipeline and never user-mapped.
type Field string

const (
	FieldFirstName          Field = "First Name"
	FieldLastName           Field = "Last Name"
	FieldTitle              Field = "Title"
	FieldCompany            Field = "Company"
	FieldEmail              Field = "Email"
	FieldMobilePhone        Field = "Mobile Phone"
	FieldOtherPhone         Field = "Other Phone"
	FieldCorporatePhone     Field = "Corporate Phone"
	FieldPersonLinkedinUrl  Field = "Person Linkedin Url"
	FieldCompanyLinkedinUrl Field = "Company Linkedin Url"
	FieldWebsite            Field = "Website"
	FieldState              Field = "State"
	FieldCountry            Field = "Country"

	// FieldTimeZone is appended by the pipeline from State/Country.
	FieldTimeZone Field = "Time Zone"
)

// MappableFields lists the canonical fields in enumeration order.
// Auto-mapping and the stored header order both follow this order.
var MappableFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldTitle,
	FieldCompany,
	FieldEmail,
	FieldMobilePhone,
	FieldOtherPhone,
	FieldCorporatePhone,
	FieldPersonLinkedinUrl,
	FieldCompanyLinkedinUrl,
	FieldWebsite,
	FieldState,
	FieldCountry,
}

// RequiredFields must all be mapped before a campaign can be ingested.
var RequiredFields = []Field{FieldFirstName, FieldLastName, FieldEmail}

// FieldMapping assigns a raw CSV header to each mapped canonical field.
// The same raw header may legally back more than one canonical field
// (e.g. "Full Name" feeding both First Name and Last Name); uniqueness of
// the header side is a UI convention, not an engine invariant.
type FieldMapping map[Field]string

// RawRow holds one data line keyed by the raw CSV headers as they
// appeared in line 1. Missing values default to the empty string.
type RawRow map[string]string

// NormalizedRow holds one data record in canonical-field terms.
// Unmapped canonical fields are absent, not stored as empty strings.
type NormalizedRow map[Field]string

// clean returns a copy of the mapping keeping only canonical mappable
// fields with non-empty headers. An entry like {"Title": ""} counts as
// unmapped everywhere downstream, and keys outside the canonical set
// (possible via the mapping JSON on upload) are discarded so the stored
// payload only ever carries canonical fields.
func (m FieldMapping) clean() FieldMapping {
	out := make(FieldMapping, len(m))
	for _, f := range MappableFields {
		if m[f] != "" {
			out[f] = m[f]
		}
	}
	return out
}
