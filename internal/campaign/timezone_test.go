package campaign

import "testing"

func TestDeriveTimezone(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		country string
		want    string
	}{
		{
			name:    "state wins over country",
			state:   "CA",
			country: "Germany",
			want:    "PST",
		},
		{
			name:    "country fallback",
			state:   "",
			country: "Germany",
			want:    "CET",
		},
		{
			name:    "both empty",
			state:   "",
			country: "",
			want:    "NA",
		},
		{
			name:    "both unknown",
			state:   "xx",
			country: "zz",
			want:    "NA",
		},
		{
			name:    "state lookup is case-insensitive",
			state:   "ny",
			country: "",
			want:    "EST",
		},
		{
			name:    "state trimmed before lookup",
			state:   "  TX  ",
			country: "",
			want:    "CST",
		},
		{
			name:    "unknown state falls through to country",
			state:   "ZZ",
			country: "Japan",
			want:    "JST",
		},
		{
			name:    "country lookup is case-sensitive",
			state:   "",
			country: "germany",
			want:    "NA",
		},
		{
			name:    "alaska",
			state:   "AK",
			country: "",
			want:    "AKST",
		},
		{
			name:    "hawaii",
			state:   "HI",
			country: "",
			want:    "HST",
		},
		{
			name:    "mountain state",
			state:   "CO",
			country: "",
			want:    "MST",
		},
		{
			name:    "uk",
			state:   "",
			country: "UK",
			want:    "GMT",
		},
		{
			name:    "australia",
			state:   "",
			country: "Australia",
			want:    "AEST",
		},
		{
			name:    "india",
			state:   "",
			country: "India",
			want:    "IST",
		},
		{
			name:    "usa country",
			state:   "",
			country: "USA",
			want:    "EST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTimezone(tt.state, tt.country); got != tt.want {
				t.Errorf("DeriveTimezone(%q, %q) = %q, want %q", tt.state, tt.country, got, tt.want)
			}
		})
	}
}

// TestStateTableComplete guards against a state accidentally dropping out
// of the lookup table.
func TestStateTableComplete(t *testing.T) {
	if len(stateTimezones) != 50 {
		t.Errorf("stateTimezones has %d entries, want 50", len(stateTimezones))
	}
}
