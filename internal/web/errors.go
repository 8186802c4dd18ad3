package web

// errors.go maps pipeline errors to HTTP responses with support codes.
// Users can quote the code to support staff for faster diagnosis:
//
//	UPL001 - empty file (no non-blank lines)
//	UPL002 - field mapping missing a required field
//	UPL003 - file exceeds the configured size limit
//	CMP001 - campaign not found
//	CMP002 - campaign payload corrupted (decrypt/decode failure)
//	NOTE001 - note not found
//	NOTE002 - note title missing
//	SRV001 - anything else (storage/encryption collaborator failures)

import (
	"errors"
	"net/http"

	"github.com/outfieldhq/campaignvault/internal/campaign"
)

// writeServiceError translates a campaign.Service error into a coded JSON
// error response. Collaborator failures surface as 500s with the generic
// code; validation failures keep their specific codes and 4xx statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		missingField *campaign.MissingRequiredFieldError
		corrupted    *campaign.CorruptedCampaignError
	)

	switch {
	case errors.Is(err, campaign.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, "UPL001", "the uploaded file has no data")
	case errors.As(err, &missingField):
		writeError(w, http.StatusBadRequest, "UPL002", err.Error())
	case errors.Is(err, campaign.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "CMP001", "campaign not found")
	case errors.As(err, &corrupted):
		writeError(w, http.StatusInternalServerError, "CMP002",
			"campaign data could not be decrypted; the stored payload is corrupted")
	case errors.Is(err, campaign.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "NOTE001", "note not found")
	case errors.Is(err, campaign.ErrNoteTitleRequired):
		writeError(w, http.StatusBadRequest, "NOTE002", "note title is required")
	default:
		writeError(w, http.StatusInternalServerError, "SRV001", "internal error")
	}
}
