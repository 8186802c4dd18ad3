package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfieldhq/campaignvault/internal/campaign"
	"github.com/outfieldhq/campaignvault/internal/logging"
)

// readUploadFile extracts the CSV file from a multipart form, enforcing
// the configured size limit before reading. Returns the file text and the
// original filename.
func (s *Server) readUploadFile(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "UPL003", "file too large or invalid form")
		return "", "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "UPL004", "no file provided")
		return "", "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SRV001", "failed to read file")
		return "", "", false
	}

	return string(data), header.Filename, true
}

// handlePreview analyzes an uploaded CSV and returns the parsed headers,
// the proposed auto-mapping, and sample rows, without persisting anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	text, _, ok := s.readUploadFile(w, r)
	if !ok {
		return
	}

	preview, err := s.service.PreviewUpload(text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, preview)
}

// handleUpload ingests a CSV upload with its field mapping and returns the
// persisted campaign summary. Row data never appears in the response.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := s.readUploadFile(w, r)
	if !ok {
		return
	}

	var mapping campaign.FieldMapping
	if mappingJSON := r.FormValue("mapping"); mappingJSON != "" {
		if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
			writeError(w, http.StatusBadRequest, "UPL005", "invalid mapping format")
			return
		}
	}

	summary, err := s.service.Ingest(r.Context(), text, mapping, filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("campaign ingested",
		"campaign_id", summary.ID,
		"name", summary.Name,
		"records", summary.RecordCount,
	)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, summary)
}

// handleListCampaigns lists campaign summaries. No decryption happens on
// this path; field mappings are stored in plaintext for exactly this view.
func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.Campaigns(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, summaries)
}

// handleGetCampaign returns one campaign decrypted on demand.
func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.Campaign(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, detail)
}

// handleExportCampaign streams a campaign back out as a CSV download.
func (s *Server) handleExportCampaign(w http.ResponseWriter, r *http.Request) {
	name, csvText, err := s.service.ExportCSV(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	io.WriteString(w, csvText)
}

// handleDeleteCampaign removes a campaign permanently.
func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaignID")
	if err := s.service.DeleteCampaign(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("campaign deleted", "campaign_id", id)
	w.WriteHeader(http.StatusNoContent)
}
