package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rpgo/lifeplan/internal/config"
	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/rpgo/lifeplan/internal/output"
)

// ProjectionIDHeader carries the run ID of a projection response.
const ProjectionIDHeader = "X-Projection-ID"

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// ProjectionHandler handles projection requests.
type ProjectionHandler struct {
	projector    Projector
	parser       *config.InputParser
	maxBodyBytes int64
}

// NewProjectionHandler creates a new ProjectionHandler. A nil parser uses the
// default limits; maxBodyBytes below 1 uses DefaultMaxBodyBytes.
func NewProjectionHandler(p Projector, parser *config.InputParser, maxBodyBytes int64) *ProjectionHandler {
	if parser == nil {
		parser = config.NewInputParser()
	}
	if maxBodyBytes < 1 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &ProjectionHandler{projector: p, parser: parser, maxBodyBytes: maxBodyBytes}
}

// Create runs a projection for the posted input. The optional format query
// parameter selects any registered formatter; the default is JSON.
func (h *ProjectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	var formatter output.Formatter
	if format != "" {
		f, err := output.ResolveFormatter(format, nil)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unsupported format", err.Error())
			return
		}
		formatter = f
	}

	var in domain.ProjectionInput
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.parser.ValidateInput(&in); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	res, err := h.projector.Project(r.Context(), &in)
	if err != nil {
		status := mapDomainError(err)
		message := "projection failed"
		if status == http.StatusInternalServerError {
			writeError(w, status, message, "")
			return
		}
		writeError(w, status, message, err.Error())
		return
	}

	if res.RunID != "" {
		w.Header().Set(ProjectionIDHeader, res.RunID)
	}
	if formatter == nil || formatter.Name() == "json" {
		writeJSON(w, http.StatusOK, res.Rounded(domain.MoneyPlaces))
		return
	}
	data, err := formatter.Format(res)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "formatting failed", "")
		return
	}
	w.Header().Set("Content-Type", output.ContentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Formats lists the accepted format names and aliases.
func (h *ProjectionHandler) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"formats": output.AvailableFormatterNames(),
		"aliases": output.AvailableFormatAliases(),
	})
}

// Example returns a sample projection input.
func (h *ProjectionHandler) Example(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.parser.CreateExampleInput())
}

// Liveness returns 200 if the service is alive.
func Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
