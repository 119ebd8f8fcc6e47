package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/importer"
	"github.com/alexanderramin/buildcost/internal/repository"
	"github.com/alexanderramin/buildcost/internal/service"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	estimates service.EstimateService
	saved     service.SavedEstimateService
	logger    *slog.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	cat := h.estimates.Catalog()
	writeJSON(w, http.StatusOK, contract.HealthResponse{
		Status:         "ok",
		Message:        "buildcost API is operational",
		CatalogVersion: cat.Version(),
		TradeCount:     len(cat.Trades()),
	})
}

func (h *handlers) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contract.NewCatalogResponse(h.estimates.Catalog()))
}

func (h *handlers) basic(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	res, err := h.estimates.Basic(r.Context(), doc)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewBasicEstimateResponse(res))
}

func (h *handlers) detailed(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	res, err := h.estimates.Detailed(r.Context(), doc)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewDetailedEstimateResponse(res))
}

// validate always answers 200; an invalid project is a successful check.
func (h *handlers) validate(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, contract.NewValidationResponse(h.estimates.Validate(r.Context(), doc)))
}

func (h *handlers) save(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}
	req, err := contract.DecodeSaveRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, contract.ErrInvalidDocument, fmt.Sprintf("parsing save request: %v", err))
		return
	}
	if len(req.Project) == 0 || string(req.Project) == "null" {
		writeError(w, http.StatusBadRequest, contract.ErrInvalidDocument, "project is required")
		return
	}
	doc, err := importer.ParseProjectDocument(req.Project)
	if err != nil {
		writeError(w, http.StatusBadRequest, contract.ErrInvalidDocument, err.Error())
		return
	}
	result := req.Result
	if string(result) == "null" {
		result = nil
	}

	saved, err := h.saved.Save(r.Context(), name, doc, result)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewSaveResponse(saved))
}

func (h *handlers) load(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}
	saved, err := h.saved.Load(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewSavedEstimateResponse(saved))
}

func (h *handlers) listSaved(w http.ResponseWriter, r *http.Request) {
	list, err := h.saved.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	totals, err := h.saved.TotalsByTrade(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewListSavedResponse(list, totals))
}

func (h *handlers) deleteSaved(w http.ResponseWriter, r *http.Request) {
	name, ok := nameParam(w, r)
	if !ok {
		return
	}
	if err := h.saved.Delete(r.Context(), name); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) decodeProject(w http.ResponseWriter, r *http.Request) (*importer.ProjectDocument, bool) {
	doc, err := importer.DecodeProjectDocument(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, contract.ErrInvalidDocument, err.Error())
		return nil, false
	}
	return doc, true
}

// nameParam reads the {name} segment. Escaped separators stay escaped in
// the route match, so the name is unescaped before validation sees it.
func nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, contract.ErrInvalidName, fmt.Sprintf("invalid name: %v", err))
		return "", false
	}
	return name, true
}

func (h *handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var failure *domain.ValidationFailure
	switch {
	case errors.As(err, &failure):
		writeJSON(w, http.StatusUnprocessableEntity, contract.NewValidationResponse(failure.Report))
	case errors.Is(err, service.ErrInvalidName):
		writeError(w, http.StatusBadRequest, contract.ErrInvalidName, err.Error())
	case errors.Is(err, service.ErrInvalidResult):
		writeError(w, http.StatusBadRequest, contract.ErrInvalidDocument, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, contract.ErrNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, contract.ErrInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code contract.ErrorCode, msg string) {
	writeJSON(w, status, contract.ErrorResponse{Code: code, Message: msg})
}
