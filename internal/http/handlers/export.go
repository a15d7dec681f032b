package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"listingcopy/internal/contracts"
	"listingcopy/internal/export"
	"listingcopy/internal/middleware"
)

type exportRequest struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Filename    string `json:"filename"`
}

type exportResponse struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Export reformats a description for one listing site.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeExport(w, r)
	if !ok {
		return
	}
	target, err := export.ParseTarget(req.Target)
	if err != nil {
		a.error(w, r, http.StatusBadRequest, kindBadRequest, err.Error())
		return
	}
	a.json(w, http.StatusOK, exportResponse{Target: string(target), Text: export.Format(target, req.Description)})
}

// ExportBundle returns a zip with the description formatted for every target.
func (a *App) ExportBundle(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeExport(w, r)
	if !ok {
		return
	}

	archive, err := export.Bundle(req.Description, a.now())
	if err != nil {
		a.Logger.Error().Err(err).Msg("export: build bundle")
		a.json(w, http.StatusInternalServerError, errorResponse{
			ErrorKind: "internal",
			Error:     "export failed",
			RequestID: middleware.RequestIDFromContext(r.Context()),
		})
		return
	}

	name := req.Filename
	if name == "" {
		name = "listing"
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) decodeExport(w http.ResponseWriter, r *http.Request) (exportRequest, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes))
	if err != nil {
		var reqErr *requestError
		errors.As(bodyReadError(err), &reqErr)
		a.error(w, r, reqErr.status, reqErr.kind, reqErr.details...)
		return exportRequest{}, false
	}
	if err := contracts.Validate(contracts.ExportRequest, body); err != nil {
		var verr *contracts.ViolationError
		if errors.As(err, &verr) {
			a.error(w, r, http.StatusBadRequest, kindBadRequest, verr.Violations...)
		} else {
			a.error(w, r, http.StatusBadRequest, kindBadRequest)
		}
		return exportRequest{}, false
	}
	var req exportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, kindBadRequest, err.Error())
		return exportRequest{}, false
	}
	return req, true
}
