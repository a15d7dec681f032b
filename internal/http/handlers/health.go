package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}

// Health reports liveness and the Gemini model requests are sent to. It does
// not call Gemini.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{Status: "ok", Model: a.Model})
}
