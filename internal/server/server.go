// Package server serves a static suggestion corpus over the
// `/v1/autocomplete` JSON contract.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"suggestbox/internal/domain"
	"suggestbox/internal/source"
)

// AutocompletePath is the suggestion route
const AutocompletePath = "/v1/autocomplete"

type response struct {
	Data []domain.Suggestion `json:"data"`
	Type string              `json:"type"`
}

// Handler answers autocomplete queries from a source
type Handler struct {
	source source.Source
	router *httprouter.Router
}

// NewHandler creates a handler over src
func NewHandler(src source.Source) *Handler {
	h := &Handler{source: src}
	h.router = httprouter.New()
	h.router.HandleMethodNotAllowed = true
	h.router.GET(AutocompletePath, h.autocomplete)
	return h
}

// Routes returns the router with the autocomplete route registered.
// Other methods on the route get 405 with an Allow header.
func (h *Handler) Routes() *httprouter.Router {
	return h.router
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values := r.URL.Query()
	if !values.Has("query") {
		http.Error(w, "missing query parameter", http.StatusBadRequest)
		return
	}
	query := values.Get("query")

	res, err := h.source.Suggest(r.Context(), query)
	if err != nil {
		log.Printf("Suggest %q failed: %v", query, err)
		http.Error(w, "suggestion lookup failed", http.StatusInternalServerError)
		return
	}

	body := response{Data: res.Suggestions, Type: string(res.Mode)}
	if body.Data == nil {
		body.Data = []domain.Suggestion{}
	}
	if body.Type == "" {
		body.Type = string(domain.ModeList)
	}

	w.Header().Set("Content-Type", "application/json")
	if id := r.Header.Get(source.RequestIDHeader); id != "" {
		w.Header().Set(source.RequestIDHeader, id)
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write suggestions for %q: %v", query, err)
	}
}
