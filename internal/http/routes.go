package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/http/dto"
)

// Search always answers with a JSON array; a failed lookup is an empty one.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items, err := h.Catalog.Search(r.Context(), query)
	if err != nil || items == nil {
		items = []domain.CatalogItem{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suggestions, err := h.Catalog.Suggest(r.Context(), query)
	if err != nil || suggestions == nil {
		suggestions = []string{}
	}
	h.writeJSON(w, http.StatusOK, suggestions)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Settings.Get())
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxSettingsRequestBytes)

	var req dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "settings document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid settings document: "+err.Error(), http.StatusBadRequest)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		http.Error(w, dto.ToResponse(errs), http.StatusBadRequest)
		return
	}

	if err := h.Settings.Update(req.ToSettings()); err != nil {
		h.Logger.Error("Failed to update settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cache.Stats()
	if err != nil {
		h.Logger.Error("Failed to read cache stats", "error", err)
		http.Error(w, "cache stats unavailable", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
