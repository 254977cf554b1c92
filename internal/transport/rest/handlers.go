package rest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"feedcache/internal/domain"
)

type feedItem struct {
	ID          uuid.UUID `json:"id"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Image       string    `json:"image"`
}

type feedResponse struct {
	Items []feedItem `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) getFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := domain.AwaitLoad(r.Context(), rt.feed)
	if err != nil {
		rt.logger.Error("failed to load cached feed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "feed unavailable"})
		return
	}

	items := make([]feedItem, len(feed))
	for i, image := range feed {
		items[i] = feedItem{
			ID:          image.ID,
			Description: image.Description,
			Location:    image.Location,
			Image:       image.URL,
		}
	}
	writeJSON(w, http.StatusOK, feedResponse{Items: items})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
