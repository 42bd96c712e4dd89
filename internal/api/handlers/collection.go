package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/storage/repository"
)

// CollectionHandler handles owned-card collection requests.
type CollectionHandler struct {
	collection repository.CollectionRepository
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collection repository.CollectionRepository) *CollectionHandler {
	return &CollectionHandler{collection: collection}
}

// GetCollection returns the full collection snapshot.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.collection.Snapshot(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// UpsertEntryRequest represents a single collection update.
type UpsertEntryRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// UpsertEntry sets the owned quantity for one card. Zero removes it.
func (h *CollectionHandler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	var req UpsertEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}
	if req.Quantity < 0 {
		response.BadRequest(w, errors.New("quantity cannot be negative"))
		return
	}

	if err := h.collection.Upsert(r.Context(), req.Name, req.Quantity); err != nil {
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}
