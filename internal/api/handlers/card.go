package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/recommend"
)

// CardHandler handles card search requests against the cached card
// service.
type CardHandler struct {
	source recommend.CardSource
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(source recommend.CardSource) *CardHandler {
	return &CardHandler{source: source}
}

// SearchCards searches the card service. Query parameters: q (search
// query, required), format, order, limit.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	opts := cards.SearchOptions{
		Format: r.URL.Query().Get("format"),
		Order:  r.URL.Query().Get("order"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			response.BadRequest(w, errors.New("limit must be a positive integer"))
			return
		}
		opts.MaxResults = n
	}

	response.Success(w, h.source.Search(r.Context(), query, opts))
}

// GetCardByName looks up a single card by exact name.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	card, ok := h.source.GetByName(r.Context(), name)
	if !ok {
		response.NotFound(w, errors.New("card not found"))
		return
	}
	response.Success(w, card)
}
