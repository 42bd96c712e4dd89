// Package handlers implements the REST API request handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/deck"
	"github.com/mtgkit/deckforge/internal/recommend"
	"github.com/mtgkit/deckforge/internal/storage/repository"
)

// DeckHandler handles deck CRUD and analysis requests.
type DeckHandler struct {
	decks  repository.DeckRepository
	engine *recommend.Engine
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks repository.DeckRepository, engine *recommend.Engine) *DeckHandler {
	return &DeckHandler{decks: decks, engine: engine}
}

// ListDecks returns all decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, decks)
}

// CreateDeckRequest represents a request to create a deck.
type CreateDeckRequest struct {
	Name   string      `json:"name"`
	Format string      `json:"format"`
	Cards  []deck.Card `json:"cards,omitempty"`
}

// CreateDeck creates a new deck.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("deck name is required"))
		return
	}

	d := &deck.Deck{Name: req.Name, Format: req.Format, Cards: req.Cards}
	if err := h.decks.Create(r.Context(), d); err != nil {
		if errors.Is(err, repository.ErrPlaysetExceeded) {
			response.BadRequest(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Created(w, d)
}

// GetDeck returns a single deck by ID.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := h.decks.GetByID(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, d)
}

// UpdateDeckRequest represents a request to update deck metadata.
type UpdateDeckRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

// UpdateDeck updates a deck's name and format.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	d := &deck.Deck{ID: chi.URLParam(r, "deckID"), Name: req.Name, Format: req.Format}
	if err := h.decks.Update(r.Context(), d); err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, d)
}

// SetDeckCardsRequest represents a request to replace a deck's cards.
type SetDeckCardsRequest struct {
	Cards []deck.Card `json:"cards"`
}

// SetDeckCards replaces a deck's card list.
func (h *DeckHandler) SetDeckCards(w http.ResponseWriter, r *http.Request) {
	var req SetDeckCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	deckID := chi.URLParam(r, "deckID")
	if err := h.decks.SetCards(r.Context(), deckID, req.Cards); err != nil {
		if errors.Is(err, repository.ErrPlaysetExceeded) {
			response.BadRequest(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// DeleteDeck deletes a deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := h.decks.Delete(r.Context(), chi.URLParam(r, "deckID")); err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// AnalyzeDeck returns the analysis profile for a stored deck.
func (h *DeckHandler) AnalyzeDeck(w http.ResponseWriter, r *http.Request) {
	d, err := h.decks.GetByID(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, h.engine.Analyze(d))
}
