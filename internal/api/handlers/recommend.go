package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/metrics"
	"github.com/mtgkit/deckforge/internal/recommend"
	"github.com/mtgkit/deckforge/internal/storage/repository"
)

// RecommendHandler produces recommendations for stored decks.
type RecommendHandler struct {
	decks      repository.DeckRepository
	collection repository.CollectionRepository
	engine     *recommend.Engine
	metrics    *metrics.ServiceMetrics
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(decks repository.DeckRepository, collection repository.CollectionRepository, engine *recommend.Engine, m *metrics.ServiceMetrics) *RecommendHandler {
	return &RecommendHandler{decks: decks, collection: collection, engine: engine, metrics: m}
}

// RecommendRequest represents a recommendation request.
type RecommendRequest struct {
	Count  int    `json:"count"`
	Format string `json:"format"`
}

// Recommend runs the pipeline for a stored deck and returns the ranked
// list in one shot.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}

	d, err := h.decks.GetByID(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	collection, err := h.collection.Snapshot(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	start := time.Now()
	recs := h.engine.Recommend(r.Context(), d, collection, req.Count, req.Format)
	if h.metrics != nil {
		h.metrics.RecommendRuns.Add(1)
		h.metrics.RecommendLatency.Record(time.Since(start))
	}
	response.Success(w, recs)
}
