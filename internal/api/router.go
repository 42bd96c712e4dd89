package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/deckforge/internal/api/handlers"
	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/api/websocket"
	"github.com/mtgkit/deckforge/internal/cards/cardcache"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint for progressive recommendations.
	progress := websocket.NewProgressHandler(s.decks, s.collection, s.engine)
	s.router.Get("/ws/recommend", progress.ServeHTTP)

	s.router.Route("/api/v1", func(r chi.Router) {
		deckHandler := handlers.NewDeckHandler(s.decks, s.engine)
		recommendHandler := handlers.NewRecommendHandler(s.decks, s.collection, s.engine, s.metrics)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Put("/{deckID}", deckHandler.UpdateDeck)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
			r.Put("/{deckID}/cards", deckHandler.SetDeckCards)
			r.Get("/{deckID}/analyze", deckHandler.AnalyzeDeck)
			r.Post("/{deckID}/recommend", recommendHandler.Recommend)
		})

		cardHandler := handlers.NewCardHandler(s.cardSource)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Get("/name/{name}", cardHandler.GetCardByName)
		})

		collectionHandler := handlers.NewCollectionHandler(s.collection)
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.GetCollection)
			r.Put("/", collectionHandler.UpsertEntry)
		})

		r.Get("/status", s.status)
	})
}

// status reports runtime counters, latency summaries, and card cache
// performance.
func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	body := map[string]interface{}{
		"metrics": s.metrics.Snapshot(),
	}
	if cached, ok := s.cardSource.(interface{ GetStats() cardcache.Stats }); ok {
		body["cardCache"] = cached.GetStats()
	}
	response.Success(w, body)
}

// healthCheck reports server liveness.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
