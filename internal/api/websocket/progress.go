// Package websocket streams recommendation progress to connected
// clients.
package websocket

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mtgkit/deckforge/internal/api/response"
	"github.com/mtgkit/deckforge/internal/recommend"
	"github.com/mtgkit/deckforge/internal/storage/repository"
)

// writeWait is the time allowed to write a frame to the peer.
const writeWait = 10 * time.Second

var errMissingDeckID = errors.New("query parameter deckId is required")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The server binds to localhost; cross-origin pages cannot
		// reach it anyway.
		return true
	},
}

// Frame is one message on the progress stream.
type Frame struct {
	Type    string                          `json:"type"` // "progress" or "result"
	Label   string                          `json:"label,omitempty"`
	Count   int                             `json:"count,omitempty"`
	Total   int                             `json:"total,omitempty"`
	Partial []recommend.SmartRecommendation `json:"partial,omitempty"`
	Result  []recommend.SmartRecommendation `json:"result,omitempty"`
	Error   string                          `json:"error,omitempty"`
}

// ProgressHandler serves recommendation runs over a websocket, one run
// per connection.
type ProgressHandler struct {
	decks      repository.DeckRepository
	collection repository.CollectionRepository
	engine     *recommend.Engine
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(decks repository.DeckRepository, collection repository.CollectionRepository, engine *recommend.Engine) *ProgressHandler {
	return &ProgressHandler{decks: decks, collection: collection, engine: engine}
}

// ServeHTTP upgrades the connection, runs the pipeline for the deck
// named in the query string, streams a progress frame per phase, and
// finishes with a result frame. Query parameters: deckId (required),
// count, format.
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deckID := r.URL.Query().Get("deckId")
	if deckID == "" {
		response.BadRequest(w, errMissingDeckID)
		return
	}
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			count = n
		}
	}
	format := r.URL.Query().Get("format")

	d, err := h.decks.GetByID(r.Context(), deckID)
	if err != nil {
		response.NotFound(w, err)
		return
	}
	collection, err := h.collection.Snapshot(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("[WS] close failed: %v", err)
		}
	}()

	writeFrame := func(f Frame) bool {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return false
		}
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("[WS] write failed: %v", err)
			return false
		}
		return true
	}

	recs := h.engine.RecommendWithProgress(r.Context(), d, collection, count, format,
		func(label string, count, total int, partial []recommend.SmartRecommendation) {
			writeFrame(Frame{
				Type:    "progress",
				Label:   label,
				Count:   count,
				Total:   total,
				Partial: partial,
			})
		})

	if writeFrame(Frame{Type: "result", Result: recs}) {
		deadline := time.Now().Add(writeWait)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	}
}
