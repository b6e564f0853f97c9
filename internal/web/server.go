// Package web exposes the equalizer over HTTP: a JSON parameter API, state
// blob upload/download, and a websocket that streams display frames (the
// response curve plus the spectrum paths) to connected clients.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cwbudde/algo-eq/analyzer"
	"github.com/cwbudde/algo-eq/engine"
	"github.com/cwbudde/algo-eq/state"
)

// BroadcastInterval is how often the server checks for a new display frame.
const BroadcastInterval = time.Second / 30

// Server serves the control API and display stream for one engine.
type Server struct {
	engine *engine.Engine
	states *state.Manager

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	version uint64
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer returns a server bound to e.
func NewServer(e *engine.Engine) *Server {
	return &Server{
		engine: e,
		states: state.NewManager(e.Registry()),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/params", s.handleParams)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return mux
}

// Run serves on addr until ctx is done, broadcasting display frames to
// websocket clients in the background.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go s.broadcastLoop(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[web] listening on %s", addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}

	return err
}

type paramMessage struct {
	ID    uint32  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Text  string  `json:"text"`
}

type setRequest struct {
	Name  string   `json:"name,omitempty"`
	ID    *uint32  `json:"id,omitempty"`
	Value *float64 `json:"value,omitempty"`
	On    *bool    `json:"on,omitempty"`
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		registry := s.engine.Registry()

		out := make([]paramMessage, 0, registry.Count())
		for _, p := range registry.All() {
			out = append(out, paramMessage{
				ID:    p.ID,
				Name:  p.Name,
				Value: p.Value(),
				Min:   p.Min,
				Max:   p.Max,
				Text:  p.Format(),
			})
		}

		writeJSON(w, out)

	case http.MethodPost:
		var req setRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		registry := s.engine.Registry()

		p := registry.ByName(req.Name)
		if p == nil && req.ID != nil {
			p = registry.Get(*req.ID)
		}

		if p == nil {
			http.Error(w, "unknown parameter", http.StatusNotFound)
			return
		}

		switch {
		case req.On != nil:
			p.SetBool(*req.On)
		case req.Value != nil:
			p.SetValue(*req.Value)
		default:
			http.Error(w, "missing value", http.StatusBadRequest)
			return
		}

		writeJSON(w, paramMessage{
			ID: p.ID, Name: p.Name, Value: p.Value(),
			Min: p.Min, Max: p.Max, Text: p.Format(),
		})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var buf bytes.Buffer
		if err := s.states.Save(&buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="preset.algoeq"`)
		_, _ = w.Write(buf.Bytes())

	case http.MethodPost:
		if err := s.states.Load(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// wirePoint is an [x, y] pair; plain arrays keep frames compact.
type wirePoint [2]float32

type frameMessage struct {
	Curve []float64   `json:"curve"`
	Left  []wirePoint `json:"left"`
	Right []wirePoint `json:"right"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writePump(c)
	go s.readPump(c)

	// A fresh client gets the current frame immediately.
	var d engine.Display
	s.engine.Snapshot(&d)

	if data, err := encodeFrame(d); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (s *Server) writePump(c *client) {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}

	c.conn.Close()
}

func (s *Server) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	s.drop(c)
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		idle := len(s.clients) == 0
		s.mu.Unlock()

		if idle {
			continue
		}

		var d engine.Display
		version := s.engine.Snapshot(&d)
		if version == s.version {
			continue
		}
		s.version = version

		data, err := encodeFrame(d)
		if err != nil {
			continue
		}

		s.mu.Lock()
		for c := range s.clients {
			select {
			case c.send <- data:
			default:
				// Slow client; skip this frame for it.
			}
		}
		s.mu.Unlock()
	}
}

func encodeFrame(d engine.Display) ([]byte, error) {
	msg := frameMessage{
		Curve: d.Curve,
		Left:  toWire(d.Left.Points),
		Right: toWire(d.Right.Points),
	}

	return json.Marshal(msg)
}

func toWire(points []analyzer.Point) []wirePoint {
	out := make([]wirePoint, len(points))
	for i, p := range points {
		out[i] = wirePoint{p.X, p.Y}
	}

	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode: %v", err), http.StatusInternalServerError)
	}
}
