package mcp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foomo/studio-gallery/service/vo"
	"go.uber.org/zap"
)

// SSEEvent represents an SSE event structure
type SSEEvent struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// SSEClient represents a connected SSE client. Only its HandleSSE call
// writes to the connection; everything else goes through events.
type SSEClient struct {
	ID       string
	events   chan SSEEvent
	lastSeen atomic.Int64
}

func (c *SSEClient) LastSeen() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

// SSEServerConfig holds configuration for the SSE server
type SSEServerConfig struct {
	KeepaliveInterval time.Duration
	BufferSize        int
	ClientTimeout     time.Duration
}

// DefaultSSEServerConfig returns the default configuration for SSE server
func DefaultSSEServerConfig() *SSEServerConfig {
	return &SSEServerConfig{
		KeepaliveInterval: 30 * time.Second,
		BufferSize:        100,
		ClientTimeout:     60 * time.Second,
	}
}

// SSEServer fans listing resolution events out to dashboards.
type SSEServer struct {
	logger       *zap.Logger
	config       *SSEServerConfig
	clients      map[string]*SSEClient
	clientsMutex sync.RWMutex
	broadcast    chan SSEEvent
	nextClientID int
	done         chan struct{}
	closeOnce    sync.Once
}

func NewSSEServer(logger *zap.Logger, config *SSEServerConfig) *SSEServer {
	if config == nil {
		config = DefaultSSEServerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SSEServer{
		logger:    logger,
		config:    config,
		clients:   make(map[string]*SSEClient),
		broadcast: make(chan SSEEvent, config.BufferSize),
		done:      make(chan struct{}),
	}
	go s.broadcastLoop()
	return s
}

// Publish broadcasts a resolved listing. It matches service.Observer.
func (s *SSEServer) Publish(event vo.ResolutionEvent) {
	s.broadcastEvent(SSEEvent{
		ID:        fmt.Sprintf("resolved_%d", time.Now().UnixNano()),
		Event:     "listing_resolved",
		Data:      event,
		Timestamp: event.Time,
	})
}

// Close stops the broadcast loop and disconnects all clients.
func (s *SSEServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *SSEServer) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.broadcast:
			s.clientsMutex.RLock()
			for _, client := range s.clients {
				select {
				case client.events <- event:
				default:
					s.logger.Warn("client buffer full, dropping event", zap.String("clientID", client.ID), zap.String("eventID", event.ID))
				}
			}
			s.clientsMutex.RUnlock()
		}
	}
}

func (s *SSEServer) broadcastEvent(event SSEEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.logger.Warn("broadcast channel full, dropping event", zap.String("eventID", event.ID))
	}
}

func (s *SSEServer) addClient() *SSEClient {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	s.nextClientID++
	client := &SSEClient{
		ID:     fmt.Sprintf("client_%d_%d", time.Now().Unix(), s.nextClientID),
		events: make(chan SSEEvent, s.config.BufferSize),
	}
	client.lastSeen.Store(time.Now().UnixNano())
	s.clients[client.ID] = client

	s.logger.Info("SSE client connected", zap.String("clientID", client.ID))
	return client
}

func (s *SSEServer) removeClient(clientID string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if _, exists := s.clients[clientID]; exists {
		delete(s.clients, clientID)
		s.logger.Info("SSE client disconnected", zap.String("clientID", clientID))
	}
}

// HandleSSE streams events to one client until it disconnects
func (s *SSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	client := s.addClient()
	defer s.removeClient(client.ID)

	send := func(event SSEEvent) bool {
		if err := writeEvent(w, event); err != nil {
			s.logger.Error("failed to send event to client", zap.String("clientID", client.ID), zap.Error(err))
			return false
		}
		flusher.Flush()
		client.lastSeen.Store(time.Now().UnixNano())
		return true
	}

	if !send(SSEEvent{
		ID:        fmt.Sprintf("connect_%d", time.Now().UnixNano()),
		Event:     "connected",
		Data:      map[string]string{"clientID": client.ID, "message": "Connected to listing events"},
		Timestamp: time.Now(),
	}) {
		return
	}

	ticker := time.NewTicker(s.config.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			return
		case event := <-client.events:
			if !send(event) {
				return
			}
		case now := <-ticker.C:
			if !send(SSEEvent{
				ID:        fmt.Sprintf("keepalive_%d", now.UnixNano()),
				Event:     "keepalive",
				Data:      map[string]any{"timestamp": now},
				Timestamp: now,
			}) {
				return
			}
		}
	}
}

func writeEvent(w io.Writer, event SSEEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, eventJSON)
	return err
}

// GetConnectedClients returns information about connected clients
func (s *SSEServer) GetConnectedClients() []map[string]any {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	clients := make([]map[string]any, 0, len(s.clients))
	for _, client := range s.clients {
		lastSeen := client.LastSeen()
		clients = append(clients, map[string]any{
			"id":        client.ID,
			"lastSeen":  lastSeen,
			"connected": time.Since(lastSeen) < s.config.ClientTimeout,
		})
	}
	return clients
}

// GetStats returns server statistics
func (s *SSEServer) GetStats() map[string]any {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	return map[string]any{
		"connectedClients": len(s.clients),
		"bufferSize":       len(s.broadcast),
		"serverVersion":    Version,
	}
}
