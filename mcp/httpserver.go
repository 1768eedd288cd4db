package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foomo/studio-gallery/service"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// httpRequestKey is a custom context key for storing the original HTTP request
type httpRequestKey struct{}

// withHTTPRequest adds the original HTTP request to the context
func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// httpRequestFromContext extracts the original HTTP request from the context
func httpRequestFromContext(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	return req, ok
}

func httpContextFunc(ctx context.Context, r *http.Request) context.Context {
	return withHTTPRequest(ctx, r)
}

type HTTPServerConfig struct {
	// Endpoint is the MCP path, the event feed is served below it.
	Endpoint string
	PageSize service.PageSizeConfig
}

// HTTPServer serves the listing routes, the MCP endpoint, the event feed and metrics.
type HTTPServer struct {
	mux       *http.ServeMux
	sseServer *SSEServer
}

// NewHTTPServer wires all routes. sseServer and gatherer are optional.
func NewHTTPServer(
	logger *zap.Logger,
	s *server.MCPServer,
	serviceInstance service.Service,
	sseServer *SSEServer,
	gatherer prometheus.Gatherer,
	config HTTPServerConfig,
) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Endpoint == "" {
		config.Endpoint = "/mcp"
	}
	mux := http.NewServeMux()

	listings := &listingHandler{
		logger:   logger,
		service:  serviceInstance,
		pageSize: config.PageSize,
	}
	mux.HandleFunc("GET /carousel-listing", listings.carousel)
	mux.HandleFunc("GET /gallery-listing/{category}", listings.gallery)
	// routes the site's pages already call
	mux.HandleFunc("GET /api/carousel", listings.carousel)
	mux.HandleFunc("GET /api/gallery/{category}", listings.gallery)

	if s != nil {
		mux.Handle(config.Endpoint, server.NewStreamableHTTPServer(
			s,
			server.WithEndpointPath(config.Endpoint),
			server.WithHTTPContextFunc(httpContextFunc),
		))
	}

	if sseServer != nil {
		mux.HandleFunc("GET "+config.Endpoint+"/events", sseServer.HandleSSE)
		mux.HandleFunc("GET "+config.Endpoint+"/events/clients", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			clients := sseServer.GetConnectedClients()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"connectedClients": len(clients),
				"clients":          clients,
			})
		})
		mux.HandleFunc("GET "+config.Endpoint+"/events/stats", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(sseServer.GetStats())
		})
	}

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return &HTTPServer{
		mux:       mux,
		sseServer: sseServer,
	}
}

// ServeHTTP implements http.Handler
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// GetSSEServer returns the underlying SSE server for direct access
func (s *HTTPServer) GetSSEServer() *SSEServer {
	return s.sseServer
}
