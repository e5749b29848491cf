package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/coin-tracker/coin_detail"
	"github.com/status-im/coin-tracker/coin_list"
	"github.com/status-im/coin-tracker/interfaces"
	"github.com/status-im/coin-tracker/remote"
	"github.com/status-im/coin-tracker/theme"
)

type Server struct {
	port          string
	coinList      *coin_list.Service
	detailManager *coin_detail.Manager
	themeService  *theme.Service
	persistence   interfaces.IPersistence
	remoteService *remote.Service
	upgrader      websocket.Upgrader
	server        *http.Server
	listener      net.Listener
	streamCtx     context.Context
	streamCancel  context.CancelFunc
	streamWg      sync.WaitGroup
}

func New(port string, coinList *coin_list.Service, detailManager *coin_detail.Manager, themeService *theme.Service, persistence interfaces.IPersistence, remoteService *remote.Service) *Server {
	streamCtx, streamCancel := context.WithCancel(context.Background())
	return &Server{
		port:          port,
		coinList:      coinList,
		detailManager: detailManager,
		themeService:  themeService,
		persistence:   persistence,
		remoteService: remoteService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		streamCtx:    streamCtx,
		streamCancel: streamCancel,
	}
}

// Handler builds the router with every endpoint
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/coins", s.handleCoinList).Methods(http.MethodGet)
	v1.HandleFunc("/coins/refresh", s.handleCoinListRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/coins/{id}", s.handleCoinDetail).Methods(http.MethodGet)
	v1.HandleFunc("/coins/{id}/refresh", s.handleCoinDetailRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/favorites/{id}/toggle", s.handleToggleFavorite).Methods(http.MethodPost)
	v1.HandleFunc("/timeframes", s.handleTimeFrames).Methods(http.MethodGet)
	v1.HandleFunc("/settings/theme", s.handleGetTheme).Methods(http.MethodGet)
	v1.HandleFunc("/settings/theme", s.handleSetTheme).Methods(http.MethodPost)
	v1.HandleFunc("/settings/theme/toggle", s.handleToggleTheme).Methods(http.MethodPost)
	v1.HandleFunc("/cache", s.handleClearCache).Methods(http.MethodDelete)

	router.HandleFunc("/ws/coins", s.handleCoinStream)
	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.port, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting at http://localhost:%d", s.Port())
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Port returns the port the server listens on, useful when started on port 0
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}
