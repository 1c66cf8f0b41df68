// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/ledger"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

const botConnecting = "connecting..."

// StatusServer serves the liveness and status HTTP endpoints.
type StatusServer struct {
	server      *http.Server
	port        int
	serviceName string
	guilds      service.GuildDirectory
	ledger      ledger.Ledger
	started     time.Time
	now         func() time.Time
}

// NewStatusServer creates a new status server instance.
func NewStatusServer(port int, serviceName string, guilds service.GuildDirectory, ledger ledger.Ledger) *StatusServer {
	return &StatusServer{
		port:        port,
		serviceName: serviceName,
		guilds:      guilds,
		ledger:      ledger,
		started:     time.Now(),
		now:         time.Now,
	}
}

type rootResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type healthResponse struct {
	Status         string  `json:"status"`
	Bot            string  `json:"bot"`
	Timestamp      string  `json:"timestamp"`
	InvitesTracked int     `json:"invitesTracked"`
	Uptime         float64 `json:"uptime"`
}

type statusResponse struct {
	healthResponse
	Guilds       []service.GuildSummary `json:"guilds"`
	GuildCount   int                    `json:"guildCount"`
	TotalMembers int                    `json:"totalMembers"`
}

// Router builds the HTTP routes.
func (s *StatusServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	return r
}

func (s *StatusServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Status:    "online",
		Message:   "Invite rewards bot is running",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Service:   s.serviceName,
	})
}

func (s *StatusServer) health() healthResponse {
	bot := s.guilds.BotTag()
	if bot == "" {
		bot = botConnecting
	}
	return healthResponse{
		Status:         "healthy",
		Bot:            bot,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		InvitesTracked: s.ledger.Len(),
		Uptime:         s.now().Sub(s.started).Seconds(),
	}
}

func (s *StatusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health())
}

func (s *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	guilds := s.guilds.Guilds()
	if guilds == nil {
		guilds = []service.GuildSummary{}
	}

	total := 0
	for _, g := range guilds {
		total += g.MemberCount
	}

	writeJSON(w, http.StatusOK, statusResponse{
		healthResponse: s.health(),
		Guilds:         guilds,
		GuildCount:     len(guilds),
		TotalMembers:   total,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to write status response: %v", err)
	}
}

// Setup builds the HTTP server.
func (s *StatusServer) Setup() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Start begins serving the status endpoints.
func (s *StatusServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("status server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("status server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the status server.
func (s *StatusServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down status server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("status server stopped")
	return nil
}
