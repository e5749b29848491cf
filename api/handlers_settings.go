package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/status-im/coin-tracker/interfaces"
)

// ThemeResponse reports the theme preference
type ThemeResponse struct {
	Mode  interfaces.ThemeMode `json:"mode"`
	Ready bool                 `json:"ready"`
}

type setThemeRequest struct {
	Mode interfaces.ThemeMode `json:"mode"`
}

func (s *Server) themeResponse() ThemeResponse {
	return ThemeResponse{Mode: s.themeService.Mode(), Ready: s.themeService.IsReady()}
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.themeResponse())
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var request setThemeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&request); err != nil {
		s.sendError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.themeService.SetMode(r.Context(), request.Mode) {
		s.sendError(w, r, http.StatusBadRequest, "mode must be \"light\" or \"dark\"")
		return
	}
	s.sendJSONResponse(w, s.themeResponse())
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.themeService.Toggle(r.Context())
	s.sendJSONResponse(w, s.themeResponse())
}

// handleClearCache removes all locally stored data, favorites included, and
// drops detail sessions
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.persistence.Clear(r.Context()); err != nil {
		log.Printf("API: clear cache failed [%s]: %v", requestID(r.Context()), err)
		s.sendError(w, r, http.StatusInternalServerError, "failed to clear local data")
		return
	}
	s.detailManager.Reset()
	s.sendJSONResponse(w, map[string]string{"status": "cleared"})
}
