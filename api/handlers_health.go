package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"coingecko_markets": "unknown",
		"coingecko_coins":   "unknown",
		"coingecko_ohlc":    "unknown",
		"theme":             "unknown",
	}

	for name, up := range s.remoteService.Status() {
		if up {
			services["coingecko_"+name] = "up"
		}
	}

	if s.themeService.IsReady() {
		services["theme"] = "up"
	}

	status := map[string]interface{}{
		"status":      "ok",
		"services":    services,
		"list_status": s.coinList.State().Status,
	}

	s.sendJSONResponse(w, status)
}
