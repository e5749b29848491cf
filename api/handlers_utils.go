package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/status-im/coin-tracker/coin_detail"
)

// fetchCycleTimeout bounds a fetch cycle started by a request
const fetchCycleTimeout = 15 * time.Second

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// sendJSONResponse writes data as a 200 JSON response
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.writeJSON(w, http.StatusOK, data)
}

// writeJSON encodes data up front so Content-Length and the ETag describe
// exactly the bytes sent.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Printf("API: failed to encode %T: %v", data, err)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Content-Length", strconv.Itoa(len(body)))
	header.Set("ETag", etagFor(body))
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		log.Printf("API: failed to write response: %v", err)
	}
}

func etagFor(body []byte) string {
	sum := md5.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func (s *Server) sendError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message, RequestID: requestID(r.Context())})
}

// cycleContext detaches a fetch cycle from the request that triggered it.
// The machines are shared, so a client hanging up must not abort their cycle.
func cycleContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), fetchCycleTimeout)
}

// Stop gracefully shuts down the server and closes open streams
func (s *Server) Stop() {
	s.streamCancel()
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
	s.streamWg.Wait()
}

// parseIDList turns "Bitcoin, ethereum,,bitcoin" into [bitcoin ethereum]
func parseIDList(value string) []string {
	ids := []string{}
	seen := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' }) {
		id := strings.ToLower(strings.TrimSpace(field))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// getBoolParam parses an optional boolean parameter; ok is false when absent
func getBoolParam(r *http.Request, key string) (value bool, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("%s parameter must be a boolean", key)
	}
	return value, true, nil
}

// getDaysParam parses the optional days parameter; ok is false when absent
func getDaysParam(r *http.Request) (days float64, ok bool, err error) {
	value := strings.TrimSpace(r.URL.Query().Get("days"))
	if value == "" {
		return 0, false, nil
	}
	days, err = coin_detail.ParseDays(value)
	if err != nil {
		return 0, false, err
	}
	return days, true, nil
}
