package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/status-im/coin-tracker/coin_detail"
	"github.com/status-im/coin-tracker/interfaces"
)

// CoinDetailResponse is a detail session state as served to clients
type CoinDetailResponse struct {
	coin_detail.State
	TimeFrameLabel string `json:"time_frame_label"`
}

func newCoinDetailResponse(state coin_detail.State) CoinDetailResponse {
	return CoinDetailResponse{
		State:          state,
		TimeFrameLabel: coin_detail.LabelForDays(state.TimeFrame),
	}
}

// handleCoinDetail responds with a coin's detail session. The first request
// for a coin, or one with a different days parameter, runs a fetch cycle.
func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	s.serveCoinDetail(w, r, false)
}

// handleCoinDetailRefresh always runs a fetch cycle
func (s *Server) handleCoinDetailRefresh(w http.ResponseWriter, r *http.Request) {
	s.serveCoinDetail(w, r, true)
}

func (s *Server) serveCoinDetail(w http.ResponseWriter, r *http.Request, refresh bool) {
	session, err := s.detailManager.Open(mux.Vars(r)["id"])
	if err != nil {
		s.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	days, hasDays, err := getDaysParam(r)
	if err != nil {
		s.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := cycleContext(r)
	defer cancel()

	state := session.State()
	fetched := false
	if hasDays && days != state.TimeFrame {
		state, err = session.SetTimeFrame(ctx, days)
		if err != nil {
			s.sendError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		fetched = true
	}
	if !fetched && (refresh || state.Status == interfaces.SyncStatusIdle) {
		state = session.FetchDetails(ctx)
	}

	s.sendJSONResponse(w, newCoinDetailResponse(state))
}

func (s *Server) handleTimeFrames(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, coin_detail.TimeFrames)
}
