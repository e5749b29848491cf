package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/status-im/coin-tracker/coin_list"
	"github.com/status-im/coin-tracker/interfaces"
)

// CoinListResponse is the list machine state as served to clients
type CoinListResponse struct {
	Status     interfaces.SyncStatus  `json:"status"`
	Coins      []interfaces.Coin      `json:"coins"`
	Favorites  interfaces.FavoriteIDs `json:"favorites"`
	Total      int                    `json:"total"`
	Error      string                 `json:"error,omitempty"`
	UpdatedAt  time.Time              `json:"updated_at"`
	SearchTerm string                 `json:"search_term,omitempty"`
}

// FavoriteToggleResponse reports the membership after a toggle
type FavoriteToggleResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"is_favorite"`
}

func newCoinListResponse(state coin_list.State, search string) CoinListResponse {
	coins := coin_list.Filter(state.Coins, search)
	if coins == nil {
		coins = []interfaces.Coin{}
	}
	favorites := state.Favorites
	if favorites == nil {
		favorites = interfaces.FavoriteIDs{}
	}
	return CoinListResponse{
		Status:     state.Status,
		Coins:      coins,
		Favorites:  favorites,
		Total:      len(state.Coins),
		Error:      state.Error,
		UpdatedAt:  state.UpdatedAt,
		SearchTerm: search,
	}
}

// filterByIDs keeps coins whose id is listed; an empty list keeps everything
func filterByIDs(coins []interfaces.Coin, ids []string) []interfaces.Coin {
	if len(ids) == 0 {
		return coins
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	result := make([]interfaces.Coin, 0, len(ids))
	for _, coin := range coins {
		if _, ok := wanted[coin.ID]; ok {
			result = append(result, coin)
		}
	}
	return result
}

func favoritesOnly(coins []interfaces.Coin) []interfaces.Coin {
	result := make([]interfaces.Coin, 0)
	for _, coin := range coins {
		if coin.IsFavorite {
			result = append(result, coin)
		}
	}
	return result
}

// handleCoinList responds with the current list state.
// Optional parameters: search (name/symbol substring), ids (comma separated),
// favorites (bool).
func (s *Server) handleCoinList(w http.ResponseWriter, r *http.Request) {
	response := newCoinListResponse(s.coinList.State(), r.URL.Query().Get("search"))
	response.Coins = filterByIDs(response.Coins, parseIDList(r.URL.Query().Get("ids")))

	favorites, _, err := getBoolParam(r, "favorites")
	if err != nil {
		s.sendError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if favorites {
		response.Coins = favoritesOnly(response.Coins)
	}

	s.sendJSONResponse(w, response)
}

// handleCoinListRefresh runs a fetch cycle and responds with the resulting state
func (s *Server) handleCoinListRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := cycleContext(r)
	defer cancel()

	state := s.coinList.FetchInitialData(ctx)
	s.sendJSONResponse(w, newCoinListResponse(state, ""))
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]
	if coinID == "" {
		s.sendError(w, r, http.StatusBadRequest, "coin id is required")
		return
	}

	isFavorite := s.coinList.ToggleFavorite(r.Context(), coinID)
	s.sendJSONResponse(w, FavoriteToggleResponse{ID: coinID, IsFavorite: isFavorite})
}
