package e2etest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-tracker/api"
	"github.com/status-im/coin-tracker/interfaces"
)

// doJSON sends a request and decodes the JSON body into out, returning the status code
func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Should be able to make a request to %s", url)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")
	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out), "Response should be valid JSON: %s", string(data))
	}
	return resp.StatusCode
}

func getCoinList(t *testing.T, env *TestEnv, query string) api.CoinListResponse {
	t.Helper()
	var list api.CoinListResponse
	status := doJSON(t, http.MethodGet, env.ServerBaseURL+"/api/v1/coins"+query, nil, &list)
	require.Equal(t, http.StatusOK, status)
	return list
}

// waitForListStatus polls the coin list until it settles on a terminal status
func waitForListStatus(t *testing.T, env *TestEnv) api.CoinListResponse {
	t.Helper()

	maxWait := 10 * time.Second
	pollInterval := 50 * time.Millisecond
	timeout := time.Now().Add(maxWait)

	var list api.CoinListResponse
	for time.Now().Before(timeout) {
		list = getCoinList(t, env, "")
		if list.Status != interfaces.SyncStatusIdle && list.Status != interfaces.SyncStatusLoading {
			return list
		}
		time.Sleep(pollInterval)
	}
	t.Fatalf("Coin list did not settle, last status %s", list.Status)
	return list
}

func coinIDs(coins []interfaces.Coin) []string {
	ids := make([]string, 0, len(coins))
	for _, coin := range coins {
		ids = append(ids, coin.ID)
	}
	return ids
}
