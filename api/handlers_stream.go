package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

// StreamMessage is pushed to websocket clients on every list publication
type StreamMessage struct {
	Type string           `json:"type"`
	Data CoinListResponse `json:"data"`
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// handleCoinStream upgrades to a websocket and pushes the list state, first
// immediately and then after every change
func (s *Server) handleCoinStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("API: websocket upgrade failed: %v", err)
		return
	}

	s.streamWg.Add(1)
	defer s.streamWg.Done()

	client := &streamClient{conn: conn, send: make(chan []byte, 16)}
	ctx, cancel := context.WithCancel(s.streamCtx)
	defer cancel()

	go client.readPump(cancel)

	sub := s.coinList.Subscribe()
	sub.Watch(ctx, func() {
		message, err := json.Marshal(StreamMessage{
			Type: "coins",
			Data: newCoinListResponse(s.coinList.State(), ""),
		})
		if err != nil {
			log.Printf("API: failed to encode stream message: %v", err)
			return
		}
		client.enqueue(message)
	}, true)
	defer sub.Cancel()

	client.writePump(ctx)
}

// enqueue drops the message when the client is too slow; a later state supersedes it
func (c *streamClient) enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
	}
}

func (c *streamClient) readPump(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("API: websocket read error: %v", err)
			}
			return
		}
	}
}

func (c *streamClient) writePump(ctx context.Context) {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
