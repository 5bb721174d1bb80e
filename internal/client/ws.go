package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// reconnectDelay is fixed: the channel retries forever at this
	// cadence, there is no backoff growth and no attempt cap.
	reconnectDelay = 3 * time.Second

	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// WSClient owns the single live channel to the MediBuddy backend. At most
// one connection exists at a time; establishing a new one releases the
// previous connection first so events are never delivered twice.
type WSClient struct {
	url string

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes (ping, chat)
	conn    *websocket.Conn
	pingCtx context.CancelFunc // cancels the active ping goroutine
}

// NewWSClient creates a client that connects to the given WebSocket URL.
func NewWSClient(url string) *WSClient {
	return &WSClient{url: url}
}

// --- Bubble Tea messages ---

// ChannelUpMsg is sent when the channel connects.
type ChannelUpMsg struct{}

// ChannelDownMsg is sent when the connection drops.
type ChannelDownMsg struct{ Err error }

// PushConnectedMsg is the server's greeting push after connect.
type PushConnectedMsg struct{ Message string }

// PushFactMsg delivers one pharma_update fact.
type PushFactMsg struct{ Fact FactUpdate }

// PushPriceMsg delivers one price_update fact.
type PushPriceMsg struct{ Fact FactUpdate }

// PushChatMsg delivers an assistant chat reply.
type PushChatMsg struct{ Answer ChatAnswer }

// Listen returns a Bubble Tea command that dials until a connection is
// established, waiting reconnectDelay between attempts. Connection loss is
// never fatal; the caller re-invokes Listen on ChannelDownMsg.
func (c *WSClient) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
			if err != nil {
				log.Debugf("ws dial %s: %v (retry in %v)", c.url, err, reconnectDelay)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(reconnectDelay):
				}
				continue
			}

			// Release any previous connection and its ping goroutine
			// before this one becomes the live channel.
			c.mu.Lock()
			if c.pingCtx != nil {
				c.pingCtx()
			}
			if c.conn != nil {
				c.conn.Close()
			}
			pingCtx, pingCancel := context.WithCancel(ctx)
			c.conn = conn
			c.pingCtx = pingCancel
			c.mu.Unlock()

			go c.pingLoop(pingCtx, conn)

			return ChannelUpMsg{}
		}
	}
}

// ReadLoop returns a Bubble Tea command that reads from the connection and
// returns the next decodable push event. Malformed payloads are dropped and
// the loop keeps reading. It should be re-issued after every delivered
// message, and started after ChannelUpMsg.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return ChannelDownMsg{Err: fmt.Errorf("no connection")}
		}

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongTimeout))
			return nil
		})
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.mu.Unlock()
				conn.Close()
				return ChannelDownMsg{Err: err}
			}

			msg, ok := Decode(data)
			if !ok {
				log.Debugf("ws: dropping malformed payload (%d bytes)", len(data))
				continue
			}
			return msg
		}
	}
}

// Decode parses one raw channel frame into its typed message. The second
// return is false for non-JSON frames, frames without a type, and types
// this client does not know (those are ignored, not errors).
func Decode(data []byte) (tea.Msg, bool) {
	var env PushEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	switch env.Type {
	case PushConnected:
		return PushConnectedMsg{Message: env.Message}, true
	case PushPharmaUpdate:
		var f FactUpdate
		if json.Unmarshal(env.Data, &f) != nil {
			return nil, false
		}
		return PushFactMsg{Fact: f}, true
	case PushPriceUpdate:
		var f FactUpdate
		if json.Unmarshal(env.Data, &f) != nil {
			return nil, false
		}
		return PushPriceMsg{Fact: f}, true
	case PushChatResponse:
		return PushChatMsg{Answer: ChatAnswer{
			Response:   env.Response,
			Sources:    env.Sources,
			Confidence: env.Confidence,
		}}, true
	default:
		return nil, false
	}
}

// Connected reports whether the channel is currently up.
func (c *WSClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendChat writes an outbound chat message on the channel. It fails when
// disconnected rather than buffering; callers fall back to the HTTP chat
// endpoint.
func (c *WSClient) SendChat(message, region string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(map[string]string{
		"type":    "chat",
		"message": message,
		"region":  region,
	})
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection has been replaced.
func (c *WSClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
