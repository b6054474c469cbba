package ws

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/vladimirvolkov/hoopshot/internal/middleware"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// ConnStats counts outbound traffic of one connection.
type ConnStats struct {
	Sent       uint64 `json:"sent"`
	Dropped    uint64 `json:"dropped"`
	Superseded uint64 `json:"superseded"`
}

// Conn is one client connection. Event messages are queued in order; game
// state goes through a single slot where a newer snapshot replaces one the
// writer has not sent yet.
type Conn struct {
	ws     *websocket.Conn
	events chan []byte
	state  chan []byte
	done   chan struct{}
	once   sync.Once

	ID       string
	Nickname string
	IP       string
	Codec    Codec

	limiter *middleware.IPRateLimiter

	sent       atomic.Uint64
	dropped    atomic.Uint64
	superseded atomic.Uint64
}

func NewConn(ws *websocket.Conn, id string, ip string, codec Codec, limiter *middleware.IPRateLimiter) *Conn {
	if codec == nil {
		codec = JSON
	}
	return &Conn{
		ws:      ws,
		events:  make(chan []byte, sendBuffer),
		state:   make(chan []byte, 1),
		done:    make(chan struct{}),
		ID:      id,
		IP:      ip,
		Codec:   codec,
		limiter: limiter,
	}
}

// Send encodes msg with the connection's codec and queues it without
// blocking.
func (c *Conn) Send(msg Message) {
	data, err := c.Codec.Encode(msg)
	if err != nil {
		log.Printf("conn %s: encode 0x%02x: %v", c.ID, msg.Type, err)
		return
	}
	if msg.Type == MsgGameState {
		c.offerState(data)
		return
	}
	select {
	case c.events <- data:
	default:
		c.dropped.Add(1)
		log.Printf("conn %s: send buffer full, dropping 0x%02x", c.ID, msg.Type)
	}
}

// offerState replaces any unsent snapshot with data.
func (c *Conn) offerState(data []byte) {
	for {
		select {
		case c.state <- data:
			return
		default:
		}
		select {
		case <-c.state:
			c.superseded.Add(1)
		default:
		}
	}
}

// SendPayload wraps payload in an envelope of type typ and sends it.
func (c *Conn) SendPayload(typ uint8, tick uint32, payload any) {
	msg, err := c.Codec.NewMessage(typ, tick, payload)
	if err != nil {
		log.Printf("conn %s: payload 0x%02x: %v", c.ID, typ, err)
		return
	}
	c.Send(msg)
}

func (c *Conn) Stats() ConnStats {
	return ConnStats{
		Sent:       c.sent.Load(),
		Dropped:    c.dropped.Load(),
		Superseded: c.superseded.Load(),
	}
}

// ReadLoop decodes client frames until the connection fails. Frames over
// the per-IP message rate, of the wrong frame type or undecodable are
// skipped.
func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, sendBuffer)
	go func() {
		defer close(ch)
		for {
			typ, data, err := c.ws.Read(ctx)
			if err != nil {
				log.Printf("conn %s: read error: %v", c.ID, err)
				c.Close()
				return
			}
			if c.limiter != nil && !c.limiter.MessageAllowed(c.IP) {
				continue
			}
			if typ != c.Codec.FrameType() {
				log.Printf("conn %s: unexpected %v frame for %s codec", c.ID, typ, c.Codec.Name())
				continue
			}
			msg, err := c.Codec.Decode(data)
			if err != nil {
				log.Printf("conn %s: decode error: %v", c.ID, err)
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// WriteLoop sends queued events first, then the latest snapshot.
func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		var data []byte
		select {
		case data = <-c.events:
		default:
			select {
			case data = <-c.events:
			case data = <-c.state:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		}
		if err := c.write(ctx, data); err != nil {
			log.Printf("conn %s: write error: %v", c.ID, err)
			c.Close()
			return
		}
		c.sent.Add(1)
	}
}

func (c *Conn) write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.ws.Write(ctx, c.Codec.FrameType(), data)
}

func (c *Conn) Close() {
	c.CloseWith(websocket.StatusNormalClosure, "")
}

// CloseWith closes the connection with a status code. Only the first close
// takes effect.
func (c *Conn) CloseWith(code websocket.StatusCode, reason string) {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(code, reason)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
