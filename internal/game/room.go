package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vladimirvolkov/hoopshot/internal/ws"
)

// Recorder keeps the best score across sessions.
type Recorder interface {
	BestScore() (score int, holder string)
	Submit(holder string, score, made, perfects int) (newBest bool, err error)
}

// Room hosts one Session for one websocket client. The session is only
// touched from the game loop goroutine; client input reaches it as commands.
type Room struct {
	conn     *ws.Conn
	session  *Session
	recorder Recorder
	tickRate int
	cmds     chan func(*Session)
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewRoom(conn *ws.Conn, t Tuning, clock Clock, recorder Recorder, tickRate int) (*Room, error) {
	s, err := NewSession(t, clock)
	if err != nil {
		return nil, err
	}
	id := conn.ID
	s.Logf = func(format string, args ...any) {
		log.Printf("%s: %s", id, fmt.Sprintf(format, args...))
	}
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &Room{
		conn:     conn,
		session:  s,
		recorder: recorder,
		tickRate: tickRate,
		cmds:     make(chan func(*Session), 16),
		done:     make(chan struct{}),
	}, nil
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	best, holder := 0, ""
	if r.recorder != nil {
		best, holder = r.recorder.BestScore()
	}
	t := r.session.Tuning()
	r.conn.SendPayload(ws.MsgGameStart, 0, ws.GameStartPayload{
		SessionID:  r.conn.ID,
		Nickname:   r.conn.Nickname,
		FieldWidth: t.Field.Width,
		FloorY:     t.Field.FloorY,
		Shots:      t.ShotsPerSession,
		Seconds:    t.SessionSeconds,
		TickRate:   r.tickRate,
		BestScore:  best,
		BestHolder: holder,
	})

	go r.readLoop(ctx)

	// Game loop closes done on exit
	go func() {
		defer close(r.done)
		r.gameLoop(ctx)
	}()
}

// Done returns a channel that closes when the room's game loop exits.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("%s disconnected", r.conn.ID)
				r.cancel()
				return
			}
			r.handleMessage(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(ctx context.Context, msg ws.Message) {
	codec := r.conn.Codec
	switch msg.Type {
	case ws.MsgLaunch:
		var p ws.LaunchPayload
		if err := codec.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		r.command(ctx, func(s *Session) {
			r.replyErr(s.Launch(p.VX, p.VY))
		})

	case ws.MsgAim:
		var p ws.AimPayload
		if err := codec.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		r.command(ctx, func(s *Session) {
			_, err := s.LaunchDrag(p.DX, p.DY)
			r.replyErr(err)
		})

	case ws.MsgReset:
		r.command(ctx, func(s *Session) {
			s.Reset()
		})

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := codec.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		r.conn.SendPayload(ws.MsgPong, msg.Tick, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
	}
}

func (r *Room) command(ctx context.Context, fn func(*Session)) {
	select {
	case r.cmds <- fn:
	case <-ctx.Done():
	}
}

func (r *Room) replyErr(err error) {
	if err == nil {
		return
	}
	r.conn.SendPayload(ws.MsgError, r.session.TickCount(), ws.ErrorPayload{Error: err.Error()})
}

func (r *Room) gameLoop(ctx context.Context) {
	ticker := NewTicker(r.tickRate)
	defer ticker.Stop()

	Run(ctx, r.session, ticker.C, r.cmds, r.onFrame)

	// Loop has exited: no tick can observe the session any more.
	r.session.End()
	st := r.conn.Stats()
	log.Printf("%s: loop stopped at tick %d (sent %d, dropped %d, superseded %d)",
		r.conn.ID, r.session.TickCount(), st.Sent, st.Dropped, st.Superseded)
}

func (r *Room) onFrame(events []Event, snap Snapshot) {
	for _, e := range events {
		switch e.Kind {
		case EventScored, EventMissed:
			r.conn.SendPayload(ws.MsgShot, snap.Tick, ws.ShotPayload{
				Result: e.Result.String(),
				Score:  e.Score,
			})
		case EventAnnounce:
			r.conn.SendPayload(ws.MsgAnnounce, snap.Tick, ws.AnnouncePayload{
				Text:       e.Text,
				DurationMs: e.DurationMs(),
			})
		case EventSessionOver:
			r.sessionOver(e, snap)
		}
	}
	r.conn.SendPayload(ws.MsgGameState, snap.Tick, snap)
}

func (r *Room) sessionOver(e Event, snap Snapshot) {
	newBest := false
	if r.recorder != nil {
		var err error
		newBest, err = r.recorder.Submit(r.conn.Nickname, snap.Score.Score, snap.Score.Made, snap.Score.Perfects)
		if err != nil {
			log.Printf("%s: record submit: %v", r.conn.ID, err)
		}
	}
	r.conn.SendPayload(ws.MsgSessionOver, snap.Tick, ws.SessionOverPayload{
		Reason:   e.Text,
		Score:    snap.Score.Score,
		Made:     snap.Score.Made,
		Perfects: snap.Score.Perfects,
		Missed:   snap.Score.Missed,
		NewBest:  newBest,
	})
}
