package game

import (
	"errors"
	"log"
	"time"
)

var (
	ErrShotInFlight  = errors.New("shot already in flight")
	ErrNoShotsLeft   = errors.New("no shots left")
	ErrSessionOver   = errors.New("session is over")
	ErrInvalidLaunch = errors.New("launch velocity is not finite")
)

// Session owns one game: ball, hoop, player, crowd, score and the deferred
// task queue. A Session is not safe for concurrent use; drive it from a
// single goroutine (tick loop and input handling alike).
type Session struct {
	tuning Tuning
	clock  Clock
	sched  *Scheduler
	hoop   *Hoop

	ball   Ball
	player Player
	crowd  Crowd
	score  Score
	phase  ShotPhase
	tick   uint32

	timeUp bool
	over   bool
	ended  bool

	events []Event

	// Logf receives transition logs. Defaults to log.Printf; nil mutes.
	Logf func(format string, args ...any)
}

func NewSession(t Tuning, clock Clock) (*Session, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	hoop, err := NewHoop(t.Hoop, t.RimCollisionRadius)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Session{
		tuning: t,
		clock:  clock,
		sched:  NewScheduler(),
		hoop:   hoop,
		Logf:   log.Printf,
	}
	s.init()
	return s, nil
}

func (s *Session) init() {
	t := &s.tuning
	s.ball = NewBall(t.BallRadius)
	s.player = NewPlayer(t.Player)
	s.crowd = Crowd{}
	s.score = Score{ShotsLeft: t.ShotsPerSession, TimeLeft: t.SessionSeconds}
	s.hoop.FlashFrames = 0
	s.phase = PhaseIdle
	s.timeUp = false
	s.over = false
	s.ended = false
	s.restBall()
	s.startCountdown(s.clock.Now())
}

func (s *Session) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Launch starts a shot from the player's hand with the given velocity.
func (s *Session) Launch(vx, vy float32) error {
	switch {
	case s.over || s.timeUp:
		return ErrSessionOver
	case s.ball.Shooting || s.phase != PhaseIdle:
		return ErrShotInFlight
	case s.score.ShotsLeft <= 0:
		return ErrNoShotsLeft
	case !finite(vx, vy):
		return ErrInvalidLaunch
	}
	s.restBall()
	s.ball.VX = vx
	s.ball.VY = vy
	s.ball.Shooting = true
	s.ball.JustScored = false
	s.phase = PhaseAirborne
	s.score.ShotsLeft--
	s.player.StartShot()
	s.emit(Event{Kind: EventShotLaunched, Score: s.score.Score})
	s.logf("SHOT: vx=%.2f vy=%.2f shotsLeft=%d", vx, vy, s.score.ShotsLeft)
	return nil
}

// LaunchDrag launches from a drag vector and returns the shot power.
func (s *Session) LaunchDrag(dx, dy float32) (int, error) {
	vx, vy, power := AimVelocity(dx, dy, s.tuning.DragScale, s.tuning.MaxLaunchSpeed)
	if err := s.Launch(vx, vy); err != nil {
		return 0, err
	}
	return power, nil
}

// Tick advances the simulation one frame and returns the events it produced.
// Order: deferred tasks, countdowns, integrate, rim collisions, classify;
// an idle ball follows the player's hand.
func (s *Session) Tick() []Event {
	if s.ended {
		return nil
	}
	s.tick++
	s.sched.Run(s.clock.Now())

	s.hoop.StepFlash()
	s.player.StepAnim(s.tuning.ShootFrames)
	StepCrowd(&s.crowd, s.tick)

	if s.ball.Shooting {
		s.stepShot()
	} else if !s.ball.JustScored {
		s.restBall()
	}

	events := s.events
	s.events = nil
	return events
}

func (s *Session) stepShot() {
	Integrate(&s.ball, s.tuning.Gravity)
	if !s.ball.Finite() {
		s.abortShot()
		return
	}
	if hits := s.hoop.Collide(&s.ball, s.tuning.Bounce); hits > 0 {
		s.emit(Event{Kind: EventRimHit, Score: s.score.Score})
	}
	if s.phase != PhaseAirborne {
		return
	}
	s.applyResult(Classify(s.ball, s.hoop, s.tuning.Field))
}

// abortShot resets immediately when the ball state is no longer numeric.
func (s *Session) abortShot() {
	s.logf("ABORT: non-finite ball state (%v,%v) v=(%v,%v)", s.ball.X, s.ball.Y, s.ball.VX, s.ball.VY)
	s.sched.Cancel(taskReset)
	s.emit(Event{Kind: EventShotAborted, Score: s.score.Score})
	s.resetShot()
}

func (s *Session) scheduleReset(at time.Time) {
	s.sched.Schedule(taskReset, at, s.resetShot)
}

// resetShot returns the ball to the player's hand. Runs once per shot.
func (s *Session) resetShot() {
	s.ball.Shooting = false
	s.ball.JustScored = false
	s.restBall()
	s.phase = PhaseIdle
	s.emit(Event{Kind: EventShotReset, Score: s.score.Score})
	switch {
	case s.timeUp:
		s.finish(TextTimeUp)
	case s.score.ShotsLeft <= 0:
		s.finish(TextNoShots)
	}
}

func (s *Session) restBall() {
	x, y := s.player.LaunchPoint()
	PlaceAt(&s.ball, x, y)
}

func (s *Session) startCountdown(from time.Time) {
	next := from.Add(time.Second)
	s.sched.Schedule(taskCountdown, next, func() {
		if s.score.TimeLeft > 0 {
			s.score.TimeLeft--
		}
		if s.score.TimeLeft > 0 {
			s.startCountdown(next)
			return
		}
		s.timeUp = true
		if s.phase == PhaseIdle {
			s.finish(TextTimeUp)
		}
	})
}

func (s *Session) finish(text string) {
	if s.over {
		return
	}
	s.over = true
	s.sched.Cancel(taskCountdown)
	s.Announce(text, s.tuning.AnnouncementDuration)
	s.emit(Event{Kind: EventSessionOver, Score: s.score.Score, Text: text})
	s.logf("SESSION OVER: %s score=%d made=%d perfects=%d", text, s.score.Score, s.score.Made, s.score.Perfects)
}

// Announce shows text for d. A newer announcement supersedes the pending
// clear of an older one.
func (s *Session) Announce(text string, d time.Duration) {
	s.score.Announcement = text
	s.score.AnnouncementUntil = s.clock.Now().Add(d)
	s.sched.Schedule(taskAnnounce, s.score.AnnouncementUntil, func() {
		s.score.Announcement = ""
	})
	s.emit(Event{Kind: EventAnnounce, Score: s.score.Score, Text: text, Duration: d})
}

// End stops the session. Pending deferred tasks are discarded and further
// ticks do nothing.
func (s *Session) End() {
	s.sched.Clear()
	s.ended = true
	s.over = true
	s.events = nil
}

// Reset starts a fresh session with the same tuning, discarding any
// deferred task from the previous one.
func (s *Session) Reset() {
	s.sched.Clear()
	s.events = nil
	s.init()
}

func (s *Session) Ball() Ball { return s.ball }
func (s *Session) Score() Score { return s.score }
func (s *Session) Phase() ShotPhase { return s.phase }
func (s *Session) Over() bool { return s.over }
func (s *Session) Hoop() *Hoop { return s.hoop }
func (s *Session) Tuning() Tuning { return s.tuning }
func (s *Session) TickCount() uint32 { return s.tick }
func (s *Session) Crowd() Crowd { return s.crowd }
func (s *Session) Player() Player { return s.player }
func (s *Session) Pending() int { return s.sched.Len() }

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:   s.tick,
		Phase:  s.phase,
		Ball:   s.ball,
		Hoop:   s.hoop.view(),
		Player: s.player,
		Crowd:  s.crowd,
		Score:  s.score,
		Over:   s.over,
	}
}
