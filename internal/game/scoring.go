package game

// Classify inspects an airborne ball against the rim. The first matching
// outcome wins: perfect, normal, miss, pending. A ball in its settle window
// (JustScored) is never a miss.
func Classify(b Ball, h *Hoop, f Field) ShotResult {
	switch {
	case h.InPerfect(b.X, b.Y):
		return ResultPerfect
	case h.InNormal(b.X, b.Y):
		return ResultNormal
	case !b.JustScored && OutOfField(b, f):
		return ResultMiss
	default:
		return ResultPending
	}
}

// OutOfField reports whether the ball center has left the play area.
func OutOfField(b Ball, f Field) bool {
	return b.Y > f.FloorY || b.X < 0 || b.X > f.Width
}

// applyResult mutates score state for a terminal result and schedules the
// reset. It is called at most once per shot.
func (s *Session) applyResult(r ShotResult) {
	now := s.clock.Now()
	t := &s.tuning
	switch r {
	case ResultPerfect, ResultNormal:
		s.score.Score++
		s.score.Made++
		s.hoop.Flash(t.FlashFrames)
		s.ball.JustScored = true
		Cheer(&s.crowd, t.CheerFrames)
		text := TextScore
		if r == ResultPerfect {
			s.score.Perfects++
			s.score.PerfectShot = true
			s.sched.Schedule(taskPerfectClear, now.Add(t.PerfectDisplay), func() {
				s.score.PerfectShot = false
			})
			text = TextPerfect
		}
		s.emit(Event{Kind: EventScored, Result: r, Score: s.score.Score})
		s.Announce(text, t.AnnouncementDuration)
		s.scheduleReset(now.Add(t.ScoreResetDelay))
		s.logf("SCORED: %s at (%.1f,%.1f) score=%d", r, s.ball.X, s.ball.Y, s.score.Score)
	case ResultMiss:
		s.score.Missed++
		s.emit(Event{Kind: EventMissed, Result: r, Score: s.score.Score})
		s.Announce(TextMiss, t.AnnouncementDuration)
		s.scheduleReset(now.Add(t.MissResetDelay))
		s.logf("MISS: ball left field at (%.1f,%.1f)", s.ball.X, s.ball.Y)
	default:
		return
	}
	s.phase = PhaseResetting
}
