package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vladimirvolkov/hoopshot/internal/game"
)

// SampleRate is the rate cues are synthesized at.
const SampleRate = beep.SampleRate(44100)

// Cue is a short sound tied to a game event.
type Cue int

const (
	CueNone Cue = iota
	CueLaunch
	CueRim
	CueScore
	CuePerfect
	CueMiss
	CueOver
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

type note struct {
	freq float64
	dur  time.Duration
	wave wave
}

var cueNotes = map[Cue][]note{
	CueLaunch:  {{330, 60 * time.Millisecond, waveSine}},
	CueRim:     {{180, 50 * time.Millisecond, waveSquare}},
	CueScore:   {{523.25, 90 * time.Millisecond, waveSine}, {659.25, 120 * time.Millisecond, waveSine}},
	CuePerfect: {{523.25, 80 * time.Millisecond, waveSine}, {659.25, 80 * time.Millisecond, waveSine}, {783.99, 160 * time.Millisecond, waveSine}},
	CueMiss:    {{220, 120 * time.Millisecond, waveSaw}, {165, 180 * time.Millisecond, waveSaw}},
	CueOver:    {{392, 150 * time.Millisecond, waveSquare}, {330, 150 * time.Millisecond, waveSquare}, {262, 300 * time.Millisecond, waveSquare}},
}

// CueFor maps a game event to its sound, or CueNone.
func CueFor(e game.Event) Cue {
	switch e.Kind {
	case game.EventShotLaunched:
		return CueLaunch
	case game.EventRimHit:
		return CueRim
	case game.EventScored:
		if e.Result == game.ResultPerfect {
			return CuePerfect
		}
		return CueScore
	case game.EventMissed:
		return CueMiss
	case game.EventSessionOver:
		return CueOver
	}
	return CueNone
}

// Duration is the total length of a cue.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// Stream synthesizes c at sr, attenuated by volume (0..1). Returns nil for
// CueNone or a silent volume.
func Stream(c Cue, sr beep.SampleRate, volume float64) beep.Streamer {
	notes := cueNotes[c]
	if len(notes) == 0 || volume <= 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n, sr)
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(math.Min(volume, 1)),
	}
}

// tone is one enveloped note: 5ms attack, linear release over the last third.
type tone struct {
	note    note
	sr      beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
	phase   float64
}

func newTone(n note, sr beep.SampleRate) *tone {
	total := sr.N(n.dur)
	return &tone{
		note:    n,
		sr:      sr,
		total:   total,
		attack:  sr.N(5 * time.Millisecond),
		release: total / 3,
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.note.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		}
		v *= t.gain() * 0.4
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.note.freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if rel := t.total - t.pos; t.release > 0 && rel < t.release {
		return float64(rel) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }
