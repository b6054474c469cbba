package audio

import (
	"testing"

	"github.com/gopxl/beep"

	"github.com/vladimirvolkov/hoopshot/internal/game"
)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestCueFor(t *testing.T) {
	cases := []struct {
		e    game.Event
		want Cue
	}{
		{game.Event{Kind: game.EventShotLaunched}, CueLaunch},
		{game.Event{Kind: game.EventRimHit}, CueRim},
		{game.Event{Kind: game.EventScored, Result: game.ResultPerfect}, CuePerfect},
		{game.Event{Kind: game.EventScored, Result: game.ResultNormal}, CueScore},
		{game.Event{Kind: game.EventMissed, Result: game.ResultMiss}, CueMiss},
		{game.Event{Kind: game.EventSessionOver}, CueOver},
		{game.Event{Kind: game.EventAnnounce}, CueNone},
		{game.Event{Kind: game.EventShotReset}, CueNone},
	}
	for _, tc := range cases {
		if got := CueFor(tc.e); got != tc.want {
			t.Errorf("CueFor(%v) = %v, want %v", tc.e.Kind, got, tc.want)
		}
	}
}

func TestCueStreamsFullDurationInRange(t *testing.T) {
	sr := beep.SampleRate(8000)
	for _, c := range []Cue{CueLaunch, CueRim, CueScore, CuePerfect, CueMiss, CueOver} {
		samples := drain(t, Stream(c, sr, 1))

		want := 0
		for _, n := range cueNotes[c] {
			want += sr.N(n.dur)
		}
		if len(samples) != want {
			t.Errorf("cue %d: %d samples, want %d", c, len(samples), want)
		}
		loud := false
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("cue %d sample %d = %v", c, i, s)
			}
			if s[0] > 0.1 || s[0] < -0.1 {
				loud = true
			}
		}
		if !loud {
			t.Errorf("cue %d is silent", c)
		}
	}
}

func TestStreamSilentCases(t *testing.T) {
	if Stream(CueNone, SampleRate, 1) != nil {
		t.Error("CueNone produced a stream")
	}
	if Stream(CueScore, SampleRate, 0) != nil {
		t.Error("zero volume produced a stream")
	}
}

func TestToneEnvelopeStartsAndEndsQuiet(t *testing.T) {
	sr := beep.SampleRate(8000)
	samples := drain(t, newTone(note{freq: 440, dur: Duration(CueMiss) / 2, wave: waveSquare}, sr))
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", samples[0][0])
	}
	last := samples[len(samples)-1][0]
	if last > 0.05 || last < -0.05 {
		t.Errorf("last sample = %v, want near 0", last)
	}
}

func TestPlayerWithoutSpeakerIsNoop(t *testing.T) {
	p := NewPlayer(0.8)
	p.HandleEvents([]game.Event{{Kind: game.EventScored, Result: game.ResultPerfect}})
	if p.mixer.Len() != 0 {
		t.Fatalf("mixer has %d streamers before Init", p.mixer.Len())
	}
	p.SetMuted(true)
	if !p.Muted() {
		t.Fatal("SetMuted(true) not kept")
	}
	p.Close()
}
