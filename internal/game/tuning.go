package game

import (
	"errors"
	"fmt"
	"time"
)

// Tuning holds every constant the simulation reads. DefaultTuning mirrors
// the package constants.
type Tuning struct {
	Gravity            float32
	Bounce             float32
	RimCollisionRadius float32
	BallRadius         float32
	Field              Field
	Hoop               HoopSpec
	Player             Player
	FlashFrames        int
	ShootFrames        int
	CheerFrames        int
	ShotsPerSession    int
	SessionSeconds     int
	DragScale          float32
	MaxLaunchSpeed     float32

	ScoreResetDelay      time.Duration
	MissResetDelay       time.Duration
	PerfectDisplay       time.Duration
	AnnouncementDuration time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:            Gravity,
		Bounce:             Bounce,
		RimCollisionRadius: RimCollisionRadius,
		BallRadius:         BallRadius,
		Field:              Field{Width: FieldWidth, FloorY: FloorY},
		Hoop: HoopSpec{
			X:             HoopX,
			Y:             HoopY,
			W:             HoopWidth,
			H:             HoopHeight,
			RimHeight:     RimHeight,
			EdgeMargin:    RimEdgeMargin,
			PerfectMargin: PerfectMargin,
			NormalMargin:  NormalMargin,
		},
		Player:               Player{X: PlayerX, Y: PlayerY, W: PlayerWidth, H: PlayerHeight},
		FlashFrames:          FlashFrames,
		ShootFrames:          ShootFrames,
		CheerFrames:          CheerFrames,
		ShotsPerSession:      ShotsPerSession,
		SessionSeconds:       SessionSeconds,
		DragScale:            DragScale,
		MaxLaunchSpeed:       MaxLaunchSpeed,
		ScoreResetDelay:      ScoreResetDelay,
		MissResetDelay:       MissResetDelay,
		PerfectDisplay:       PerfectDisplay,
		AnnouncementDuration: AnnouncementDuration,
	}
}

var ErrBadTuning = errors.New("invalid tuning")

// Validate rejects configurations the simulation cannot run on. Hoop
// geometry is checked by NewHoop.
func (t Tuning) Validate() error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadTuning, err)
	}
	if _, err := NewHoop(t.Hoop, t.RimCollisionRadius); err != nil {
		return err
	}
	return nil
}

func (t Tuning) validate() error {
	if !finite(t.Gravity, t.Bounce, t.BallRadius, t.Field.Width, t.Field.FloorY, t.DragScale, t.MaxLaunchSpeed) {
		return errors.New("non-finite value")
	}
	switch {
	case t.Gravity <= 0:
		return fmt.Errorf("gravity must be positive, got %v", t.Gravity)
	case t.Bounce <= 0 || t.Bounce >= 1:
		return fmt.Errorf("bounce must be in (0,1), got %v", t.Bounce)
	case t.BallRadius <= 0:
		return fmt.Errorf("ball radius must be positive, got %v", t.BallRadius)
	case t.Field.Width <= 0 || t.Field.FloorY <= 0:
		return fmt.Errorf("field %vx%v is empty", t.Field.Width, t.Field.FloorY)
	case t.ShotsPerSession <= 0:
		return fmt.Errorf("shots per session must be positive, got %d", t.ShotsPerSession)
	case t.SessionSeconds <= 0:
		return fmt.Errorf("session seconds must be positive, got %d", t.SessionSeconds)
	case t.FlashFrames < 0 || t.ShootFrames < 0 || t.CheerFrames < 0:
		return errors.New("frame counts must not be negative")
	case t.DragScale <= 0 || t.MaxLaunchSpeed <= 0:
		return errors.New("drag scale and max launch speed must be positive")
	}
	for _, d := range []time.Duration{t.ScoreResetDelay, t.MissResetDelay, t.PerfectDisplay, t.AnnouncementDuration} {
		if d < 0 {
			return fmt.Errorf("negative delay %v", d)
		}
	}
	return nil
}
