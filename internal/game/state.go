package game

import "time"

// Default tuning. Distances are canvas units, velocities are units per tick.
const (
	TickRate = 60

	Gravity            = float32(0.25)
	Bounce             = float32(0.6)
	RimCollisionRadius = float32(5)

	FieldWidth = float32(600)
	FloorY     = float32(400)

	BallRadius = float32(10)

	HoopX         = float32(450)
	HoopY         = float32(200)
	HoopWidth     = float32(64)
	HoopHeight    = float32(64)
	RimHeight     = float32(10)
	RimEdgeMargin = float32(5)
	PerfectMargin = float32(10)
	NormalMargin  = float32(2)
	FlashFrames   = 40

	PlayerX      = float32(60)
	PlayerY      = float32(266)
	PlayerWidth  = float32(64)
	PlayerHeight = float32(64)
	HandOffsetY  = float32(10)
	ShootFrames  = 10

	CheerFrames = 90

	ShotsPerSession = 10
	SessionSeconds  = 60

	DragScale      = float32(0.15)
	MaxLaunchSpeed = float32(18)

	ScoreResetDelay      = 400 * time.Millisecond
	MissResetDelay       = 200 * time.Millisecond
	PerfectDisplay       = 1000 * time.Millisecond
	AnnouncementDuration = 1000 * time.Millisecond
)

// Announcement texts.
const (
	TextPerfect = "Perfect Shot!"
	TextScore   = "Score!"
	TextMiss    = "Miss!"
	TextTimeUp  = "Time's up!"
	TextNoShots = "Out of shots!"
)

// ShotResult is the per-tick classification of an airborne ball.
type ShotResult uint8

const (
	ResultPending ShotResult = iota
	ResultPerfect
	ResultNormal
	ResultMiss
)

func (r ShotResult) String() string {
	switch r {
	case ResultPerfect:
		return "perfect"
	case ResultNormal:
		return "normal"
	case ResultMiss:
		return "miss"
	default:
		return "pending"
	}
}

// ShotPhase is the classifier state of the current shot.
type ShotPhase uint8

const (
	PhaseIdle ShotPhase = iota
	PhaseAirborne
	PhaseResetting
)

type Ball struct {
	X          float32 `json:"x" msgpack:"x"`
	Y          float32 `json:"y" msgpack:"y"`
	VX         float32 `json:"vx" msgpack:"vx"`
	VY         float32 `json:"vy" msgpack:"vy"`
	R          float32 `json:"r" msgpack:"r"`
	Shooting   bool    `json:"shooting" msgpack:"shooting"`
	JustScored bool    `json:"justScored" msgpack:"justScored"`
}

type Player struct {
	X             float32 `json:"x" msgpack:"x"`
	Y             float32 `json:"y" msgpack:"y"`
	W             float32 `json:"w" msgpack:"w"`
	H             float32 `json:"h" msgpack:"h"`
	ShootingFrame int     `json:"shootingFrame" msgpack:"shootingFrame"`
}

// Crowd cheers for a while after every made basket.
type Crowd struct {
	Cheering    bool    `json:"cheering" msgpack:"cheering"`
	CheerFrames int     `json:"cheerFrames" msgpack:"cheerFrames"`
	Bob         float32 `json:"bob" msgpack:"bob"`
}

type Score struct {
	Score             int       `json:"score" msgpack:"score"`
	ShotsLeft         int       `json:"shotsLeft" msgpack:"shotsLeft"`
	TimeLeft          int       `json:"timeLeft" msgpack:"timeLeft"`
	PerfectShot       bool      `json:"perfectShot" msgpack:"perfectShot"`
	Announcement      string    `json:"announcement" msgpack:"announcement"`
	AnnouncementUntil time.Time `json:"-" msgpack:"-"`
	Made              int       `json:"made" msgpack:"made"`
	Perfects          int       `json:"perfects" msgpack:"perfects"`
	Missed            int       `json:"missed" msgpack:"missed"`
}

// Field is the play area; a ball leaving it is a miss.
type Field struct {
	Width  float32
	FloorY float32
}

// Snapshot is the read-only view handed to renderers and the HUD.
type Snapshot struct {
	Tick   uint32    `json:"tick" msgpack:"tick"`
	Phase  ShotPhase `json:"phase" msgpack:"phase"`
	Ball   Ball      `json:"ball" msgpack:"ball"`
	Hoop   HoopView  `json:"hoop" msgpack:"hoop"`
	Player Player    `json:"player" msgpack:"player"`
	Crowd  Crowd     `json:"crowd" msgpack:"crowd"`
	Score  Score     `json:"score" msgpack:"score"`
	Over   bool      `json:"over" msgpack:"over"`
}

// HoopView is the drawable part of the hoop.
type HoopView struct {
	X           float32 `json:"x" msgpack:"x"`
	Y           float32 `json:"y" msgpack:"y"`
	W           float32 `json:"w" msgpack:"w"`
	H           float32 `json:"h" msgpack:"h"`
	RimHeight   float32 `json:"rimHeight" msgpack:"rimHeight"`
	FlashFrames int     `json:"flashFrames" msgpack:"flashFrames"`
}
