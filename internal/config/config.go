package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vladimirvolkov/hoopshot/internal/game"
	"github.com/vladimirvolkov/hoopshot/internal/ws"
)

// EnvConfigPath names the config file when no path is given.
const EnvConfigPath = "HOOPSHOT_CONFIG"

// Config is the full server and game configuration. Files may be YAML or
// TOML; durations are given in milliseconds.
type Config struct {
	Port           string   `yaml:"port" toml:"port"`
	StaticDir      string   `yaml:"staticDir" toml:"static_dir"`
	AllowedOrigins []string `yaml:"allowedOrigins" toml:"allowed_origins"`
	MaxSessions    int      `yaml:"maxSessions" toml:"max_sessions"`
	MaxConnsPerIP  int      `yaml:"maxConnsPerIP" toml:"max_conns_per_ip"`
	MsgRate        int      `yaml:"msgRate" toml:"msg_rate"`
	TrustProxy     bool     `yaml:"trustProxy" toml:"trust_proxy"`
	Codec          string   `yaml:"codec" toml:"codec"`
	TickRate       int      `yaml:"tickRate" toml:"tick_rate"`
	RecordsApp     string   `yaml:"recordsApp" toml:"records_app"`

	Game GameConfig `yaml:"game" toml:"game"`
}

type GameConfig struct {
	Gravity            float32 `yaml:"gravity" toml:"gravity"`
	Bounce             float32 `yaml:"bounce" toml:"bounce"`
	RimCollisionRadius float32 `yaml:"rimCollisionRadius" toml:"rim_collision_radius"`
	BallRadius         float32 `yaml:"ballRadius" toml:"ball_radius"`
	FieldWidth         float32 `yaml:"fieldWidth" toml:"field_width"`
	FloorY             float32 `yaml:"floorY" toml:"floor_y"`

	Hoop   HoopConfig   `yaml:"hoop" toml:"hoop"`
	Player PlayerConfig `yaml:"player" toml:"player"`

	FlashFrames     int     `yaml:"flashFrames" toml:"flash_frames"`
	ShootFrames     int     `yaml:"shootFrames" toml:"shoot_frames"`
	CheerFrames     int     `yaml:"cheerFrames" toml:"cheer_frames"`
	ShotsPerSession int     `yaml:"shotsPerSession" toml:"shots_per_session"`
	SessionSeconds  int     `yaml:"sessionSeconds" toml:"session_seconds"`
	DragScale       float32 `yaml:"dragScale" toml:"drag_scale"`
	MaxLaunchSpeed  float32 `yaml:"maxLaunchSpeed" toml:"max_launch_speed"`

	ScoreResetMs   int `yaml:"scoreResetMs" toml:"score_reset_ms"`
	MissResetMs    int `yaml:"missResetMs" toml:"miss_reset_ms"`
	PerfectMs      int `yaml:"perfectMs" toml:"perfect_ms"`
	AnnouncementMs int `yaml:"announcementMs" toml:"announcement_ms"`
}

type HoopConfig struct {
	X             float32 `yaml:"x" toml:"x"`
	Y             float32 `yaml:"y" toml:"y"`
	W             float32 `yaml:"w" toml:"w"`
	H             float32 `yaml:"h" toml:"h"`
	RimHeight     float32 `yaml:"rimHeight" toml:"rim_height"`
	EdgeMargin    float32 `yaml:"edgeMargin" toml:"edge_margin"`
	PerfectMargin float32 `yaml:"perfectMargin" toml:"perfect_margin"`
	NormalMargin  float32 `yaml:"normalMargin" toml:"normal_margin"`
}

type PlayerConfig struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	W float32 `yaml:"w" toml:"w"`
	H float32 `yaml:"h" toml:"h"`
}

// Default returns the built-in configuration.
func Default() *Config {
	t := game.DefaultTuning()
	return &Config{
		Port:          "8080",
		StaticDir:     "./web",
		MaxSessions:   100,
		MaxConnsPerIP: 4,
		MsgRate:       120,
		Codec:         "json",
		TickRate:      game.TickRate,
		RecordsApp:    "hoopshot",
		Game: GameConfig{
			Gravity:            t.Gravity,
			Bounce:             t.Bounce,
			RimCollisionRadius: t.RimCollisionRadius,
			BallRadius:         t.BallRadius,
			FieldWidth:         t.Field.Width,
			FloorY:             t.Field.FloorY,
			Hoop: HoopConfig{
				X:             t.Hoop.X,
				Y:             t.Hoop.Y,
				W:             t.Hoop.W,
				H:             t.Hoop.H,
				RimHeight:     t.Hoop.RimHeight,
				EdgeMargin:    t.Hoop.EdgeMargin,
				PerfectMargin: t.Hoop.PerfectMargin,
				NormalMargin:  t.Hoop.NormalMargin,
			},
			Player:          PlayerConfig{X: t.Player.X, Y: t.Player.Y, W: t.Player.W, H: t.Player.H},
			FlashFrames:     t.FlashFrames,
			ShootFrames:     t.ShootFrames,
			CheerFrames:     t.CheerFrames,
			ShotsPerSession: t.ShotsPerSession,
			SessionSeconds:  t.SessionSeconds,
			DragScale:       t.DragScale,
			MaxLaunchSpeed:  t.MaxLaunchSpeed,
			ScoreResetMs:    int(t.ScoreResetDelay / time.Millisecond),
			MissResetMs:     int(t.MissResetDelay / time.Millisecond),
			PerfectMs:       int(t.PerfectDisplay / time.Millisecond),
			AnnouncementMs:  int(t.AnnouncementDuration / time.Millisecond),
		},
	}
}

// Load reads path (or $HOOPSHOT_CONFIG when path is empty) over the
// defaults, then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	return load(path, ".env", os.LookupEnv)
}

func load(path, envFile string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	// Real environment wins over .env
	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Port = v
	}
	if v, ok := lookup("STATIC_DIR"); ok && v != "" {
		c.StaticDir = v
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v, ok := lookup("MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_SESSIONS: %w", err)
		}
		c.MaxSessions = n
	}
	if v, ok := lookup("HOOPSHOT_CODEC"); ok && v != "" {
		c.Codec = v
	}
	return nil
}

// Validate checks server settings and the resulting game tuning.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is empty")
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("maxSessions must be positive, got %d", c.MaxSessions)
	}
	if c.MaxConnsPerIP <= 0 || c.MsgRate <= 0 {
		return errors.New("rate limits must be positive")
	}
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("tickRate must be in 1..240, got %d", c.TickRate)
	}
	if _, err := ws.CodecByName(c.Codec); err != nil {
		return err
	}
	return c.Tuning().Validate()
}

// Tuning converts the game section into simulation tuning.
func (c *Config) Tuning() game.Tuning {
	g := c.Game
	return game.Tuning{
		Gravity:            g.Gravity,
		Bounce:             g.Bounce,
		RimCollisionRadius: g.RimCollisionRadius,
		BallRadius:         g.BallRadius,
		Field:              game.Field{Width: g.FieldWidth, FloorY: g.FloorY},
		Hoop: game.HoopSpec{
			X:             g.Hoop.X,
			Y:             g.Hoop.Y,
			W:             g.Hoop.W,
			H:             g.Hoop.H,
			RimHeight:     g.Hoop.RimHeight,
			EdgeMargin:    g.Hoop.EdgeMargin,
			PerfectMargin: g.Hoop.PerfectMargin,
			NormalMargin:  g.Hoop.NormalMargin,
		},
		Player:               game.Player{X: g.Player.X, Y: g.Player.Y, W: g.Player.W, H: g.Player.H},
		FlashFrames:          g.FlashFrames,
		ShootFrames:          g.ShootFrames,
		CheerFrames:          g.CheerFrames,
		ShotsPerSession:      g.ShotsPerSession,
		SessionSeconds:       g.SessionSeconds,
		DragScale:            g.DragScale,
		MaxLaunchSpeed:       g.MaxLaunchSpeed,
		ScoreResetDelay:      ms(g.ScoreResetMs),
		MissResetDelay:       ms(g.MissResetMs),
		PerfectDisplay:       ms(g.PerfectMs),
		AnnouncementDuration: ms(g.AnnouncementMs),
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
