package desktop

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vladimirvolkov/hoopshot/internal/audio"
	"github.com/vladimirvolkov/hoopshot/internal/game"
)

var (
	colorCourt    = color.RGBA{R: 34, G: 40, B: 58, A: 255}
	colorFloor    = color.RGBA{R: 150, G: 102, B: 60, A: 255}
	colorBoard    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	colorRim      = color.RGBA{R: 230, G: 90, B: 30, A: 255}
	colorFlash    = color.RGBA{R: 255, G: 220, B: 60, A: 255}
	colorPlayer   = color.RGBA{R: 70, G: 140, B: 220, A: 255}
	colorShooting = color.RGBA{R: 120, G: 190, B: 255, A: 255}
	colorBall     = color.RGBA{R: 240, G: 130, B: 40, A: 255}
	colorCrowd    = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	colorCheer    = color.RGBA{R: 200, G: 120, B: 200, A: 255}
	colorAim      = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// Game is the ebiten client. Ebiten calls Update at the session tick rate,
// so each Update is one simulation frame.
type Game struct {
	session  *game.Session
	sound    *audio.Player
	recorder game.Recorder
	nickname string

	aim     aim
	power   int
	lastErr string
	best    int
	holder  string
	newBest bool
}

func New(s *game.Session, sound *audio.Player, recorder game.Recorder, nickname string) *Game {
	g := &Game{session: s, sound: sound, recorder: recorder, nickname: nickname}
	if recorder != nil {
		g.best, g.holder = recorder.BestScore()
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
		g.newBest = false
		g.lastErr = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.sound != nil {
		g.sound.SetMuted(!g.sound.Muted())
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.aim.press(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.release(x, y)
	default:
		g.aim.move(x, y)
	}

	g.step()
	return nil
}

// release launches the shot described by the finished drag.
func (g *Game) release(x, y int) {
	dx, dy, ok := g.aim.release(x, y)
	if !ok {
		return
	}
	power, err := g.session.LaunchDrag(dx, dy)
	if err != nil {
		g.lastErr = err.Error()
		return
	}
	g.lastErr = ""
	g.power = power
}

// step ticks the session and reacts to its events.
func (g *Game) step() {
	events := g.session.Tick()
	if g.sound != nil {
		g.sound.HandleEvents(events)
	}
	for _, e := range events {
		if e.Kind == game.EventSessionOver {
			g.submit()
		}
	}
}

func (g *Game) submit() {
	if g.recorder == nil {
		return
	}
	sc := g.session.Score()
	newBest, err := g.recorder.Submit(g.nickname, sc.Score, sc.Made, sc.Perfects)
	if err != nil {
		log.Printf("record submit: %v", err)
	}
	g.newBest = newBest
	g.best, g.holder = g.recorder.BestScore()
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	t := g.session.Tuning()

	screen.Fill(colorCourt)
	vector.DrawFilledRect(screen, 0, t.Field.FloorY-4, t.Field.Width, 4, colorFloor, false)

	g.drawCrowd(screen, snap.Crowd, t.Field.Width)
	g.drawHoop(screen, snap.Hoop)

	p := snap.Player
	pc := colorPlayer
	if p.ShootingFrame > 0 {
		pc = colorShooting
	}
	vector.DrawFilledRect(screen, p.X, p.Y, p.W, p.H, pc, false)

	b := snap.Ball
	vector.DrawFilledCircle(screen, b.X, b.Y, b.R, colorBall, true)

	if g.aim.active {
		dx, dy := g.aim.vector()
		vx, vy, power := game.AimVelocity(dx, dy, t.DragScale, t.MaxLaunchSpeed)
		vector.StrokeLine(screen, b.X, b.Y, b.X+vx*6, b.Y+vy*6, 2, colorAim, true)
		ebitenutil.DebugPrintAt(screen, "Power ["+game.PowerBar(power, 20)+"]", 10, 40)
	}

	g.drawHUD(screen, snap)
}

func (g *Game) drawHoop(screen *ebiten.Image, h game.HoopView) {
	vector.DrawFilledRect(screen, h.X+h.W-6, h.Y-h.H, 6, h.H+h.RimHeight, colorBoard, false)
	rim := colorRim
	if h.FlashFrames > 0 && (h.FlashFrames/5)%2 == 0 {
		rim = colorFlash
	}
	lx, rx, y := g.session.Hoop().Edges()
	vector.StrokeLine(screen, lx, y, rx, y, 3, rim, true)
	vector.StrokeLine(screen, h.X, h.Y, lx, y, 1, rim, true)
	vector.StrokeLine(screen, h.X+h.W, h.Y, rx, y, 1, rim, true)
	// net
	for i := float32(0); i <= 4; i++ {
		x := lx + (rx-lx)*i/4
		vector.StrokeLine(screen, x, y, lx+(rx-lx)/2, y+h.H-h.RimHeight, 1, colorBoard, true)
	}
}

func (g *Game) drawCrowd(screen *ebiten.Image, c game.Crowd, width float32) {
	col := colorCrowd
	jump := float32(0)
	if c.Cheering {
		col = colorCheer
		jump = float32(c.CheerFrames%10) - 5
	}
	for x := float32(20); x < width; x += 30 {
		vector.DrawFilledCircle(screen, x, 30+c.Bob+jump, 8, col, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	ebitenutil.DebugPrintAt(screen, game.StatusLine(snap.Score), 10, 10)
	if best := game.BestLine(g.best, g.holder); best != "" {
		ebitenutil.DebugPrintAt(screen, best, 10, 24)
	}
	if snap.Score.Announcement != "" {
		ebitenutil.DebugPrintAt(screen, snap.Score.Announcement, int(g.session.Tuning().Field.Width)/2-40, 80)
	}
	if g.power > 0 && !g.aim.active {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last shot %d%%", g.power), 10, 40)
	}
	if g.lastErr != "" {
		ebitenutil.DebugPrintAt(screen, g.lastErr, 10, 56)
	}
	if snap.Over {
		msg := "Press R to play again"
		if g.newBest {
			msg = "New best! " + msg
		}
		ebitenutil.DebugPrintAt(screen, msg, int(g.session.Tuning().Field.Width)/2-70, 100)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	t := g.session.Tuning()
	return int(t.Field.Width), int(t.Field.FloorY)
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string, scale int) error {
	t := g.session.Tuning()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(t.Field.Width)*scale, int(t.Field.FloorY)*scale)
	ebiten.SetTPS(game.TickRate)
	return ebiten.RunGame(g)
}
