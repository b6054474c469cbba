package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/hoopshot/internal/audio"
	"github.com/vladimirvolkov/hoopshot/internal/game"
)

const aimStep = 5

var (
	styleDefault  = tcell.StyleDefault
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleRim      = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleFlash    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBoard    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleBall     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleCrowd    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCheer    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleAnnounce = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// App is the terminal client. Keys become session commands, so the session
// and all App state below are only touched from the game.Run goroutine.
type App struct {
	screen   tcell.Screen
	session  *game.Session
	sound    *audio.Player
	recorder game.Recorder
	nickname string

	// throw vector in drag units; the launch drag is its opposite
	aimX, aimY float32
	power      int
	lastErr    string
	best       int
	holder     string
	newBest    bool
}

func New(screen tcell.Screen, s *game.Session, sound *audio.Player, recorder game.Recorder, nickname string) *App {
	a := &App{
		screen:   screen,
		session:  s,
		sound:    sound,
		recorder: recorder,
		nickname: nickname,
		aimX:     50,
		aimY:     -60,
	}
	if recorder != nil {
		a.best, a.holder = recorder.BestScore()
	}
	a.updatePower()
	return a
}

// Run drives the session at the tick rate until ctx is done or the user
// quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmds := make(chan func(*game.Session), 16)
	go a.pollInput(ctx, cancel, cmds)

	ticker := game.NewTicker(game.TickRate)
	defer ticker.Stop()
	game.Run(ctx, a.session, ticker.C, cmds, a.onFrame)
	return nil
}

func (a *App) pollInput(ctx context.Context, quit context.CancelFunc, cmds chan<- func(*game.Session)) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			quit()
			return
		}
		var cmd func(*game.Session)
		switch ev := ev.(type) {
		case *tcell.EventKey:
			var stop bool
			cmd, stop = a.handleKey(ev.Key(), ev.Rune())
			if stop {
				quit()
				return
			}
		case *tcell.EventResize:
			cmd = func(*game.Session) { a.screen.Sync() }
		}
		if cmd == nil {
			continue
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

// handleKey maps a key to a session command. stop reports a quit request.
func (a *App) handleKey(key tcell.Key, r rune) (cmd func(*game.Session), stop bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyLeft:
		return a.nudge(-aimStep, 0), false
	case tcell.KeyRight:
		return a.nudge(aimStep, 0), false
	case tcell.KeyUp:
		return a.nudge(0, -aimStep), false
	case tcell.KeyDown:
		return a.nudge(0, aimStep), false
	case tcell.KeyRune:
	default:
		return nil, false
	}
	switch r {
	case 'q':
		return nil, true
	case ' ':
		return a.launch, false
	case 'r':
		return func(s *game.Session) {
			s.Reset()
			a.newBest = false
			a.lastErr = ""
		}, false
	case 'm':
		return func(*game.Session) {
			if a.sound != nil {
				a.sound.SetMuted(!a.sound.Muted())
			}
		}, false
	}
	return nil, false
}

func (a *App) nudge(dx, dy float32) func(*game.Session) {
	return func(*game.Session) {
		a.aimX += dx
		a.aimY += dy
		a.updatePower()
	}
}

func (a *App) updatePower() {
	t := a.session.Tuning()
	_, _, a.power = game.AimVelocity(-a.aimX, -a.aimY, t.DragScale, t.MaxLaunchSpeed)
}

func (a *App) launch(s *game.Session) {
	if _, err := s.LaunchDrag(-a.aimX, -a.aimY); err != nil {
		a.lastErr = err.Error()
		return
	}
	a.lastErr = ""
}

func (a *App) onFrame(events []game.Event, snap game.Snapshot) {
	if a.sound != nil {
		a.sound.HandleEvents(events)
	}
	for _, e := range events {
		if e.Kind == game.EventSessionOver {
			a.submit(snap.Score)
		}
	}
	a.draw(snap)
}

func (a *App) submit(sc game.Score) {
	if a.recorder == nil {
		return
	}
	newBest, err := a.recorder.Submit(a.nickname, sc.Score, sc.Made, sc.Perfects)
	if err != nil {
		log.Printf("record submit: %v", err)
	}
	a.newBest = newBest
	a.best, a.holder = a.recorder.BestScore()
}

func (a *App) draw(snap game.Snapshot) {
	a.screen.Clear()
	w, h := a.screen.Size()
	if w < 20 || h < 8 {
		a.text(0, 0, "terminal too small", styleHUD)
		a.screen.Show()
		return
	}
	v := newView(a.session.Tuning().Field, w, h)

	a.drawCrowd(v, snap.Crowd, w)
	a.drawHoop(v, snap.Hoop)

	p := snap.Player
	c0, r0 := v.cell(p.X, p.Y)
	c1, r1 := v.cell(p.X+p.W, p.Y+p.H)
	glyph := '█'
	if p.ShootingFrame > 0 {
		glyph = '▓'
	}
	for r := r0; r < max(r1, r0+1); r++ {
		for c := c0; c < max(c1, c0+1); c++ {
			a.put(c, r, glyph, stylePlayer)
		}
	}

	for c := 0; c < w; c++ {
		a.put(c, v.floorRow, '▀', styleFloor)
	}

	bc, br := v.cell(snap.Ball.X, snap.Ball.Y)
	a.put(bc, br, 'o', styleBall)

	a.drawHUD(snap, w, h)
	a.screen.Show()
}

func (a *App) drawHoop(v view, h game.HoopView) {
	style := styleRim
	if h.FlashFrames > 0 && (h.FlashFrames/5)%2 == 0 {
		style = styleFlash
	}
	lx, rx, y := a.session.Hoop().Edges()
	c0, row := v.cell(lx, y)
	c1, _ := v.cell(rx, y)
	for c := c0; c <= c1; c++ {
		a.put(c, row, '=', style)
	}
	bc, top := v.cell(h.X+h.W, h.Y-h.H)
	for r := top; r <= row; r++ {
		a.put(bc, r, '|', styleBoard)
	}
	_, netRow := v.cell(lx, y+h.H-h.RimHeight)
	for r := row + 1; r <= netRow && r < v.floorRow; r++ {
		a.put(c0+(r-row), r, '\\', styleBoard)
		a.put(c1-(r-row), r, '/', styleBoard)
	}
}

func (a *App) drawCrowd(v view, c game.Crowd, w int) {
	style, glyph := styleCrowd, 'o'
	row := 2
	if c.Bob > 1 {
		row = 1
	}
	if c.Cheering {
		style, glyph = styleCheer, 'Y'
		if c.CheerFrames%10 < 5 {
			row = 1
		}
	}
	for col := 1; col < w; col += 3 {
		a.put(col, row, glyph, style)
	}
}

func (a *App) drawHUD(snap game.Snapshot, w, h int) {
	a.text(0, 0, game.StatusLine(snap.Score), styleHUD)
	if best := game.BestLine(a.best, a.holder); best != "" {
		a.text(w-len(best)-1, 0, best, styleHUD)
	}
	if s := snap.Score.Announcement; s != "" {
		a.text((w-len(s))/2, 4, " "+s+" ", styleAnnounce)
	}
	bottom := fmt.Sprintf("Aim (%+.0f,%+.0f) Power [%s] %3d%%  arrows aim, space shoot, r reset, m mute, q quit",
		a.aimX, a.aimY, game.PowerBar(a.power, 10), a.power)
	a.text(0, h-1, bottom, styleDefault)
	if a.lastErr != "" {
		a.text(0, h-2, a.lastErr, styleHUD)
	}
	if snap.Over {
		msg := "Press r to play again"
		if a.newBest {
			msg = "New best! " + msg
		}
		a.text((w-len(msg))/2, 5, msg, styleHUD)
	}
}

func (a *App) put(x, y int, r rune, style tcell.Style) {
	w, h := a.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	a.screen.SetContent(x, y, r, nil, style)
}

func (a *App) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		a.put(x+i, y, r, style)
	}
}
