package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg advances the animation of generation gen.
type frameMsg struct {
	gen uint64
}

// player steps through the frames of the current scene on tea.Tick. Every
// start begins a new generation; ticks of older generations are dropped,
// so only the newest animation runs.
type player struct {
	gen    uint64
	frame  int
	frames int

	duration time.Duration
	pause    time.Duration
	step     time.Duration
	wait     time.Duration // delay of the tick in flight
}

func newPlayer(duration, pause time.Duration) player {
	return player{duration: duration, pause: pause}
}

// start restarts from frame 0. With no frames nothing is scheduled.
func (p *player) start(frames int) tea.Cmd {
	p.gen++
	p.frame = 0
	p.frames = frames
	if frames < 1 {
		p.wait = 0
		return nil
	}
	p.step = max(p.duration/time.Duration(frames), time.Millisecond)
	p.wait = p.step
	if frames == 1 {
		p.wait = p.pause
	}
	return p.tick()
}

// update advances one frame. It returns nil for a stale tick.
func (p *player) update(msg frameMsg) tea.Cmd {
	if msg.gen != p.gen || p.frames < 1 {
		return nil
	}
	if p.frame >= p.frames-1 {
		p.frame = 0
	} else {
		p.frame++
	}
	p.wait = p.step
	if p.frame == p.frames-1 {
		p.wait = p.pause
	}
	return p.tick()
}

func (p *player) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(max(p.wait, time.Millisecond), func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}
