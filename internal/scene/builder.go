package scene

import (
	"sync"

	"qbloch/internal/session"
)

// Builder keeps the scene of a session up to date. Session events only
// mark it dirty; the scene is rebuilt on the next call to Scene.
type Builder struct {
	src *session.Session

	mu      sync.Mutex
	cfg     Config
	dirty   bool
	version uint64
	scene   Scene
	err     error
}

// NewBuilder subscribes to s and starts dirty.
func NewBuilder(s *session.Session, cfg Config) *Builder {
	b := &Builder{src: s, cfg: cfg, dirty: true, version: 1}
	for _, et := range []session.EventType{
		session.EventGateChanged,
		session.EventStateChanged,
		session.EventHistoryChanged,
	} {
		s.On(et, func(session.Event) { b.Invalidate() })
	}
	return b
}

// Invalidate forces a rebuild and bumps the version.
func (b *Builder) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = true
	b.version++
}

// SetConfig replaces the sampling config and invalidates.
func (b *Builder) SetConfig(cfg Config) {
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	b.Invalidate()
}

// Config returns the current sampling config.
func (b *Builder) Config() Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

// Version changes every time the scene becomes stale. The UI restarts the
// animation when it sees a new one.
func (b *Builder) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Dirty reports whether the next Scene call rebuilds.
func (b *Builder) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Scene returns the current scene, rebuilding it if the session changed.
// A failed build is cached until the next change.
func (b *Builder) Scene() (Scene, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dirty {
		b.scene, b.err = Build(b.src.Frame(), b.cfg)
		b.dirty = false
	}
	return b.scene, b.err
}
