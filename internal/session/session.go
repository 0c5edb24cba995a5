// Package session owns the live (gate, state) pair, its undo history and
// the change notifications the editor and the renderer rely on.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"qbloch/internal/qubit"
)

// EventType identifies what changed in a session.
type EventType int

const (
	EventGateChanged EventType = iota
	EventStateChanged
	EventHistoryChanged
)

func (e EventType) String() string {
	switch e {
	case EventGateChanged:
		return "gate"
	case EventStateChanged:
		return "state"
	case EventHistoryChanged:
		return "history"
	default:
		return "unknown"
	}
}

// Event carries a copy of the pair as it was right after the change.
type Event struct {
	Type  EventType
	Gate  qubit.Gate
	State qubit.State
}

// Listener is called for every event it was registered for.
type Listener func(Event)

// Config configures a Session.
type Config struct {
	// HistorySize bounds the undo history; zero selects DefaultHistorySize.
	HistorySize int
	// A zero Gate selects the identity and a zero State selects |0>.
	Gate   qubit.Gate
	State  qubit.State
	Logger *log.Logger
}

// Frame is a consistent view of everything a renderer needs.
type Frame struct {
	Gate    qubit.Gate
	State   qubit.State
	History []Snapshot
}

// Session holds exactly one live gate and one live state. Both are updated
// in place; readers get copies. All mutation is serialised by mu and
// listeners run after it is released.
type Session struct {
	mu      sync.Mutex
	gate    qubit.Gate
	state   qubit.State
	history *History

	listeners map[EventType][]Listener
	log       *log.Logger

	now func() time.Time
}

// New creates a session from cfg.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	gate, state := cfg.Gate, cfg.State
	if gate.Matrix() == (qubit.Matrix{}) {
		gate = qubit.NewGate()
	}
	if state.Vector() == (qubit.Vector{}) {
		state = qubit.NewState()
	}
	return &Session{
		gate:      gate,
		state:     state,
		history:   NewHistory(cfg.HistorySize),
		listeners: make(map[EventType][]Listener),
		log:       logger.WithPrefix("session"),
		now:       time.Now,
	}
}

// On registers a listener for the given event type.
func (s *Session) On(event EventType, listener Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Gate returns a copy of the current gate.
func (s *Session) Gate() qubit.Gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate
}

// State returns a copy of the current state.
func (s *Session) State() qubit.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns the stored snapshots, oldest first.
func (s *Session) History() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// Frame returns gate, state and history read under a single lock.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Frame{Gate: s.gate, State: s.state, History: s.history.Entries()}
}

// UpdateGate overwrites the gate matrix. With pushHistory the current pair
// is snapshotted first.
func (s *Session) UpdateGate(g qubit.Gate, pushHistory bool) {
	s.mu.Lock()
	var events []EventType
	if pushHistory {
		s.pushLocked()
		events = append(events, EventHistoryChanged)
	}
	s.gate.SetMatrix(g.Matrix())
	events = append(events, EventGateChanged)
	s.log.Debug("gate updated", "gate", s.gate, "history", pushHistory)
	s.emitUnlock(events...)
}

// UpdateState overwrites the state amplitudes. With pushHistory the current
// pair is snapshotted first.
func (s *Session) UpdateState(st qubit.State, pushHistory bool) {
	s.mu.Lock()
	var events []EventType
	if pushHistory {
		s.pushLocked()
		events = append(events, EventHistoryChanged)
	}
	s.state.SetState(st)
	events = append(events, EventStateChanged)
	s.log.Debug("state updated", "state", s.state, "history", pushHistory)
	s.emitUnlock(events...)
}

// Apply replaces the state with gate(state), keeping the pre-apply pair in
// history so Undo reverts it.
func (s *Session) Apply() qubit.State {
	s.mu.Lock()
	next := s.gate.Apply(s.state)
	s.log.Info("apply", "gate", s.gate, "from", s.state, "to", next)
	s.pushLocked()
	s.state.SetState(next)
	s.emitUnlock(EventHistoryChanged, EventStateChanged)
	return next
}

// Undo restores gate and state from the newest snapshot. It reports false
// when the history is empty. There is no redo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	snap, ok := s.history.Pop()
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.gate.SetMatrix(snap.Gate.Matrix())
	s.state.SetState(snap.State)
	s.log.Info("undo", "snapshot", snap.ID, "gate", s.gate, "state", s.state)
	s.emitUnlock(EventHistoryChanged, EventGateChanged, EventStateChanged)
	return true
}

// pushLocked snapshots the current pair. Gate and State are values, so the
// snapshot never aliases the live pair.
func (s *Session) pushLocked() {
	snap := Snapshot{
		ID:    uuid.New(),
		Gate:  s.gate,
		State: s.state,
		Taken: s.now(),
	}
	if old, evicted := s.history.Push(snap); evicted {
		s.log.Debug("history evicted", "snapshot", old.ID)
	}
	s.log.Debug("history pushed", "snapshot", snap.ID, "len", s.history.Len())
}

// emitUnlock releases mu and then notifies listeners of each event in order.
func (s *Session) emitUnlock(types ...EventType) {
	type call struct {
		ev        Event
		listeners []Listener
	}
	calls := make([]call, 0, len(types))
	for _, t := range types {
		ls := s.listeners[t]
		if len(ls) == 0 {
			continue
		}
		calls = append(calls, call{
			ev:        Event{Type: t, Gate: s.gate, State: s.state},
			listeners: append([]Listener(nil), ls...),
		})
	}
	s.mu.Unlock()

	for _, c := range calls {
		for _, l := range c.listeners {
			l(c.ev)
		}
	}
}
