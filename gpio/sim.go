package gpio

import (
	"errors"
	"sync"
)

// Sim is an in-memory Port for tests and bench runs without hardware.
//
// Inputs can be set directly with Set, or scripted with OnRead so a
// test can trip a switch as a function of observed motion. OnWrite
// observes every output write, which lets tests count step pulses.
type Sim struct {
	mu      sync.Mutex
	levels  map[Pin]Level
	inputs  map[Pin]bool
	outputs map[Pin]bool
	reads   map[Pin]func() Level
	onWrite func(p Pin, l Level)
	closed  bool
}

func NewSim() *Sim {
	return &Sim{
		levels:  make(map[Pin]Level),
		inputs:  make(map[Pin]bool),
		outputs: make(map[Pin]bool),
		reads:   make(map[Pin]func() Level),
	}
}

func (s *Sim) ConfigureOutput(p Pin, initial Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("sim port closed")
	}
	s.outputs[p] = true
	s.levels[p] = initial
	return nil
}

func (s *Sim) ConfigureInput(p Pin, pull Pull) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("sim port closed")
	}
	s.inputs[p] = true
	// an open pulled-up line floats high
	if _, ok := s.levels[p]; !ok {
		s.levels[p] = Level(pull == PullUp)
	}
	return nil
}

func (s *Sim) Read(p Pin) (Level, error) {
	s.mu.Lock()
	fn := s.reads[p]
	l := s.levels[p]
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return Low, errors.New("sim port closed")
	}
	if fn != nil {
		return fn(), nil
	}
	return l, nil
}

func (s *Sim) Write(p Pin, l Level) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("sim port closed")
	}
	s.levels[p] = l
	fn := s.onWrite
	s.mu.Unlock()
	if fn != nil {
		fn(p, l)
	}
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Set forces the level an unscripted Read will observe.
func (s *Sim) Set(p Pin, l Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[p] = l
}

// Level reports the last written or Set level of a pin.
func (s *Sim) Level(p Pin) Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[p]
}

// OnRead scripts reads of one pin. A nil fn removes the script.
func (s *Sim) OnRead(p Pin, fn func() Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.reads, p)
		return
	}
	s.reads[p] = fn
}

// OnWrite observes every output write made through the port.
func (s *Sim) OnWrite(fn func(p Pin, l Level)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = fn
}
