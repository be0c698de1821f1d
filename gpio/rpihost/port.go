// Package rpihost drives the Raspberry Pi header pins through periph.io.
package rpihost

import (
	"errors"
	"strconv"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/jaymaker27/vector-paint/gpio"
)

// Port is the real-hardware gpio.Port.
type Port struct {
	mu      sync.Mutex
	pins    map[gpio.Pin]pgpio.PinIO
	outputs []gpio.Pin
}

// Open initializes the periph host drivers and returns a Port.
func Open() (*Port, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return &Port{pins: make(map[gpio.Pin]pgpio.PinIO)}, nil
}

func (p *Port) pin(n gpio.Pin) (pgpio.PinIO, error) {
	if io, ok := p.pins[n]; ok {
		return io, nil
	}
	io := gpioreg.ByName("GPIO" + strconv.Itoa(int(n)))
	if io == nil {
		return nil, errors.New("no such pin: GPIO" + strconv.Itoa(int(n)))
	}
	p.pins[n] = io
	return io, nil
}

func (p *Port) ConfigureOutput(n gpio.Pin, initial gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	io, err := p.pin(n)
	if err != nil {
		return err
	}
	if err := io.Out(pgpio.Level(initial)); err != nil {
		return err
	}
	p.outputs = append(p.outputs, n)
	return nil
}

func (p *Port) ConfigureInput(n gpio.Pin, pull gpio.Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	io, err := p.pin(n)
	if err != nil {
		return err
	}
	pp := pgpio.Float
	if pull == gpio.PullUp {
		pp = pgpio.PullUp
	}
	return io.In(pp, pgpio.NoEdge)
}

func (p *Port) Read(n gpio.Pin) (gpio.Level, error) {
	p.mu.Lock()
	io, err := p.pin(n)
	p.mu.Unlock()
	if err != nil {
		return gpio.Low, err
	}
	return gpio.Level(io.Read()), nil
}

func (p *Port) Write(n gpio.Pin, l gpio.Level) error {
	p.mu.Lock()
	io, err := p.pin(n)
	p.mu.Unlock()
	if err != nil {
		return err
	}
	return io.Out(pgpio.Level(l))
}

// Close drives every configured output low and releases the pins.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var last error
	for _, n := range p.outputs {
		if io, ok := p.pins[n]; ok {
			if err := io.Out(pgpio.Low); err != nil {
				last = err
			}
		}
	}
	for _, io := range p.pins {
		if err := io.Halt(); err != nil {
			last = err
		}
	}
	p.pins = make(map[gpio.Pin]pgpio.PinIO)
	p.outputs = nil
	return last
}
