// Package gpio abstracts the single-bit digital I/O the turret depends on.
package gpio

// Level is the electrical state of a line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Pull selects the internal resistor applied to an input.
type Pull int

const (
	PullNone Pull = iota
	PullUp
)

// Pin identifies a line by BCM number.
type Pin int

// A Port represents the minimal digital I/O interface.
type Port interface {
	ConfigureOutput(p Pin, initial Level) error
	ConfigureInput(p Pin, pull Pull) error
	Read(p Pin) (Level, error)
	Write(p Pin, l Level) error
	Close() error
}
