package sim

import "sync"

// Colour is one indicator setting.
type Colour struct {
	R, G, B uint8
}

// Actuator records every servo and indicator command.
type Actuator struct {
	mu     sync.Mutex
	duties []float64
	colors []Colour
}

// NewActuator returns an Actuator with no history.
func NewActuator() *Actuator {
	return &Actuator{}
}

// SetServoDutyPercent implements hal.Actuator.
func (a *Actuator) SetServoDutyPercent(p float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.duties = append(a.duties, p)
}

// SetIndicator implements hal.Actuator.
func (a *Actuator) SetIndicator(r, g, b uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.colors = append(a.colors, Colour{R: r, G: g, B: b})
}

// Duties returns the servo duty history.
func (a *Actuator) Duties() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]float64(nil), a.duties...)
}

// Colours returns the indicator history.
func (a *Actuator) Colours() []Colour {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Colour(nil), a.colors...)
}

// LastDuty returns the most recent duty cycle, or 0 if none was set.
func (a *Actuator) LastDuty() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.duties) == 0 {
		return 0
	}
	return a.duties[len(a.duties)-1]
}

// LastColour returns the most recent indicator colour.
func (a *Actuator) LastColour() Colour {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.colors) == 0 {
		return Colour{}
	}
	return a.colors[len(a.colors)-1]
}
