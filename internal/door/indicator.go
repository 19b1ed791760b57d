package door

import (
	"math/rand/v2"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// flashStep is how long each colour of a flash is shown.
const flashStep = 200 * time.Millisecond

// Indicator is the RGB status LED.
type Indicator struct {
	hw    hal.Actuator
	clock hal.Clock
	rand  *rand.Rand
}

func newIndicator(hw hal.Actuator, clock hal.Clock) *Indicator {
	return &Indicator{
		hw:    hw,
		clock: clock,
		rand:  rand.New(rand.NewPCG(uint64(clock.Now().UnixNano()), 0x67726179)), //nolint:gosec // colour choice, not security
	}
}

// Light sets the indicator colour.
func (i *Indicator) Light(r, g, b uint8) {
	i.hw.SetIndicator(r, g, b)
}

// Off turns the indicator off.
func (i *Indicator) Off() {
	i.hw.SetIndicator(0, 0, 0)
}

// Green shows the open colour.
func (i *Indicator) Green() {
	i.hw.SetIndicator(0, 255, 0)
}

// Flash cycles red, green and blue, then goes dark. Used for a wrong password.
func (i *Indicator) Flash() {
	i.Light(255, 0, 0)
	i.clock.Sleep(flashStep)
	i.Light(0, 255, 0)
	i.clock.Sleep(flashStep)
	i.Light(0, 0, 255)
	i.clock.Sleep(flashStep)
	i.Off()
}

// Blink shows a random colour briefly. Used when a tag is read.
func (i *Indicator) Blink() {
	i.Light(uint8(i.rand.UintN(256)), uint8(i.rand.UintN(256)), uint8(i.rand.UintN(256))) //nolint:gosec // UintN(256) fits uint8
	i.clock.Sleep(flashStep)
	i.Off()
}
