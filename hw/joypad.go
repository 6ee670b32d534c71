package hw

import (
	"nescore/emu/log"
	"nescore/hw/snapshot"
)

// Button bits, in the order the shift register reports them.
const (
	ButtonA uint8 = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Joypad is a standard NES controller: an 8-bit parallel-in serial-out shift
// register. While strobe is high, the register continuously reloads the
// buttons state and reads return the state of A.
type Joypad struct {
	buttons uint8
	strobe  bool
	index   uint8 // next bit to report
}

// SetButtons sets the state of all buttons at once, a set bit meaning the
// button is pressed.
func (j *Joypad) SetButtons(mask uint8) {
	j.buttons = mask
}

func (j *Joypad) Buttons() uint8 {
	return j.buttons
}

func (j *Joypad) WriteStrobe(val uint8) {
	j.strobe = val&1 == 1
	if j.strobe {
		j.index = 0
	}
}

// Read returns the next button bit. After 8 bits are read, all subsequent
// reads report 1 on a standard NES controller.
func (j *Joypad) Read() uint8 {
	ret := j.Peek()
	if !j.strobe && j.index < 8 {
		j.index++
	}
	return ret
}

// Peek returns what Read would, without shifting.
func (j *Joypad) Peek() uint8 {
	switch {
	case j.strobe:
		return j.buttons & 1
	case j.index < 8:
		return (j.buttons >> j.index) & 1
	}
	return 1
}

func (j *Joypad) Reset() {
	j.strobe = false
	j.index = 0
}

func (j *Joypad) State() snapshot.Joypad {
	return snapshot.Joypad{
		Buttons: j.buttons,
		Strobe:  j.strobe,
		Index:   j.index,
	}
}

func (j *Joypad) SetState(st snapshot.Joypad) {
	j.buttons = st.Buttons
	j.strobe = st.Strobe
	j.index = st.Index
}

// JOY1: $4016
func (b *Bus) WriteJOY1(_, val uint8) {
	log.ModInput.DebugZ("strobe").Hex8("val", val).End()
	b.Pads[0].WriteStrobe(val)
	b.Pads[1].WriteStrobe(val)
}

// The upper bits of controller reads are open bus, usually $40 (the high
// byte of the address).
func (b *Bus) ReadJOY1(_ uint8) uint8 { return 0x40 | b.Pads[0].Read() }
func (b *Bus) PeekJOY1(_ uint8) uint8 { return 0x40 | b.Pads[0].Peek() }

// JOY2: $4017
func (b *Bus) ReadJOY2(_ uint8) uint8 { return 0x40 | b.Pads[1].Read() }
func (b *Bus) PeekJOY2(_ uint8) uint8 { return 0x40 | b.Pads[1].Peek() }

// Writes to $4017 go to the APU frame counter.
func (b *Bus) WriteJOY2(_, val uint8) {
	log.ModMem.DebugZ("write to APU frame counter").Hex8("val", val).End()
}
