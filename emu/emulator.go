package emu

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/input"
)

// A Frame is a completed frame handed over to the consumer. Image is a copy,
// it can be kept around.
type Frame struct {
	Number uint64
	Image  *hw.FrameBuffer
}

// Emulator runs a NES in its own goroutine and hands the completed frames
// to a consumer running in another one. Inputs and reset requests coming
// from other goroutines are applied between frames.
type Emulator struct {
	NES *NES

	replay   *input.Replayer
	provider *input.Provider

	// These are accessed concurrently by the emulation loop and the host.
	buttons   [2]atomic.Uint32 // pendingButtons | mask
	softReset atomic.Bool
	hardReset atomic.Bool
}

const pendingButtons = 1 << 8

func NewEmulator(nes *NES) *Emulator {
	return &Emulator{NES: nes}
}

// SetReplay plays the input events of script back during the next Run,
// frame numbers being counted from the start of Run.
func (e *Emulator) SetReplay(script *input.Script) {
	e.replay = input.NewReplayer(script)
}

// SetInputProvider makes the emulation loop poll p at each frame boundary
// and forward both paddle states to the console. p's source is called from
// the emulation goroutine. Buttons set with SetButtons or a replay script
// override the polled state for one frame only.
func (e *Emulator) SetInputProvider(p *input.Provider) {
	e.provider = p
}

// SetButtons, SoftReset and Reset control the emulation loop in a
// concurrent-safe way. They take effect at the next frame boundary.

func (e *Emulator) SetButtons(player int, mask uint8) {
	if player < 0 || player >= len(e.buttons) {
		log.ModInput.WarnZ("ignoring buttons of unknown player").
			Int("player", player).
			End()
		return
	}
	e.buttons[player].Store(pendingButtons | uint32(mask))
}

// SoftReset presses the console reset button.
func (e *Emulator) SoftReset() { e.softReset.Store(true) }

// Reset power cycles the console. Memory contents are preserved.
func (e *Emulator) Reset() { e.hardReset.Store(true) }

// Run emulates nframes frames (or until ctx is done if nframes <= 0) and
// calls consume with each of them, in order, from another goroutine. Run
// returns the first error of either the emulation or consume. Cancelling
// ctx stops the emulation at the next frame boundary.
func (e *Emulator) Run(ctx context.Context, nframes int, consume func(Frame) error) error {
	g, ctx := errgroup.WithContext(ctx)
	frames := make(chan Frame, 2)

	g.Go(func() error {
		defer close(frames)

		for i := 0; nframes <= 0 || i < nframes; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.betweenFrames(uint64(i))

			fb, err := e.NES.RunUntilFrame()
			if err != nil {
				return err
			}

			f := Frame{Number: e.NES.FrameCount(), Image: fb.Clone()}
			select {
			case frames <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for f := range frames {
			if err := consume(f); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	log.ModEmu.InfoZ("emulation loop exited").
		Uint64("frame", e.NES.FrameCount()).
		Error("err", err).
		End()
	return err
}

// betweenFrames applies what has been requested while the previous frame
// was running.
func (e *Emulator) betweenFrames(frame uint64) {
	if e.hardReset.CompareAndSwap(true, false) {
		e.softReset.Store(false)
		log.ModEmu.InfoZ("performing hard reset").End()
		e.NES.Reset()
	} else if e.softReset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("performing soft reset").End()
		e.NES.SoftReset()
	}

	if e.provider != nil {
		pad1, pad2 := e.provider.LoadState()
		e.NES.SetButtons(0, pad1)
		e.NES.SetButtons(1, pad2)
	}
	for i := range e.buttons {
		if v := e.buttons[i].Swap(0); v&pendingButtons != 0 {
			e.NES.SetButtons(i, uint8(v))
		}
	}
	if e.replay != nil {
		e.replay.Apply(frame, e.NES.SetButtons)
	}
}
