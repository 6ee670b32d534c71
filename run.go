package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/hw/input"
)

// runMain runs the rom headlessly until the requested number of frames have
// been emulated or until interrupted.
func runMain(args Run) error {
	cfg, err := emu.LoadConfigOrDefault(args.Config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts := cfg.Options()
	trace := args.Trace
	if trace == nil && cfg.Emulation.Trace != "" {
		trace = &outfile{}
		if err := trace.open(cfg.Emulation.Trace); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	if trace != nil {
		defer trace.Close()
		opts = append(opts, emu.WithTrace(trace))
	}

	nes, err := emu.Open(args.RomPath, opts...)
	if err != nil {
		return err
	}

	e := emu.NewEmulator(nes)
	if args.Replay != "" {
		script, err := input.LoadScript(args.Replay)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		e.SetReplay(script)
	}
	if len(args.Hold) > 0 {
		held, err := input.ParseHeld(args.Hold)
		if err != nil {
			return fmt.Errorf("hold: %w", err)
		}
		e.SetInputProvider(input.NewProvider(cfg.Input, held))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var last emu.Frame
	err = e.Run(ctx, args.Frames, func(f emu.Frame) error {
		last = f
		if strings.Contains(args.PNG, "%d") {
			return writePNG(fmt.Sprintf(args.PNG, f.Number), f)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if args.PNG != "" && !strings.Contains(args.PNG, "%d") && last.Image != nil {
		if err := writePNG(args.PNG, last); err != nil {
			return err
		}
	}

	if args.Snapshot != "" {
		buf, err := nes.SaveSnapshot()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		if err := os.WriteFile(args.Snapshot, buf, 0644); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}

	log.ModEmu.InfoZ("done").
		Uint64("frames", nes.FrameCount()).
		End()
	return nil
}

func writePNG(path string, f emu.Frame) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(fd, f.Image.Image()); err != nil {
		fd.Close()
		return fmt.Errorf("frame %d: %w", f.Number, err)
	}
	return fd.Close()
}
