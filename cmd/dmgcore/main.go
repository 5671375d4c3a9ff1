package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"dmgcore/dmg"
	"dmgcore/dmg/backend"
	"dmgcore/dmg/cpu"
	"dmgcore/dmg/disasm"
	"dmgcore/dmg/timing"
)

func main() {
	defer recoverCrash()

	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Description = "A Game Boy (DMG) emulation core"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a 256-byte boot ROM image to run before the cartridge",
		},
		cli.BoolFlag{
			Name:  "disassemble",
			Usage: "Print one decoded line per executed instruction to stdout instead of rendering",
		},
		cli.IntFlag{
			Name:  "headless",
			Usage: "Run the given number of frames with no display, then exit",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Scale factor passed to the display backend (the terminal backend draws at a fixed size and ignores it)",
			Value: 1,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with error", "error", err)
		os.Exit(1)
	}
}

// recoverCrash turns a panicked UnsupportedOpcodeError into a clean,
// structured diagnostic exit instead of a raw Go stack trace - the ROM
// decoded to one of the Sharp SM83's undefined opcodes, which real
// hardware locks up on, so there's no sensible way to keep running.
// Any other panic is left to propagate; it's a bug in the emulator
// itself, not a malformed ROM, and deserves its real stack trace.
func recoverCrash() {
	opErr, ok := classifyCrash(recover())
	if !ok {
		return
	}
	slog.Error("emulation halted on undefined opcode", "pc", fmt.Sprintf("0x%04X", opErr.PC), "opcode", fmt.Sprintf("0x%02X", opErr.Opcode), "registers", opErr.Dump)
	os.Exit(1)
}

// classifyCrash inspects a recover() value and reports the
// UnsupportedOpcodeError it carries, if any. A nil panic value reports
// false (nothing to recover from); any other panic value that isn't an
// UnsupportedOpcodeError is re-panicked immediately so it keeps unwinding
// with its original stack rather than being silently swallowed.
func classifyCrash(r any) (*cpu.UnsupportedOpcodeError, bool) {
	if r == nil {
		return nil, false
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	var opErr *cpu.UnsupportedOpcodeError
	if !errors.As(err, &opErr) {
		panic(r)
	}
	return opErr, true
}

func run(c *cli.Context) error {
	romPath := c.Args().Get(0)
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}

	var bootROM []byte
	if path := c.String("boot-rom"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		bootROM = data
	}

	system, err := dmg.NewWithFile(romPath, bootROM)
	if err != nil {
		return err
	}

	traced := c.Bool("disassemble")
	if traced {
		system.SetTracer(func(line disasm.DisassemblyLine) {
			fmt.Println(disasm.FormatDisassemblyLine(line))
		})
	}

	cfg := backend.Config{
		Title: romPath,
		Scale: c.Int("scale"),
	}

	frames := c.Int("headless")
	if traced && frames == 0 {
		// A trace printed over stdout can't share a terminal frame with the
		// tcell backend, so --disassemble alone runs headless for one frame.
		frames = 1
	}
	if frames > 0 {
		return system.Run(dmg.RunConfig{
			Backend:   backend.NewHeadless(),
			Limiter:   timing.NewNoOpLimiter(),
			Config:    cfg,
			MaxFrames: frames,
		})
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	return system.Run(dmg.RunConfig{
		Backend: term,
		Limiter: timing.NewTickerLimiter(),
		Config:  cfg,
	})
}
