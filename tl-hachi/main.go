/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	_ "github.com/Francesco149/hachi-vm/drivers"
	"github.com/Francesco149/hachi-vm/hachi"
	"github.com/Francesco149/hachi-vm/statsview"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

type options struct {
	file      string
	driver    string
	settings  hachi.Settings
	disasm    bool
	debug     bool
	quiet     bool
	statsview bool
}

// errUsage is returned by parseFlags when usage information should be shown.
var errUsage = errors.New("usage")

func parseFlags(args []string, output io.Writer) (options, error) {
	opts := options{settings: *hachi.DefaultSettings}

	flags := flag.NewFlagSet("tl-hachi", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&opts.driver, "driver", "termloop",
		"front end driver: "+strings.Join(hachi.Drivers(), ", "))
	flags.IntVar(&opts.settings.InstructionsPerFrame, "ipf",
		opts.settings.InstructionsPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.settings.FrameRate, "hz", opts.settings.FrameRate,
		"frames per second, timers tick once per frame")
	flags.BoolVar(&opts.settings.StrictImage, "strict", false,
		"fault when execution runs past the end of the program")
	flags.Int64Var(&opts.settings.Seed, "seed", 0,
		"random number seed, 0 for a time based seed")
	flags.BoolVar(&opts.disasm, "disasm", false,
		"print a disassembly listing of the program and exit")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.statsview, "statsview", false,
		"serve runtime statistics on localhost:12600 (statsview builds)")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(output, "usage: %s [options] path/to/program\n\n",
			filepath.Base(os.Args[0]))
		flags.PrintDefaults()
		return opts, errUsage
	}
	opts.file = flags.Arg(0)

	if err := opts.settings.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newLogger creates a logger with appropriate settings
func newLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func writeDisassembly(w io.Writer, program []byte) error {
	tw := new(tabwriter.Writer)
	tw.Init(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "addr\topcode\tpseudo-code\tascii\tdescription\t")

	for _, l := range hachi.Disassemble(program, hachi.ProgramStart) {
		asciitext := ""
		if ascii := l.ASCII(); len(ascii) != 0 {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if l.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(tw, "%04X\t"+opcodeFormatter+"\t%v\t%s\t%s\t\n",
			l.Address, l.Opcode(), l, asciitext, l.Description())
	}

	return tw.Flush()
}

func runEmulator(ctx context.Context, logger *log.Logger, opts options) error {
	m, err := hachi.New(opts.driver, &opts.settings, logger)
	if err != nil {
		return err
	}

	if _, err := m.Load(opts.file); err != nil {
		return err
	}

	err = m.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Operation cancelled")
		return nil
	}
	if err != nil {
		logger.Error("Last state", log.String("state", m.State.String()))
	}
	return err
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	logger := newLogger(opts.debug, opts.quiet)

	if opts.disasm {
		program, err := hachi.ReadProgramFile(opts.file)
		if err != nil {
			logger.Fatal("Reading program failed", log.Err(err))
		}
		if err := writeDisassembly(os.Stdout, program); err != nil {
			logger.Fatal("Writing disassembly failed", log.Err(err))
		}
		return
	}

	if opts.statsview {
		if err := statsview.Launch(logger); err != nil {
			logger.Warn("Statsview unavailable", log.Err(err))
		}
	}

	if err := runEmulator(app.Context(), logger, opts); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}
