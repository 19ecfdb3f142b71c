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

package hachi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Machine drives a State: it owns the state for the lifetime of a session,
// runs a fixed number of instructions per frame, ages the timers once per
// frame and hands the framebuffer to the driver.
type Machine struct {
	// State is replaced wholesale by every instruction step.
	State State

	interpreter *Interpreter
	settings    Settings
	driver      string
	logger      *log.Logger
	program     []byte
	frames      uint64
}

// New initializes a new Machine with the given settings. If settings is
// nil, DefaultSettings will be used. If logger is nil, a default logger is
// created.
// driver is the name of the registered driver that will be used.
func New(driver string, s *Settings, logger *log.Logger) (*Machine, error) {
	drv := drivers[driver]
	if drv == nil {
		return nil, fmt.Errorf("driver %s not found", driver)
	}

	if s == nil {
		s = DefaultSettings
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	m := &Machine{
		State:       Reset(),
		interpreter: NewInterpreter(s),
		settings:    *s,
		driver:      driver,
		logger:      logger,
	}

	if err := drv.OnInit(m); err != nil {
		return nil, fmt.Errorf("initializing driver %s: %w", driver, err)
	}
	logger.Debug("Machine initialized",
		log.String("driver", driver),
		log.Int("instructions_per_frame", s.InstructionsPerFrame),
		log.Int("frame_rate", s.FrameRate))
	return m, nil
}

// String returns formatted information about the machine.
func (m *Machine) String() string {
	return fmt.Sprintf("Machine{Driver: %s, Frames: %v, Program: %v bytes, %v}",
		m.driver, m.frames, len(m.program), m.State)
}

// Driver returns the name of the driver in use by the machine.
func (m *Machine) Driver() string { return m.driver }

// Logger returns the machine's logger, for use by drivers.
func (m *Machine) Logger() *log.Logger { return m.logger }

// Settings returns a copy of the settings the machine runs with.
func (m *Machine) Settings() Settings { return m.settings }

// Frames returns the number of frames executed so far.
func (m *Machine) Frames() uint64 { return m.frames }

// Program returns the loaded program image.
func (m *Machine) Program() []byte { return m.program }

// GetDriverData gets custom data from the currently loaded driver.
// Returns nil if the driver does not exist or if the data key is not found.
func (m *Machine) GetDriverData(key string) interface{} {
	if drivers[m.driver] == nil {
		return nil
	}
	return drivers[m.driver].GetData(key)
}

// SetDriverData sets custom data on the currently loaded driver.
func (m *Machine) SetDriverData(key string, value interface{}) error {
	if drivers[m.driver] == nil {
		return fmt.Errorf("driver %s not found", m.driver)
	}
	return drivers[m.driver].SetData(key, value)
}

// ReadProgram reads a raw program image. Returns an OutOfMemoryErr if the
// image does not fit in memory.
func ReadProgram(r io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(program) > MaxProgramSize {
		return nil, &OutOfMemoryErr{ProgramSize: int64(len(program))}
	}
	return program, nil
}

// ReadProgramFile opens a CHIP-8 binary file and reads its image.
func ReadProgramFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() > MaxProgramSize {
		return nil, &OutOfMemoryErr{ProgramSize: fi.Size()}
	}
	return ReadProgram(f)
}

// Load opens a CHIP-8 binary file, resets the machine and loads the
// program into memory.
// Returns the size, in bytes, of the program and an error if any.
func (m *Machine) Load(path string) (int64, error) {
	program, err := ReadProgramFile(path)
	if err != nil {
		return 0, err
	}
	if err := m.LoadRaw(program); err != nil {
		return 0, err
	}
	m.logger.Info("Loaded program",
		log.String("file", path),
		log.Int("size", len(program)))
	return int64(len(program)), nil
}

// LoadRaw resets the machine and loads a byte array as a CHIP-8 binary
// into memory.
func (m *Machine) LoadRaw(program []byte) error {
	s, err := LoadProgram(Reset(), program)
	if err != nil {
		return err
	}
	m.State = s
	m.program = append(m.program[:0], program...)
	m.frames = 0
	return nil
}

// Reset discards the current state and reloads the last loaded program.
func (m *Machine) Reset() {
	s, err := LoadProgram(Reset(), m.program)
	if err != nil {
		// the program was accepted once, it cannot have grown
		panic(err)
	}
	m.State = s
	m.frames = 0
	m.logger.Debug("Machine reset")
}

// KeyEvent records a keypad key going down or up. Drivers call this from
// their input handling.
func (m *Machine) KeyEvent(key uint8, pressed bool) {
	waiting := m.State.Waiting()
	m.State = DeliverKeyEvent(m.State, key, pressed)
	if waiting && !m.State.Waiting() {
		m.logger.Debug("Key wait resolved", log.Hex("key", key))
	}
}

// Step executes a single instruction. Returns an error if any.
func (m *Machine) Step() error {
	s, err := m.interpreter.Cycle(m.State)
	if err != nil {
		m.logger.Error("Execution fault",
			log.Err(err),
			log.Hex("pc", m.State.PC))
		return err
	}
	m.State = s
	return nil
}

// Frame runs one frame: input polling, InstructionsPerFrame instructions
// (fewer if the program starts waiting for a key), one timer tick and a
// screen update.
func (m *Machine) Frame() error {
	drv := drivers[m.driver]
	if err := drv.OnUpdate(m); err != nil {
		return err
	}

	for i := 0; i < m.settings.InstructionsPerFrame; i++ {
		if m.State.Waiting() {
			break
		}
		if err := m.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", m.frames, err)
		}
	}

	if m.State.ST > 0 {
		drv.Beep()
	}
	m.State = TickTimers(m.State)
	drv.UpdateScreen(&m.State.Display)

	m.frames++
	if m.frames%uint64(m.settings.FrameRate) == 0 {
		m.logger.Debug("Frame", log.String("state", m.State.String()))
	}
	return nil
}

// Run runs the machine until ctx is cancelled, the driver asks to quit or
// execution faults, blocking the thread.
// A quit request is not an error.
func (m *Machine) Run(ctx context.Context) error {
	drv := drivers[m.driver]
	defer drv.OnClose()

	var err error
	if r, ok := drv.(Runner); ok {
		err = r.Run(ctx, m)
	} else {
		err = m.loop(ctx)
	}

	if errors.Is(err, ErrQuit) {
		m.logger.Info("Stopped", log.String("reason", "quit requested"))
		return nil
	}
	return err
}

func (m *Machine) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.settings.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Frame(); err != nil {
				return err
			}
		}
	}
}
