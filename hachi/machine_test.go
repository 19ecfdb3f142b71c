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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// recordingDriver counts the calls it receives.
type recordingDriver struct {
	updates, screens, beeps, closes int
	updateErr                       error
	lastLit                         int
	data                            map[string]interface{}
}

func (d *recordingDriver) OnInit(m *Machine) error { return nil }
func (d *recordingDriver) OnUpdate(m *Machine) error {
	d.updates++
	return d.updateErr
}
func (d *recordingDriver) UpdateScreen(s *Display) {
	d.screens++
	d.lastLit = s.Lit()
}
func (d *recordingDriver) Beep()                          { d.beeps++ }
func (d *recordingDriver) OnClose()                       { d.closes++ }
func (d *recordingDriver) GetData(key string) interface{} { return d.data[key] }
func (d *recordingDriver) SetData(key string, value interface{}) error {
	if d.data == nil {
		d.data = map[string]interface{}{}
	}
	d.data[key] = value
	return nil
}

func newTestMachine(t *testing.T, settings *Settings, program []byte) (*Machine, *recordingDriver) {
	t.Helper()

	drv := &recordingDriver{}
	name := "recording-" + t.Name()
	assert.NoError(t, RegisterDriver(name, drv))
	t.Cleanup(func() {
		_ = UnregisterDriver(name)
	})

	if settings == nil {
		settings = &Settings{InstructionsPerFrame: 3, FrameRate: 60, Seed: 1}
	}
	m, err := New(name, settings, log.NewTestLogger(t))
	assert.NoError(t, err)
	assert.NoError(t, m.LoadRaw(program))
	return m, drv
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New("does-not-exist", nil, log.NewTestLogger(t))
	assert.ErrorContains(t, err, "driver does-not-exist not found")
}

func TestNewInvalidSettings(t *testing.T) {
	_, err := New("null", &Settings{InstructionsPerFrame: 0, FrameRate: 60}, log.NewTestLogger(t))
	assert.ErrorContains(t, err, "InstructionsPerFrame")

	_, err = New("null", &Settings{InstructionsPerFrame: 1, FrameRate: 0}, log.NewTestLogger(t))
	assert.ErrorContains(t, err, "FrameRate")
}

func TestRegisterDriver(t *testing.T) {
	assert.Error(t, RegisterDriver("null", NullDriver{}))
	assert.Error(t, UnregisterDriver("does-not-exist"))

	found := false
	for _, name := range Drivers() {
		found = found || name == "null"
	}
	assert.True(t, found)
}

func TestFrameRunsInstructionsPerFrame(t *testing.T) {
	// V1 += 1 forever
	m, drv := newTestMachine(t, nil, []byte{
		0x71, 0x01, // 200: ADD V1,01
		0x12, 0x00, // 202: JP 200
	})
	m.State.DT = 5

	assert.NoError(t, m.Frame())
	// ADD, JP, ADD
	assert.Equal(t, uint8(2), m.State.V[1])
	assert.Equal(t, uint16(0x202), m.State.PC)
	assert.Equal(t, uint8(4), m.State.DT, "timers tick once per frame")
	assert.Equal(t, uint64(1), m.Frames())
	assert.Equal(t, 1, drv.updates)
	assert.Equal(t, 1, drv.screens)
	assert.Equal(t, 0, drv.beeps)
}

func TestFrameStopsWhileWaiting(t *testing.T) {
	m, drv := newTestMachine(t, nil, []byte{
		0xF2, 0x0A, // 200: LD V2,K
		0x61, 0x07, // 202: LD V1,07
	})

	assert.NoError(t, m.Frame())
	assert.True(t, m.State.Waiting())
	assert.Equal(t, uint16(0x202), m.State.PC)

	assert.NoError(t, m.Frame())
	assert.Equal(t, uint8(0), m.State.V[1])
	assert.Equal(t, 2, drv.screens, "frames keep presenting while waiting")

	m.KeyEvent(0x9, true)
	assert.Equal(t, uint8(0x9), m.State.V[2])
	assert.NoError(t, m.Frame())
	assert.Equal(t, uint8(0x7), m.State.V[1])
}

func TestFrameBeeps(t *testing.T) {
	m, drv := newTestMachine(t, &Settings{InstructionsPerFrame: 1, FrameRate: 60}, []byte{
		0x12, 0x00, // 200: JP 200
	})
	m.State.ST = 2

	for i := 0; i < 4; i++ {
		assert.NoError(t, m.Frame())
	}
	assert.Equal(t, 2, drv.beeps)
	assert.Equal(t, uint8(0), m.State.ST)
}

func TestFrameDrawsScreen(t *testing.T) {
	m, drv := newTestMachine(t, nil, []byte{
		0x60, 0x00, // 200: LD V0,00
		0xF0, 0x29, // 202: LD F,V0
		0xD0, 0x05, // 204: DRW V0,V0,5
	})
	assert.NoError(t, m.Frame())
	assert.Equal(t, 14, drv.lastLit)
}

func TestFrameFault(t *testing.T) {
	m, _ := newTestMachine(t, nil, []byte{0x00, 0xEE})
	before := m.State

	err := m.Frame()
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
	assert.ErrorContains(t, err, "frame 0")
	assert.Equal(t, before, m.State)
}

func TestFrameStrictImage(t *testing.T) {
	m, _ := newTestMachine(t, &Settings{InstructionsPerFrame: 2, FrameRate: 60, StrictImage: true},
		[]byte{0x61, 0x01})

	err := m.Frame()
	var beyond *BeyondImageErr
	assert.True(t, errors.As(err, &beyond))
	assert.Equal(t, uint8(1), m.State.V[1])
}

func TestRunQuit(t *testing.T) {
	m, drv := newTestMachine(t, nil, []byte{0x12, 0x00})
	drv.updateErr = ErrQuit

	assert.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 1, drv.closes)
}

func TestRunCancelled(t *testing.T) {
	m, drv := newTestMachine(t, nil, []byte{0x12, 0x00})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, drv.closes)
}

func TestRunFault(t *testing.T) {
	m, drv := newTestMachine(t, nil, []byte{0xF0, 0xFF})
	err := m.Run(context.Background())
	var bad *BadCodeErr
	assert.True(t, errors.As(err, &bad))
	assert.Equal(t, uint16(0xF0FF), bad.Opcode)
	assert.Equal(t, 1, drv.closes)
}

func TestReset(t *testing.T) {
	m, _ := newTestMachine(t, nil, []byte{0x61, 0x01, 0x12, 0x00})
	assert.NoError(t, m.Frame())
	m.State.Memory[0x200] = 0x00

	m.Reset()
	assert.Equal(t, uint16(0x200), m.State.PC)
	assert.Equal(t, uint8(0), m.State.V[1])
	assert.Equal(t, byte(0x61), m.State.Memory[0x200])
	assert.Equal(t, uint64(0), m.Frames())
	assert.Equal(t, []byte{0x61, 0x01, 0x12, 0x00}, m.Program())
}

func TestDriverData(t *testing.T) {
	m, _ := newTestMachine(t, nil, nil)
	assert.Nil(t, m.GetDriverData("scale"))
	assert.NoError(t, m.SetDriverData("scale", 4))
	assert.Equal(t, 4, m.GetDriverData("scale"))
}

func TestReadProgram(t *testing.T) {
	program, err := ReadProgram(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0}, program)

	_, err = ReadProgram(bytes.NewReader(make([]byte, MaxProgramSize+1)))
	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))

	m, _ := newTestMachine(t, nil, nil)
	err = m.LoadRaw(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.As(err, &oom))
	assert.Equal(t, int64(MaxProgramSize+1), oom.ProgramSize)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0xA2, 0x2A}, 0o644))

	m, _ := newTestMachine(t, nil, nil)
	size, err := m.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), size)
	assert.Equal(t, byte(0xA2), m.State.Memory[0x200])

	_, err = m.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)

	big := filepath.Join(t.TempDir(), "big.ch8")
	assert.NoError(t, os.WriteFile(big, make([]byte, MaxProgramSize+1), 0o644))
	_, err = m.Load(big)
	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))
}
