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

// Package termloop implements a terminal driver for hachi built on termloop.
//
// The driver owns the main loop: Machine.Run hands control to termloop,
// which runs one emulator frame per drawn frame. The screen shows the
// framebuffer next to the registers, stack and a short event log. Press
// Esc to quit.
//
// The keypad is mapped onto 1234/QWER/ASDF/ZXCV, with the arrow keys and
// Enter doubling as 8, 4, 6, 2 and 5. Extra key mappings can be set through
// SetDriverData("key_map", myMap), where myMap is a map[termloop.Key]uint8
// with termloop keys as keys and keypad codes (0x0-0xF) as values.
package termloop

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/Francesco149/hachi-vm/hachi"
	tl "github.com/JoelOtter/termloop"
	"github.com/retroenv/retrogolib/log"
)

// terminals only report key presses, so a key counts as held for this long
// after its last press event
const keyHoldTime = 100 * time.Millisecond

// screen preview position
const screenX, screenY = 20, 5

// A TermloopDriver is a terminal-based driver that uses the termloop library.
// It shows the current emulator state in real time and the screen.
type TermloopDriver struct {
	g                 *tl.Game
	m                 *hachi.Machine
	status            *tl.Text
	registers         *tl.Text
	pointersAndTimers *tl.Text
	devices           *tl.Text
	stack             []*tl.Text
	events            [10]*tl.Text
	screen            [hachi.Width][hachi.Height]*tl.Rectangle
	lastScreen        hachi.Display
	keyMap            map[tl.Key]uint8
	err               error
}

func (d *TermloopDriver) printEvent(s string) {
	for i := len(d.events) - 1; i > 0; i-- {
		d.events[i].SetText(d.events[i-1].Text())
	}
	d.events[0].SetText(s)
}

// just a wrapper entity to handle input
type inputHandler struct {
	d      *TermloopDriver
	timers map[uint8]time.Time
}

func (i *inputHandler) Draw(s *tl.Screen) {
	for key, t := range i.timers {
		if time.Since(t) > keyHoldTime {
			i.d.m.KeyEvent(key, false)
			delete(i.timers, key)
		}
	}
}

func (i *inputHandler) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}
	key, ok := i.d.lookup(ev)
	if !ok {
		return
	}
	i.d.m.KeyEvent(key, true)
	i.timers[key] = time.Now()
}

func (d *TermloopDriver) lookup(ev tl.Event) (uint8, bool) {
	if ev.Ch != 0 {
		key, ok := hachi.DefaultKeyLayout[unicode.ToLower(ev.Ch)]
		return key, ok
	}
	key, ok := d.keyMap[ev.Key]
	return key, ok
}

// just a wrapper entity to run one emulator frame on every drawn frame
type emulatorEntity struct {
	ctx context.Context
	d   *TermloopDriver
}

func (e *emulatorEntity) Draw(s *tl.Screen) {
	if e.d.err != nil {
		return
	}
	if err := e.ctx.Err(); err != nil {
		// termloop can only be stopped by its end key
		e.d.err = err
		e.d.status.SetText("Stopped (Esc to quit)")
		return
	}
	if err := e.d.m.Frame(); err != nil {
		e.d.err = err
		e.d.status.SetText(fmt.Sprintf("Halted: %v (Esc to quit)", err))
		e.d.printEvent("FAULT")
	}
}

func (e *emulatorEntity) Tick(ev tl.Event) {}

func (d *TermloopDriver) OnInit(m *hachi.Machine) error {
	d.m = m
	d.err = nil
	d.lastScreen = hachi.Display{}
	d.keyMap = map[tl.Key]uint8{
		tl.KeyArrowDown:  0x2,
		tl.KeyArrowLeft:  0x4,
		tl.KeyArrowRight: 0x6,
		tl.KeyArrowUp:    0x8,
		tl.KeyEnter:      0x5,
	}

	// init termloop
	d.g = tl.NewGame()
	d.g.SetEndKey(tl.KeyEsc)
	scr := d.g.Screen()
	scr.SetFps(float64(m.Settings().FrameRate))

	scr.AddEntity(&inputHandler{d, make(map[uint8]time.Time)})
	scr.AddEntity(tl.NewText(0, 0, "Stack   Events",
		tl.ColorDefault, tl.ColorDefault))

	// stack, slot 0 is never used
	d.stack = make([]*tl.Text, hachi.StackSize-1)
	for i := range d.stack {
		d.stack[i] = tl.NewText(0, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.stack[i])
	}

	// event log
	for i := range d.events {
		d.events[i] = tl.NewText(8, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.events[i])
	}

	// chip info
	d.status = tl.NewText(screenX, 0, "Running", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.status)

	d.registers = tl.NewText(screenX, 1, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.registers)

	d.pointersAndTimers = tl.NewText(screenX, 2, "",
		tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.pointersAndTimers)

	d.devices = tl.NewText(screenX, 3, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.devices)

	// pixels are only added to the screen while they are lit
	for x := range d.screen {
		for y := range d.screen[x] {
			d.screen[x][y] = tl.NewRectangle(screenX+x, screenY+y, 1, 1,
				tl.ColorWhite)
		}
	}

	m.Logger().Debug("Termloop driver initialized")
	return nil
}

func (d *TermloopDriver) OnUpdate(m *hachi.Machine) error {
	s := &m.State
	d.registers.SetText(fmt.Sprintf("Registers: % 02X", s.V))
	d.pointersAndTimers.SetText(
		fmt.Sprintf("I: %04X SP: %v, PC: %04X, DT: %02X, ST: %02X",
			s.I, s.SP, s.PC, s.DT, s.ST))

	waiting := ""
	if s.Waiting() {
		waiting = fmt.Sprintf(", waiting for key -> V%1X", s.Wait.Register)
	}
	d.devices.SetText(fmt.Sprintf("Keyboard: %016b, Frame: %v%s",
		uint16(s.Keys), m.Frames(), waiting))

	for i, t := range d.stack {
		if i+1 <= s.SP {
			t.SetText(fmt.Sprintf("%04X", s.Stack[i+1]))
		} else {
			t.SetText("")
		}
	}
	return nil
}

func (d *TermloopDriver) UpdateScreen(screen *hachi.Display) {
	scr := d.g.Screen()
	for y := range screen {
		for x := range screen[y] {
			switch {
			case screen[y][x] && !d.lastScreen[y][x]:
				// this pixel was activated
				scr.AddEntity(d.screen[x][y])
			case !screen[y][x] && d.lastScreen[y][x]:
				// this pixel was deactivated
				scr.RemoveEntity(d.screen[x][y])
			}
		}
	}
	d.lastScreen = *screen
}

func (d *TermloopDriver) Beep() { d.printEvent("BEEP") }

func (d *TermloopDriver) OnClose() {
	d.m.Logger().Debug("Termloop driver closed")
}

// Run starts termloop and blocks until the end key is pressed.
func (d *TermloopDriver) Run(ctx context.Context, m *hachi.Machine) error {
	d.g.Screen().AddEntity(&emulatorEntity{ctx: ctx, d: d})
	d.g.Start()

	if d.err != nil {
		m.Logger().Error("Emulation stopped", log.Err(d.err))
		return d.err
	}
	return hachi.ErrQuit
}

func (d *TermloopDriver) GetData(key string) interface{} {
	switch key {
	case "ctx":
		return d.g
	case "key_map":
		return d.keyMap
	}
	return nil
}

func (d *TermloopDriver) SetData(key string, value interface{}) error {
	if key != "key_map" {
		return fmt.Errorf("unknown data key '%s'", key)
	}
	newMap, ok := value.(map[tl.Key]uint8)
	if !ok {
		return fmt.Errorf("invalid type %T for key_map", value)
	}
	for k, code := range newMap {
		if code > 0x0F {
			return fmt.Errorf("invalid keypad code %X for key %v", code, k)
		}
	}
	d.keyMap = newMap
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("termloop", &TermloopDriver{}); err != nil {
		panic(err)
	}
}
