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

// Package sdl implements a windowed driver for hachi built on SDL2.
//
// Each CHIP-8 pixel is drawn as a Scale x Scale square. The keypad is
// mapped onto 1234/QWER/ASDF/ZXCV; closing the window or pressing Escape
// stops the machine.
//
// The scale can be changed through SetDriverData("scale", n) before the
// machine is created.
package sdl

import (
	"fmt"
	"runtime"

	"github.com/Francesco149/hachi-vm/hachi"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const defaultScale = 10

// An SDLDriver renders the framebuffer in a window and reads the keyboard
// through SDL events.
type SDLDriver struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
	logger   *log.Logger
}

func (d *SDLDriver) OnInit(m *hachi.Machine) error {
	// SDL must be driven from the thread that initialised it
	runtime.LockOSThread()

	if d.scale == 0 {
		d.scale = defaultScale
	}
	d.logger = m.Logger()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	var err error
	d.window, err = sdl.CreateWindow("hachi",
		int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED),
		hachi.Width*d.scale, hachi.Height*d.scale, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}

	d.renderer, err = sdl.CreateRenderer(d.window, -1,
		uint32(sdl.RENDERER_ACCELERATED)|uint32(sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		d.destroy()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	d.logger.Debug("SDL driver initialized",
		log.Int("width", int(hachi.Width*d.scale)),
		log.Int("height", int(hachi.Height*d.scale)))
	return nil
}

// OnUpdate drains the SDL event queue, forwarding keypad keys to the
// machine.
func (d *SDLDriver) OnUpdate(m *hachi.Machine) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return hachi.ErrQuit

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.Keycode(sdl.K_ESCAPE) {
				return hachi.ErrQuit
			}
			if ev.Repeat != 0 {
				continue
			}
			key, ok := hachi.DefaultKeyLayout[rune(ev.Keysym.Sym)]
			if !ok {
				continue
			}
			m.KeyEvent(key, ev.Type == uint32(sdl.KEYDOWN))
		}
	}
	return nil
}

func (d *SDLDriver) UpdateScreen(screen *hachi.Display) {
	_ = d.renderer.SetDrawColor(0, 0, 0, 255)
	_ = d.renderer.Clear()
	_ = d.renderer.SetDrawColor(0, 255, 0, 255)

	rect := sdl.Rect{W: d.scale, H: d.scale}
	for y := range screen {
		for x := range screen[y] {
			if !screen[y][x] {
				continue
			}
			rect.X = int32(x) * d.scale
			rect.Y = int32(y) * d.scale
			_ = d.renderer.FillRect(&rect)
		}
	}
	d.renderer.Present()
}

// Beep is a no-op, sound is not emulated.
func (d *SDLDriver) Beep() {}

func (d *SDLDriver) OnClose() {
	d.destroy()
	d.logger.Debug("SDL driver closed")
}

func (d *SDLDriver) destroy() {
	if d.renderer != nil {
		_ = d.renderer.Destroy()
		d.renderer = nil
	}
	if d.window != nil {
		_ = d.window.Destroy()
		d.window = nil
	}
	sdl.Quit()
}

func (d *SDLDriver) GetData(key string) interface{} {
	switch key {
	case "window":
		return d.window
	case "scale":
		return int(d.scale)
	}
	return nil
}

func (d *SDLDriver) SetData(key string, value interface{}) error {
	if key != "scale" {
		return fmt.Errorf("unknown data key '%s'", key)
	}
	scale, ok := value.(int)
	if !ok {
		return fmt.Errorf("invalid type %T for scale", value)
	}
	if scale < 1 || scale > 64 {
		return fmt.Errorf("scale must be between 1 and 64, got %v", scale)
	}
	d.scale = int32(scale)
	if d.window != nil {
		d.window.SetSize(hachi.Width*d.scale, hachi.Height*d.scale)
	}
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("sdl", &SDLDriver{}); err != nil {
		panic(err)
	}
}
