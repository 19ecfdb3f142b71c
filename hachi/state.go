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
	"fmt"
	"strings"
)

// Memory layout and hardware dimensions of the virtual machine.
const (
	// MemorySize is the size of the addressable space (4k).
	MemorySize = 0x1000
	// ProgramStart is where programs are loaded. The first 512 bytes were
	// reserved for the interpreter on the COSMAC VIP and now hold the font.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program image that fits in memory.
	MaxProgramSize = MemorySize - ProgramStart
	// StackSize is the number of return address slots.
	StackSize = 16
	// Width and Height of the monochrome display in pixels.
	Width  = 64
	Height = 32
	// GlyphSize is the number of bytes (rows) in each font glyph.
	GlyphSize = 5
)

// Font holds the 16 hexadecimal digit glyphs preloaded at address 0.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the address of the font glyph for hex digit d.
// Only the low nibble of d is used.
func GlyphAddress(d uint8) uint16 { return uint16(d&0x0F) * GlyphSize }

// -----------------------------------------------------------------------------

// KeyWait describes a blocking key read (LD VX,K) in progress.
type KeyWait struct {
	Active bool
	// Register receives the code of the key that resolves the wait.
	Register uint8
}

// State is the complete snapshot of the virtual machine. It only contains
// arrays and scalars, so assigning a State copies it entirely; the
// interpreter relies on this to compute the next state without touching
// the current one.
type State struct {
	// Programs are loaded at ProgramStart, the font lives at 0x000.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as the carry,
	// borrow and collision flag.
	V [16]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// The call stack. Slot 0 is never written: SP is incremented before
	// each push, so at most 15 calls can be nested.
	Stack [StackSize]uint16
	// Index of the last pushed return address, 0 when the stack is empty.
	SP int
	// Program counter. Holds the address of the next opcode.
	PC uint16
	// Delay and sound timers, decremented once per frame down to 0.
	DT uint8
	ST uint8
	// Keys currently held down.
	Keys Keys
	// The 64x32 framebuffer.
	Display Display
	// Wait is active while the machine blocks on a key press.
	Wait KeyWait
	// ImageEnd is the first address past the loaded program image.
	ImageEnd uint16
}

// Reset returns the power-on state: font preloaded, registers, stack and
// display cleared and PC at ProgramStart.
func Reset() State {
	s := State{
		PC:       ProgramStart,
		ImageEnd: ProgramStart,
	}
	copy(s.Memory[:], Font[:])
	return s
}

// LoadProgram writes program starting at ProgramStart, overwriting whatever
// memory was there.
func LoadProgram(s State, program []byte) (State, error) {
	if len(program) > MaxProgramSize {
		return s, &OutOfMemoryErr{ProgramSize: int64(len(program))}
	}
	copy(s.Memory[ProgramStart:], program)
	end := uint16(ProgramStart + len(program))
	if end > s.ImageEnd {
		s.ImageEnd = end
	}
	return s, nil
}

// Waiting reports whether execution is suspended until a key press.
func (s *State) Waiting() bool { return s.Wait.Active }

// String returns formatted information about the machine state.
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State{PC: %04X, I: %04X, SP: %v, Stack: % 04X, "+
		"Registers: [% 02X], DT: %02X, ST: %02X, Keyboard: %016b",
		s.PC, s.I, s.SP, s.Stack[1:s.SP+1], s.V, s.DT, s.ST, uint16(s.Keys))
	if s.Wait.Active {
		fmt.Fprintf(&b, ", Waiting: V%1X", s.Wait.Register)
	}
	b.WriteString("}")
	return b.String()
}
