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
	"errors"
	"fmt"
)

// ErrQuit is returned by drivers when the user asked to close the emulator.
var ErrQuit = errors.New("quit requested")

// An OutOfMemoryErr is returned upon attempting to load a program that
// exceeds the memory's capacity.
type OutOfMemoryErr struct {
	ProgramSize int64
}

func (e *OutOfMemoryErr) Error() string {
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, MaxProgramSize)
}

// A StackOverflowErr is returned when a call would push past the last
// stack slot.
type StackOverflowErr struct {
	PC uint16
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow at %04X", e.PC)
}

// A StackUnderflowErr is returned when returning with an empty stack.
type StackUnderflowErr struct {
	PC uint16
}

func (e *StackUnderflowErr) Error() string {
	return fmt.Sprintf("stack underflow at %04X", e.PC)
}

// A BadCodeErr is returned when the emulator tries to execute an opcode
// that does not decode to any instruction.
type BadCodeErr struct {
	Opcode uint16
	PC     uint16
}

func (e *BadCodeErr) Error() string {
	return fmt.Sprintf("unrecognized opcode %04X at %04X", e.Opcode, e.PC)
}

// An AccessErr is returned when the program reads or writes past the end
// of memory.
type AccessErr struct {
	Address int
	PC      uint16
}

func (e *AccessErr) Error() string {
	return fmt.Sprintf("memory access at %04X out of bounds (PC: %04X)",
		e.Address, e.PC)
}

// A BeyondImageErr is returned in strict mode when the program counter
// leaves the loaded program image.
type BeyondImageErr struct {
	PC       uint16
	ImageEnd uint16
}

func (e *BeyondImageErr) Error() string {
	return fmt.Sprintf("executing past the end of the program image "+
		"(PC: %04X, image end: %04X)", e.PC, e.ImageEnd)
}
