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
	"math/rand"
	"time"
)

// Interpreter executes instructions against a State. It holds no machine
// state of its own, only the collaborators instructions need.
type Interpreter struct {
	// Rand returns the random bytes used by RND VX,NN.
	Rand func() byte
	// StrictImage makes Fetch fail when PC leaves the loaded program image
	// instead of executing the zeroed memory past it.
	StrictImage bool
}

// NewInterpreter returns an interpreter configured from s. If s is nil,
// DefaultSettings will be used.
func NewInterpreter(s *Settings) *Interpreter {
	if s == nil {
		s = DefaultSettings
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Interpreter{
		Rand:        func() byte { return byte(rng.Intn(0x100)) },
		StrictImage: s.StrictImage,
	}
}

// Fetch reads the big-endian opcode at PC.
func (in *Interpreter) Fetch(s State) (uint16, error) {
	if int(s.PC)+1 >= MemorySize {
		return 0, &AccessErr{Address: int(s.PC), PC: s.PC}
	}
	if in.StrictImage && s.PC >= s.ImageEnd {
		return 0, &BeyondImageErr{PC: s.PC, ImageEnd: s.ImageEnd}
	}
	return uint16(s.Memory[s.PC])<<8 | uint16(s.Memory[s.PC+1]), nil
}

// Cycle fetches the opcode at PC and executes it. While a key read is
// pending the state is returned unchanged.
func (in *Interpreter) Cycle(s State) (State, error) {
	if s.Wait.Active {
		return s, nil
	}
	opcode, err := in.Fetch(s)
	if err != nil {
		return s, err
	}
	return in.Step(s, opcode)
}

// Step executes exactly one instruction and returns the resulting state.
// On error the returned state is s, untouched. While a key read is pending
// Step does nothing.
func (in *Interpreter) Step(s State, opcode uint16) (State, error) {
	if s.Wait.Active {
		return s, nil
	}

	ins := Decode(opcode)
	next := s
	if err := in.execute(&next, ins); err != nil {
		return s, err
	}
	if ins.Op.Advances() {
		next.PC += 2
	}
	return next, nil
}

// this has lots of code redundancy in favor of readability: every case
// reads exactly like the instruction it implements
func (in *Interpreter) execute(c *State, ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpSys:
		// no host routines are modeled, SYS is a plain jump
		c.PC = ins.NNN
	case OpCls:
		c.Display.Clear()
	case OpRet:
		if c.SP <= 0 {
			return &StackUnderflowErr{PC: c.PC}
		}
		// pop return address
		c.PC = c.Stack[c.SP]
		c.SP--
	case OpJp:
		c.PC = ins.NNN
	case OpCall:
		if c.SP >= StackSize-1 {
			return &StackOverflowErr{PC: c.PC}
		}
		// push the address of the call itself, RET advances past it
		c.SP++
		c.Stack[c.SP] = c.PC
		c.PC = ins.NNN
	case OpSeByte:
		if c.V[x] == ins.KK {
			c.PC += 2
		}
	case OpSneByte:
		if c.V[x] != ins.KK {
			c.PC += 2
		}
	case OpSeReg:
		if c.V[x] == c.V[y] {
			c.PC += 2
		}
	case OpLdByte:
		c.V[x] = ins.KK
	case OpAddByte:
		c.V[x] += ins.KK
	case OpLdReg:
		c.V[x] = c.V[y]
	case OpOr:
		c.V[x] |= c.V[y]
	case OpAnd:
		c.V[x] &= c.V[y]
	case OpXor:
		c.V[x] ^= c.V[y]
	case OpAddReg:
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[0xF] = flag(sum > 0xFF)
		// only store the 8 least significant bits
		c.V[x] = uint8(sum)
	case OpSub:
		vx, vy := c.V[x], c.V[y]
		c.V[0xF] = flag(vx > vy)
		c.V[x] = vx - vy
	case OpShr:
		vx := c.V[x]
		c.V[0xF] = vx & 0x01 // least significant bit
		c.V[x] = vx >> 1
	case OpSubn:
		vx, vy := c.V[x], c.V[y]
		c.V[0xF] = flag(vy > vx)
		c.V[x] = vy - vx
	case OpShl:
		vx := c.V[x]
		c.V[0xF] = vx >> 7 // most significant bit
		c.V[x] = vx << 1
	case OpSneReg:
		if c.V[x] != c.V[y] {
			c.PC += 2
		}
	case OpLdI:
		c.I = ins.NNN
	case OpJpV0:
		c.PC = ins.NNN + uint16(c.V[0])
	case OpRnd:
		c.V[x] = in.Rand() & ins.KK
	case OpDrw:
		rows := int(ins.N)
		if int(c.I)+rows > MemorySize {
			return &AccessErr{Address: int(c.I) + rows - 1, PC: c.PC}
		}
		sprite := c.Memory[c.I : int(c.I)+rows]
		c.V[0xF] = flag(c.Display.Blit(sprite, c.V[x], c.V[y]))
	case OpSkp:
		if c.Keys.Pressed(c.V[x]) {
			c.PC += 2
		}
	case OpSknp:
		if !c.Keys.Pressed(c.V[x]) {
			c.PC += 2
		}
	case OpLdVxDT:
		c.V[x] = c.DT
	case OpLdK:
		c.Wait = KeyWait{Active: true, Register: x}
	case OpLdDT:
		c.DT = c.V[x]
	case OpLdST:
		c.ST = c.V[x]
	case OpAddI:
		c.I = (c.I + uint16(c.V[x])) & 0x0FFF
	case OpLdF:
		c.I = GlyphAddress(c.V[x])
	case OpLdB:
		if int(c.I)+2 >= MemorySize {
			return &AccessErr{Address: int(c.I) + 2, PC: c.PC}
		}
		value := c.V[x]
		c.Memory[c.I+2] = value % 10 // ones
		value /= 10
		c.Memory[c.I+1] = value % 10 // tens
		c.Memory[c.I] = value / 10   // hundreds
	case OpStore:
		if int(c.I)+int(x) >= MemorySize {
			return &AccessErr{Address: int(c.I) + int(x), PC: c.PC}
		}
		copy(c.Memory[c.I:int(c.I)+int(x)+1], c.V[:x+1])
	case OpLoad:
		if int(c.I)+int(x) >= MemorySize {
			return &AccessErr{Address: int(c.I) + int(x), PC: c.PC}
		}
		copy(c.V[:x+1], c.Memory[c.I:int(c.I)+int(x)+1])
	default:
		return &BadCodeErr{Opcode: ins.Opcode, PC: c.PC}
	}
	return nil
}
