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

// Op identifies one of the 35 instructions.
type Op uint8

// Instruction set. The comment on each one is its opcode pattern.
const (
	OpUnknown Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XKK
	OpSneByte    // 4XKK
	OpSeReg      // 5XY0
	OpLdByte     // 6XKK
	OpAddByte    // 7XKK
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXKK
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdK        // FX0A
	OpLdDT       // FX15
	OpLdST       // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpStore      // FX55
	OpLoad       // FX65
)

// Advances reports whether PC moves to the next opcode after executing op.
// Jumps and calls set PC themselves.
func (op Op) Advances() bool {
	switch op {
	case OpJp, OpCall, OpJpV0:
		return false
	}
	return true
}

// An Instruction is a decoded opcode together with its operands.
type Instruction struct {
	Op     Op
	Opcode uint16
	// Register selectors from bits 8-11 and 4-7.
	X, Y uint8
	// Low nibble.
	N uint8
	// Low byte.
	KK uint8
	// Low 12 bits.
	NNN uint16
}

// Decode maps a raw opcode to its instruction. Opcodes that match no
// instruction decode to OpUnknown.
//
// Most families are selected by the top nibble alone. Families 0x8 and 0xE
// are told apart by the low nibble (mask F00F), family 0xF by the low byte
// for the three instructions ending in 5 (mask F0FF) and by the low nibble
// for the others.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8(opcode & 0x0F00 >> 8),
		Y:      uint8(opcode & 0x00F0 >> 4),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			ins.Op = OpCls
		case 0x00EE:
			ins.Op = OpRet
		default:
			ins.Op = OpSys
		}
	case 0x1000:
		ins.Op = OpJp
	case 0x2000:
		ins.Op = OpCall
	case 0x3000:
		ins.Op = OpSeByte
	case 0x4000:
		ins.Op = OpSneByte
	case 0x5000:
		ins.Op = OpSeReg
	case 0x6000:
		ins.Op = OpLdByte
	case 0x7000:
		ins.Op = OpAddByte
	case 0x8000:
		ins.Op = aluOps[opcode&0x000F]
	case 0x9000:
		ins.Op = OpSneReg
	case 0xA000:
		ins.Op = OpLdI
	case 0xB000:
		ins.Op = OpJpV0
	case 0xC000:
		ins.Op = OpRnd
	case 0xD000:
		ins.Op = OpDrw
	case 0xE000:
		switch opcode & 0xF00F {
		case 0xE00E:
			ins.Op = OpSkp
		case 0xE001:
			ins.Op = OpSknp
		}
	case 0xF000:
		if opcode&0x000F == 0x0005 {
			switch opcode & 0xF0FF {
			case 0xF015:
				ins.Op = OpLdDT
			case 0xF055:
				ins.Op = OpStore
			case 0xF065:
				ins.Op = OpLoad
			}
			break
		}
		switch opcode & 0xF00F {
		case 0xF007:
			ins.Op = OpLdVxDT
		case 0xF00A:
			ins.Op = OpLdK
		case 0xF008:
			ins.Op = OpLdST
		case 0xF00E:
			ins.Op = OpAddI
		case 0xF009:
			ins.Op = OpLdF
		case 0xF003:
			ins.Op = OpLdB
		}
	}
	return ins
}

// 8XYN by low nibble; the gaps stay OpUnknown.
var aluOps = [16]Op{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}
