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

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonics names every instruction after the retrogolib CHIP-8
// instruction table. SYS has no entry there.
var mnemonics = map[Op]*chip8.Instruction{
	OpCls:     chip8.Cls,
	OpRet:     chip8.Ret,
	OpJp:      chip8.Jp,
	OpJpV0:    chip8.Jp,
	OpCall:    chip8.Call,
	OpSeByte:  chip8.Se,
	OpSeReg:   chip8.Se,
	OpSneByte: chip8.Sne,
	OpSneReg:  chip8.Sne,
	OpLdByte:  chip8.Ld,
	OpLdReg:   chip8.Ld,
	OpLdI:     chip8.Ld,
	OpLdVxDT:  chip8.Ld,
	OpLdK:     chip8.Ld,
	OpLdDT:    chip8.Ld,
	OpLdST:    chip8.Ld,
	OpLdF:     chip8.Ld,
	OpLdB:     chip8.Ld,
	OpStore:   chip8.Ld,
	OpLoad:    chip8.Ld,
	OpAddByte: chip8.Add,
	OpAddReg:  chip8.Add,
	OpAddI:    chip8.Add,
	OpOr:      chip8.Or,
	OpAnd:     chip8.And,
	OpXor:     chip8.Xor,
	OpSub:     chip8.Sub,
	OpSubn:    chip8.Subn,
	OpShr:     chip8.Shr,
	OpShl:     chip8.Shl,
	OpRnd:     chip8.Rnd,
	OpDrw:     chip8.Drw,
	OpSkp:     chip8.Skp,
	OpSknp:    chip8.Sknp,
}

// Mnemonic returns the upper case instruction name, "SYS" for 0NNN and
// "DB" for opcodes that decode to nothing.
func (ins Instruction) Mnemonic() string {
	switch ins.Op {
	case OpUnknown:
		return "DB"
	case OpSys:
		return "SYS"
	}
	return strings.ToUpper(mnemonics[ins.Op].Name)
}

// String returns a pseudo-asm representation of the instruction.
func (ins Instruction) String() string {
	m := ins.Mnemonic()
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpUnknown:
		return fmt.Sprintf("DB %02X %02X", ins.Opcode>>8, ins.Opcode&0xFF)
	case OpCls, OpRet:
		return m
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("%s %03X", m, ins.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("%s V%1X,%02X", m, x, ins.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub,
		OpShr, OpSubn, OpShl:
		return fmt.Sprintf("%s V%1X,V%1X", m, x, y)
	case OpLdI:
		return fmt.Sprintf("%s I,%03X", m, ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("%s V0,%03X", m, ins.NNN)
	case OpDrw:
		return fmt.Sprintf("%s V%1X,V%1X,%1X", m, x, y, ins.N)
	case OpSkp, OpSknp:
		return fmt.Sprintf("%s V%1X", m, x)
	case OpLdVxDT:
		return fmt.Sprintf("%s V%1X,DT", m, x)
	case OpLdK:
		return fmt.Sprintf("%s V%1X,K", m, x)
	case OpLdDT:
		return fmt.Sprintf("%s DT,V%1X", m, x)
	case OpLdST:
		return fmt.Sprintf("%s ST,V%1X", m, x)
	case OpAddI:
		return fmt.Sprintf("%s I,V%1X", m, x)
	case OpLdF:
		return fmt.Sprintf("%s F,V%1X", m, x)
	case OpLdB:
		return fmt.Sprintf("%s B,V%1X", m, x)
	case OpStore:
		return fmt.Sprintf("%s [I],V%1X", m, x)
	case OpLoad:
		return fmt.Sprintf("%s V%1X,[I]", m, x)
	}
	return m
}

var descriptions = map[Op]string{
	OpUnknown: "Unknown / Raw Data",
	OpSys:     "0NNN: Jumps to address NNN (no host routine is called).",
	OpCls:     "00E0: Clears the screen.",
	OpRet:     "00EE: Returns from a subroutine.",
	OpJp:      "1NNN: Jumps to address NNN.",
	OpCall:    "2NNN: Calls subroutine at NNN.",
	OpSeByte:  "3XNN: Skips the next instruction if VX equals NN.",
	OpSneByte: "4XNN: Skips the next instruction if VX doesn't equal NN.",
	OpSeReg:   "5XY0: Skips the next instruction if VX equals VY.",
	OpLdByte:  "6XNN: Sets VX to NN.",
	OpAddByte: "7XNN: Adds NN to VX.",
	OpLdReg:   "8XY0: Sets VX to the value of VY.",
	OpOr:      "8XY1: Sets VX to VX | VY (bit-wise OR).",
	OpAnd:     "8XY2: Sets VX to VX & VY (bit-wise AND).",
	OpXor:     "8XY3: Sets VX to VX ^ VY (bit-wise XOR).",
	OpAddReg:  "8XY4: VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	OpSub:     "8XY5: VX -= VY. VF = 1 when VX > VY, 0 otherwise.",
	OpShr:     "8XY6: VX >>= 1. VF = least significant bit prior to the shift.",
	OpSubn:    "8XY7: VX = VY - VX. VF = 1 when VY > VX, 0 otherwise.",
	OpShl:     "8XYE: VX <<= 1. VF = most significant bit prior to the shift.",
	OpSneReg:  "9XY0: Skips the next instruction if VX doesn't equal VY.",
	OpLdI:     "ANNN: Sets I to the address NNN.",
	OpJpV0:    "BNNN: Jumps to the address NNN plus V0.",
	OpRnd:     "CXNN: Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	OpDrw:     "DXYN: Draws N rows of sprite pointed by I at VX,VY.",
	OpSkp:     "EX9E: Skips the next instruction if key VX is pressed.",
	OpSknp:    "EXA1: Skips the next instruction if key VX isn't pressed.",
	OpLdVxDT:  "FX07: Sets VX to the delay timer.",
	OpLdK:     "FX0A: Waits for a key press and stores it in VX.",
	OpLdDT:    "FX15: Sets the delay timer to VX.",
	OpLdST:    "FX18: Sets the sound timer to VX.",
	OpAddI:    "FX1E: Adds VX to I.",
	OpLdF:     "FX29: Sets I to the font glyph for the hex digit in VX.",
	OpLdB:     "FX33: Stores the decimal digits of VX at I, I+1 and I+2.",
	OpStore:   "FX55: Stores V0 to VX in memory starting at I.",
	OpLoad:    "FX65: Fills V0 to VX with memory starting at I.",
}

// Description returns a detailed description of what the instruction does.
func (ins Instruction) Description() string { return descriptions[ins.Op] }

// -----------------------------------------------------------------------------

// A Line is one entry of a disassembly listing.
type Line struct {
	Address uint16
	// Raw holds the 2 opcode bytes, or a single trailing byte.
	Raw         []byte
	Instruction Instruction
}

// Size returns the size of the line in bytes.
func (l Line) Size() int { return len(l.Raw) }

// Opcode returns the raw data as a big-endian integer.
func (l Line) Opcode() (res uint16) {
	res = uint16(l.Raw[0])
	if len(l.Raw) == 2 {
		res <<= 8
		res |= uint16(l.Raw[1])
	}
	return
}

// ASCII returns the ASCII representation of the raw data for this line.
// Returns an empty string if the data is not printable ascii.
func (l Line) ASCII() (res string) {
	if isPrintableASCII(l.Raw) {
		res = string(l.Raw)
	}
	return
}

// String returns the pseudo-asm text of the line.
func (l Line) String() string {
	if len(l.Raw) == 1 {
		return fmt.Sprintf("DB %02X", l.Raw[0])
	}
	return l.Instruction.String()
}

// Description returns the description of the instruction on this line.
func (l Line) Description() string {
	if len(l.Raw) == 1 {
		return descriptions[OpUnknown]
	}
	return l.Instruction.Description()
}

// Disassemble decodes b linearly as a sequence of opcodes, the first one at
// address origin. A trailing odd byte becomes a one byte data line.
func Disassemble(b []byte, origin uint16) []Line {
	res := make([]Line, 0, (len(b)+1)/2)
	address := origin
	for i := 0; i < len(b); i += 2 {
		if i+1 == len(b) {
			res = append(res, Line{Address: address, Raw: b[i : i+1]})
			break
		}
		raw := b[i : i+2]
		res = append(res, Line{
			Address:     address,
			Raw:         raw,
			Instruction: Decode(uint16(raw[0])<<8 | uint16(raw[1])),
		})
		address += 2
	}
	return res
}
