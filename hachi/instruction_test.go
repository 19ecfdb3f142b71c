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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x0123, OpSys},
		{0x0000, OpSys},
		{0x01E0, OpSys},
		{0x1ABC, OpJp},
		{0x2ABC, OpCall},
		{0x3A12, OpSeByte},
		{0x4A12, OpSneByte},
		{0x5AB0, OpSeReg},
		{0x6A12, OpLdByte},
		{0x7A12, OpAddByte},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x9AB0, OpSneReg},
		{0xA22A, OpLdI},
		{0xB300, OpJpV0},
		{0xCAFF, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdK},
		{0xFA15, OpLdDT},
		{0xFA18, OpLdST},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpStore},
		{0xFA65, OpLoad},

		{0x8AB8, OpUnknown},
		{0x8ABF, OpUnknown},
		{0xEAFF, OpUnknown},
		{0xFAFF, OpUnknown},
		{0xFA25, OpUnknown},
		{0xFA00, OpUnknown},
	}

	for _, tt := range tests {
		ins := Decode(tt.opcode)
		assert.Equal(t, tt.op, ins.Op, ins.String())
		assert.Equal(t, tt.opcode, ins.Opcode)
	}
}

func TestDecodeOperands(t *testing.T) {
	ins := Decode(0xD4A7)
	assert.Equal(t, uint8(0x4), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xA7), ins.KK)
	assert.Equal(t, uint16(0x4A7), ins.NNN)
}

func TestDecodeFamilyMasks(t *testing.T) {
	// families E and F select on the low nibble only, except for the
	// instructions ending in 5
	assert.Equal(t, OpSkp, Decode(0xE10E).Op)
	assert.Equal(t, OpSknp, Decode(0xE1F1).Op)
	assert.Equal(t, OpAddI, Decode(0xF12E).Op)
	assert.Equal(t, OpLdST, Decode(0xF128).Op)
	assert.Equal(t, OpUnknown, Decode(0xF135).Op)
}

func TestDecodeCoverage(t *testing.T) {
	known := 0
	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		if Decode(uint16(opcode)).Op != OpUnknown {
			known++
		}
	}
	// family 0 and 1-7, 9-D entirely, 9 of 16 8XYN forms, EX?E and EX?1,
	// FX?5 for 3 low bytes and FX?N for 6 low nibbles
	want := 0x1000 + 12*0x1000 + 9*0x100 + 2*0x100 + 3*0x10 + 6*0x100
	assert.Equal(t, want, known)
}

func TestOpAdvances(t *testing.T) {
	for op := OpSys; op <= OpLoad; op++ {
		want := op != OpJp && op != OpCall && op != OpJpV0
		assert.Equal(t, want, op.Advances(), descriptions[op])
	}
}
