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

func TestBlitRowsMSBFirst(t *testing.T) {
	var d Display
	collision := d.Blit([]byte{0xA0, 0x01}, 10, 4)
	assert.False(t, collision)
	assert.True(t, d[4][10])
	assert.False(t, d[4][11])
	assert.True(t, d[4][12])
	assert.True(t, d[5][17])
	assert.Equal(t, 3, d.Lit())
}

func TestBlitWrapsVertically(t *testing.T) {
	var d Display
	d.Blit([]byte{0x80, 0x80, 0x80}, 0, 31)
	assert.True(t, d[31][0])
	assert.True(t, d[0][0])
	assert.True(t, d[1][0])
}

func TestBlitCorner(t *testing.T) {
	var d Display
	d.Blit([]byte{0xC0, 0xC0}, 63, 31)
	for _, p := range [][2]int{{63, 31}, {0, 31}, {63, 0}, {0, 0}} {
		assert.True(t, d.Pixel(p[0], p[1]))
	}
	assert.Equal(t, 4, d.Lit())
}

func TestBlitEmptySprite(t *testing.T) {
	var d Display
	d[0][0] = true
	assert.False(t, d.Blit(nil, 0, 0))
	assert.False(t, d.Blit([]byte{0x00}, 0, 0))
	assert.Equal(t, 1, d.Lit())
}

func TestPixelWraps(t *testing.T) {
	var d Display
	d[0][0] = true
	assert.True(t, d.Pixel(Width, Height))
	assert.True(t, d.Pixel(-Width, -Height))
	assert.False(t, d.Pixel(1, 0))
}

func TestClear(t *testing.T) {
	var d Display
	d.Blit(Font[:GlyphSize], 20, 20)
	assert.Equal(t, 14, d.Lit())
	d.Clear()
	assert.Equal(t, 0, d.Lit())
}
