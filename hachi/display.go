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

// Display is the monochrome framebuffer, addressed [row][column].
type Display [Height][Width]bool

// Clear turns every pixel off.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel reports whether the pixel at column x, row y is on. Coordinates
// wrap around the screen edges.
func (d *Display) Pixel(x, y int) bool {
	return d[wrap(y, Height)][wrap(x, Width)]
}

// Blit XORs sprite onto the display with its top left corner at column x,
// row y. Each sprite byte is one row of 8 pixels, most significant bit
// first. Rows and columns that fall off an edge wrap around to the
// opposite one.
// Returns true if any pixel that was on got turned off.
func (d *Display) Blit(sprite []byte, x, y uint8) (collision bool) {
	for row, line := range sprite {
		py := (int(y) + row) % Height
		for bit := 0; bit < 8; bit++ {
			if line&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % Width
			if d[py][px] {
				collision = true
			}
			d[py][px] = !d[py][px]
		}
	}
	return
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() (n int) {
	for y := range d {
		for x := range d[y] {
			if d[y][x] {
				n++
			}
		}
	}
	return
}
