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

// isPrintableASCII reports whether every byte of s is in the printable
// range 0x20-0x7E.
func isPrintableASCII(s []byte) bool {
	for _, c := range s {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// flag converts a condition to the 0/1 value stored in VF.
func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// wrap reduces v into [0, size).
func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
