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

// Keys is a bitfield of the 16 keys of the hex keypad, bit n set meaning
// key n is held down. 8, 4, 6 and 2 are typically used for directional
// input.
type Keys uint16

// Key flags for the Keys bitfield.
const (
	Key0 Keys = 1 << iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Pressed reports whether key k is held. Codes above 0xF are never held.
func (k Keys) Pressed(key uint8) bool {
	if key > 0x0F {
		return false
	}
	return k&(1<<key) != 0
}

// With returns k with key set or cleared.
func (k Keys) With(key uint8, pressed bool) Keys {
	if key > 0x0F {
		return k
	}
	if pressed {
		return k | 1<<key
	}
	return k &^ (1 << key)
}

// DefaultKeyLayout maps host characters to keypad codes, laying the
// keypad out on the left-hand block of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyLayout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// TickTimers ages both timers by one tick. Neither goes below zero.
func TickTimers(s State) State {
	if s.DT > 0 {
		s.DT--
	}
	if s.ST > 0 {
		s.ST--
	}
	return s
}

// DeliverKeyEvent records a key going down or up. A key press resolves a
// pending LD VX,K by storing the key code in the waiting register.
// Codes above 0xF are not keypad keys and leave the state untouched.
func DeliverKeyEvent(s State, key uint8, pressed bool) State {
	if key > 0x0F {
		return s
	}
	s.Keys = s.Keys.With(key, pressed)
	if pressed && s.Wait.Active {
		s.V[s.Wait.Register] = key
		s.Wait = KeyWait{}
	}
	return s
}
