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

import "fmt"

// Settings holds the configuration parameters for a Machine.
type Settings struct {
	// InstructionsPerFrame is how many instructions run between two
	// frames. Timers tick and the screen is presented once per frame.
	InstructionsPerFrame int
	// FrameRate is the number of frames per second. Timers are meant to
	// age at 60hz.
	FrameRate int
	// StrictImage, when enabled, makes execution past the end of the loaded
	// program a fault instead of running the zeroed memory there.
	StrictImage bool
	// Seed for the random number generator used by RND. 0 picks a time
	// based seed.
	Seed int64
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Settings) Validate() error {
	if s.InstructionsPerFrame < 1 {
		return fmt.Errorf("InstructionsPerFrame must be >= 1, got %v",
			s.InstructionsPerFrame)
	}
	if s.InstructionsPerFrame > 10000 {
		return fmt.Errorf("InstructionsPerFrame must be <= 10000, got %v",
			s.InstructionsPerFrame)
	}
	if s.FrameRate < 1 || s.FrameRate > 1000 {
		return fmt.Errorf("FrameRate must be between 1 and 1000, got %v",
			s.FrameRate)
	}
	return nil
}

// DefaultSettings runs 5 instructions per frame at 60 frames per second.
var DefaultSettings = &Settings{
	InstructionsPerFrame: 5,
	FrameRate:            60,
}
