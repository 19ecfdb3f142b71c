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

// Package statsview offers a local HTTP server with runtime statistics of
// the emulator process. It is only functional when built with the
// statsview build tag:
//
//	go build -tags statsview ./tl-hachi
//
// Graphs are then served at localhost:12600/debug/statsview and the
// standard pprof endpoints at localhost:12600/debug/pprof/.
// Underlying functionality provided by "github.com/go-echarts/statsview".
package statsview
