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

//go:build statsview
// +build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address the server listens on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the stats server in a new goroutine.
func Launch(logger *log.Logger) error {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server available", log.String("url", "http://"+Address+url))
	return nil
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
