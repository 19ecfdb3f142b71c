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
	"context"
	"fmt"
	"sort"
)

// A Driver is an interface through which the emulator reaches the host:
// it presents the framebuffer and feeds key events back.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	// Called before the emulator starts executing the program.
	OnInit(m *Machine) error
	// Called once per frame before any instruction runs, should be used
	// for input polling and similar tasks. Returning ErrQuit stops the
	// machine.
	OnUpdate(m *Machine) error
	// Called once per frame with the current framebuffer.
	UpdateScreen(d *Display)
	// Called once per frame while the sound timer is non-zero.
	Beep()
	// Called when the machine stops running.
	OnClose()
	// Returns custom data that can be retrieved through the emulator by
	// calling GetDriverData()
	GetData(key string) interface{}
	// Sets custom data that can be set through the emulator by
	// calling SetDriverData()
	SetData(key string, value interface{}) error
}

// A Runner is a Driver that owns the main loop, for toolkits that call
// back into the program once per frame. Machine.Run hands control to it
// and the runner is expected to call Machine.Frame on every frame.
type Runner interface {
	Run(ctx context.Context, m *Machine) error
}

// -----------------------------------------------------------------------------

var drivers map[string]Driver

// RegisterDriver registers a driver to a name. The driver can then be used
// by passing its name to New.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func RegisterDriver(name string, drv Driver) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = drv
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// Drivers returns the names of all registered drivers, sorted.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver, which ignores all calls.
type NullDriver struct{}

func (d NullDriver) OnInit(m *Machine) error        { return nil }
func (d NullDriver) OnUpdate(m *Machine) error      { return nil }
func (d NullDriver) UpdateScreen(s *Display)        {}
func (d NullDriver) Beep()                          {}
func (d NullDriver) OnClose()                       {}
func (d NullDriver) GetData(key string) interface{} { return nil }
func (d NullDriver) SetData(key string, value interface{}) error {
	return fmt.Errorf("this driver has no settable data")
}

// -----------------------------------------------------------------------------

func init() {
	drivers = make(map[string]Driver)

	if err := RegisterDriver("null", &NullDriver{}); err != nil {
		panic(err)
	}
}
