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

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Francesco149/hachi-vm/hachi"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{"-ipf", "12", "-hz", "30", "-strict",
		"-seed", "7", "-driver", "null", "pong.ch8"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.file)
	assert.Equal(t, "null", opts.driver)
	assert.Equal(t, hachi.Settings{
		InstructionsPerFrame: 12,
		FrameRate:            30,
		StrictImage:          true,
		Seed:                 7,
	}, opts.settings)
	assert.False(t, opts.disasm)
}

func TestParseFlagsDefaults(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{"pong.ch8"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "termloop", opts.driver)
	assert.Equal(t, *hachi.DefaultSettings, opts.settings)
}

func TestParseFlagsUsage(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags(nil, &out)
	assert.True(t, errors.Is(err, errUsage))
	assert.Contains(t, out.String(), "usage:")
	assert.Contains(t, out.String(), "-ipf")

	out.Reset()
	_, err = parseFlags([]string{"-h"}, &out)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = parseFlags([]string{"-ipf", "0", "pong.ch8"}, &out)
	assert.ErrorContains(t, err, "InstructionsPerFrame")
}

func TestWriteDisassembly(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, writeDisassembly(&out, []byte{0xA2, 0x2A, 0x48, 0x49, 0x07}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 4, len(lines))
	assert.Contains(t, lines[0], "pseudo-code")
	assert.Contains(t, lines[1], "0200")
	assert.Contains(t, lines[1], "A22A")
	assert.Contains(t, lines[1], "LD I,22A")
	assert.Contains(t, lines[2], "`HI`")
	assert.Contains(t, lines[3], "DB 07")
}

func TestRunEmulator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x12, 0x00}, 0o644))

	opts := options{file: path, driver: "null", settings: *hachi.DefaultSettings}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runEmulator(ctx, log.NewTestLogger(t), opts))

	opts.file = filepath.Join(t.TempDir(), "missing.ch8")
	assert.Error(t, runEmulator(context.Background(), log.NewTestLogger(t), opts))
}
