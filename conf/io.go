// Configuration Input and Output
//
// Copyright (c) 2022  The go-fpc authors
//
// This file is part of go-fpc.
//
// go-fpc is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-fpc is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-fpc. If not, see
// <http://www.gnu.org/licenses/>

package conf

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Parse a configuration from R
func load(r io.Reader) (*Conf, error) {
	var data conf
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConfig

	ms := func(n uint) time.Duration {
		return time.Duration(n) * time.Millisecond
	}
	if data.Addr != "" {
		c.Addr = data.Addr
	}
	if data.Database.File != "" {
		c.Database = data.Database.File
	}
	if data.Matchmaking.Tick != 0 {
		c.DispatchTick = ms(data.Matchmaking.Tick)
	}
	if data.Matchmaking.HeartbeatWait != 0 {
		c.HeartbeatWaitTimeout = ms(data.Matchmaking.HeartbeatWait)
	}
	if data.Matchmaking.HeartbeatReady != 0 {
		c.HeartbeatReadyTimeout = ms(data.Matchmaking.HeartbeatReady)
	}
	if data.Session.Countdown != 0 {
		c.InitCountdown = ms(data.Session.Countdown)
	}
	if data.Session.PlayerTimer != 0 {
		c.PlayerTimer = ms(data.Session.PlayerTimer)
	}
	if data.Session.Grace != 0 {
		c.PlayerGrace = ms(data.Session.Grace)
	}

	return &c, nil
}

// Open a configuration file and return it
func Open(name string) (*Conf, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return load(file)
}

// Return a copy of the default configuration
func Default() *Conf {
	c := defaultConfig
	return &c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	var data conf

	data.Addr = c.Addr
	data.Database.File = c.Database
	data.Matchmaking.Tick = uint(c.DispatchTick / time.Millisecond)
	data.Matchmaking.HeartbeatWait = uint(c.HeartbeatWaitTimeout / time.Millisecond)
	data.Matchmaking.HeartbeatReady = uint(c.HeartbeatReadyTimeout / time.Millisecond)
	data.Session.Countdown = uint(c.InitCountdown / time.Millisecond)
	data.Session.PlayerTimer = uint(c.PlayerTimer / time.Millisecond)
	data.Session.Grace = uint(c.PlayerGrace / time.Millisecond)

	return toml.NewEncoder(wr).Encode(data)
}
