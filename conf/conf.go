// Configuration Specification
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
	"time"

	fpc "go-fpc"
)

// Internal representation, as written in the TOML file.  Timings are
// given in milliseconds.
type conf struct {
	Addr     string `toml:"addr"`
	Database struct {
		File string `toml:"file"`
	} `toml:"database"`
	Matchmaking struct {
		Tick           uint `toml:"tick"`
		HeartbeatWait  uint `toml:"heartbeat-wait"`
		HeartbeatReady uint `toml:"heartbeat-ready"`
	} `toml:"matchmaking"`
	Session struct {
		Countdown   uint `toml:"countdown"`
		PlayerTimer uint `toml:"player-timer"`
		Grace       uint `toml:"grace"`
	} `toml:"session"`
}

// Public configuration
type Conf struct {
	// Listen address of the websocket endpoint
	Addr string

	// File to store the game history database
	Database string

	// Matchmaking dispatcher timings
	DispatchTick          time.Duration
	HeartbeatWaitTimeout  time.Duration
	HeartbeatReadyTimeout time.Duration

	// Game session timings
	InitCountdown time.Duration // pause before the first move call
	PlayerTimer   time.Duration // per-player think time
	PlayerGrace   time.Duration // free time per turn ("timer_2")

	// Internal state
	man []Manager // List of system managers
	run bool      // Running flag
}

// Configuration object used by default
var defaultConfig = Conf{
	Addr:     "0.0.0.0:8080",
	Database: "fpc.db",

	DispatchTick:          fpc.DefaultDispatchTick,
	HeartbeatWaitTimeout:  fpc.DefaultHeartbeatWaitTimeout,
	HeartbeatReadyTimeout: fpc.DefaultHeartbeatReadyTimeout,

	InitCountdown: fpc.DefaultInitCountdown,
	PlayerTimer:   fpc.DefaultPlayerTimer,
	PlayerGrace:   fpc.DefaultPlayerGrace,
}
