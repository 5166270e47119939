// Shared types and constants
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

package fpc

import (
	"fmt"
	"time"
)

// Server identity, as reported during the handshake.
const (
	ServerName      = "go-fpc"
	ServerVersion   = "0.0.1"
	ProtocolVersion = "0"
)

// Default timings.  The authoritative values live in conf, these are
// just the defaults it starts from.
const (
	DefaultDispatchTick          = 1 * time.Second
	DefaultHeartbeatWaitTimeout  = 2 * time.Second
	DefaultHeartbeatReadyTimeout = 5 * time.Second
	DefaultInitCountdown         = 10 * time.Second
	DefaultPlayerTimer           = 60 * time.Second
	DefaultPlayerGrace           = 5 * time.Second
)

// Color designates one of the four fixed seats.  The numeric order is
// also the turn order (Red moves first).
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Green
)

// Seats lists the four colors in turn order.
var Seats = [4]Color{Red, Blue, Yellow, Green}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	default:
		panic(fmt.Sprintf("Illegal color: %d", c))
	}
}

// Next returns the seat that follows C in turn order.
func (c Color) Next() Color {
	return Color((uint8(c) + 1) % 4)
}

// Condition describes how a seated player currently stands.
type Condition uint8

const (
	NoState Condition = iota
	Check
	Checkmate
	Stalemate
	Lost
)

func (s Condition) String() string {
	switch s {
	case NoState:
		return "NoState"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Lost:
		return "Lost"
	default:
		panic(fmt.Sprintf("Illegal condition: %d", s))
	}
}

// Movable reports whether a player in this condition is still
// scheduled for moves.
func (s Condition) Movable() bool {
	return s != Lost
}
