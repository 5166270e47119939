// Message constructors
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

package proto

import (
	fpc "go-fpc"
)

// Shorthands for frequently built server-side frames.

func MakeGetInfoOk() *Pdu {
	return &Pdu{Handshake: &Handshake{GetInfo: &GetInfo{
		Ok: &GetInfoOk{Protocol: Protocol{
			SupportedVersion: []string{fpc.ProtocolVersion},
		}},
	}}}
}

func MakeConnectOk() *Pdu {
	return &Pdu{Handshake: &Handshake{Connect: &Connect{
		Ok: &ConnectOk{Server: Server{
			Name:    fpc.ServerName,
			Version: fpc.ServerVersion,
		}},
	}}}
}

func MakeConnectError(desc string) *Pdu {
	return &Pdu{Handshake: &Handshake{Connect: &Connect{
		Error: &ConnectError{
			UnsupportedProtocolVersion: &Desc{Description: desc},
		},
	}}}
}

func MakeRegisterOk() *Pdu {
	return &Pdu{MatchmakingQueue: &MatchmakingQueue{
		PlayerRegister: &PlayerRegister{Ok: &Empty{}},
	}}
}

func MakeRegisterError(e *PlayerRegisterError) *Pdu {
	return &Pdu{MatchmakingQueue: &MatchmakingQueue{
		PlayerRegister: &PlayerRegister{Error: e},
	}}
}

func MakeHeartbeatCheck() *Pdu {
	return &Pdu{MatchmakingQueue: &MatchmakingQueue{
		HeartbeatCheck: &Empty{},
	}}
}

func MakePlayerKick(desc string) *Pdu {
	return &Pdu{MatchmakingQueue: &MatchmakingQueue{
		PlayerKick: &Desc{Description: desc},
	}}
}

func MakeMoveError(desc string) *Pdu {
	return &Pdu{GameSession: &GameSession{Move: &Move{
		Error: &MoveError{ForbiddenMove: &Desc{Description: desc}},
	}}}
}

func MakeInit(countdown uint64, token string, starts StartPositions) *Pdu {
	return &Pdu{GameSession: &GameSession{Init: &Init{
		Countdown:      countdown,
		ReconnectID:    token,
		StartPositions: starts,
	}}}
}

func MakeUpdate(u Update) *Pdu {
	v := u
	return &Pdu{GameSession: &GameSession{Update: &v}}
}

// NoMove is the move_previous value of an update that follows a
// timeout.
func NoMove() Move {
	return Move{NoMove: &Empty{}}
}

// StatePdu converts a session condition into its wire form.
// REMAINING is only consulted for lost players.
func StatePdu(c fpc.Condition, remaining string) PlayerState {
	switch c {
	case fpc.NoState:
		return PlayerState{NoState: &Empty{}}
	case fpc.Check:
		return PlayerState{Check: &Empty{}}
	case fpc.Checkmate:
		return PlayerState{Checkmate: &Empty{}}
	case fpc.Stalemate:
		return PlayerState{Stalemate: &Empty{}}
	case fpc.Lost:
		return PlayerState{Lost: &Lost{RemainingPieces: remaining}}
	default:
		return PlayerState{NoState: &Empty{}}
	}
}
