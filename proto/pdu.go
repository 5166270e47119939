// Wire protocol data units
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

// Package proto defines the JSON messages exchanged with clients.
//
// Every message is one text frame holding one Pdu.  The tree below
// mirrors the externally-tagged union layout of the protocol: each
// union is a struct with one optional pointer per variant, so that
// encoding/json produces exactly one snake_case tag per level, e.g.
//
//	{"handshake":{"get_info":{"request":{}}}}
package proto

import (
	"encoding/json"
	"fmt"

	"go-fpc/board"
)

// Empty is the payload of variants that carry no data.
type Empty struct{}

// Desc is the payload of all error-ish variants that only carry a
// description.
type Desc struct {
	Description string `json:"description"`
}

type Pdu struct {
	Handshake        *Handshake        `json:"handshake,omitempty"`
	MatchmakingQueue *MatchmakingQueue `json:"matchmaking_queue,omitempty"`
	GameSession      *GameSession      `json:"game_session,omitempty"`
}

// Encode serialises the PDU into one wire frame.
func (p *Pdu) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses one wire frame.
func Decode(frame []byte) (*Pdu, error) {
	var p Pdu
	if err := json.Unmarshal(frame, &p); err != nil {
		return nil, err
	}
	if p.Handshake == nil && p.MatchmakingQueue == nil && p.GameSession == nil {
		return nil, fmt.Errorf("unknown pdu tag")
	}
	return &p, nil
}

// Handshake //////////////////////////////////

type Handshake struct {
	GetInfo *GetInfo `json:"get_info,omitempty"`
	Connect *Connect `json:"connect,omitempty"`
}

// Protocol is either the list of versions a server supports or the
// single version a client speaks.
type Protocol struct {
	SupportedVersion []string `json:"supported_version,omitempty"`
	Version          string   `json:"version,omitempty"`
}

type GetInfo struct {
	Request *Empty        `json:"request,omitempty"`
	Ok      *GetInfoOk    `json:"ok,omitempty"`
	Error   *GetInfoError `json:"error,omitempty"`
}

type GetInfoOk struct {
	Protocol Protocol `json:"protocol"`
}

type GetInfoError struct {
	UnspecifiedError *Desc `json:"unspecified_error,omitempty"`
}

type Connect struct {
	Client *ConnectClient `json:"client,omitempty"`
	Ok     *ConnectOk     `json:"ok,omitempty"`
	Error  *ConnectError  `json:"error,omitempty"`
}

type ConnectClient struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Protocol Protocol `json:"protocol"`
}

type ConnectOk struct {
	Server Server `json:"server"`
}

type Server struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ConnectError struct {
	UnsupportedProtocolVersion *Desc `json:"unsupported_protocol_version,omitempty"`
	UnspecifiedError           *Desc `json:"unspecified_error,omitempty"`
}

// MatchmakingQueue ///////////////////////////

type MatchmakingQueue struct {
	PlayerRegister *PlayerRegister `json:"player_register,omitempty"`
	PlayerLeave    *Empty          `json:"player_leave,omitempty"`
	HeartbeatCheck *Empty          `json:"heartbeat_check,omitempty"`
	PlayerKick     *Desc           `json:"player_kick,omitempty"`
}

type PlayerRegister struct {
	Name  *string              `json:"name,omitempty"`
	Ok    *Empty               `json:"ok,omitempty"`
	Error *PlayerRegisterError `json:"error,omitempty"`
}

type PlayerRegisterError struct {
	BadName           *Desc `json:"bad_name,omitempty"`
	AlreadyRegistered *Desc `json:"already_registered,omitempty"`
	Handshake         *Desc `json:"handshake,omitempty"`
	UnspecifiedError  *Desc `json:"unspecified_error,omitempty"`
}

// GameSession ////////////////////////////////

type GameSession struct {
	Init   *Init   `json:"init,omitempty"`
	Move   *Move   `json:"move,omitempty"`
	Update *Update `json:"update,omitempty"`
}

type Init struct {
	Countdown      uint64         `json:"countdown"`
	ReconnectID    string         `json:"reconnect_id"`
	StartPositions StartPositions `json:"start_positions"`
}

type StartPositions struct {
	Red    StartPosition `json:"red"`
	Blue   StartPosition `json:"blue"`
	Yellow StartPosition `json:"yellow"`
	Green  StartPosition `json:"green"`
}

type StartPosition struct {
	PlayerName string         `json:"player_name"`
	LeftRook   board.Position `json:"left_rook"`
}

type Move struct {
	Basic     *BasicMove     `json:"basic,omitempty"`
	Capture   *BasicMove     `json:"capture,omitempty"`
	Promotion *PromotionMove `json:"promotion,omitempty"`
	Castling  *CastlingMove  `json:"castling,omitempty"`
	NoMove    *Empty         `json:"no_move,omitempty"`
	Error     *MoveError     `json:"error,omitempty"`
}

type BasicMove struct {
	From board.Position `json:"from"`
	To   board.Position `json:"to"`
}

type PromotionMove struct {
	From   board.Position `json:"from"`
	To     board.Position `json:"to"`
	Figure board.Figure   `json:"figure"`
}

type CastlingMove struct {
	KingFrom board.Position `json:"king_from"`
	KingTo   board.Position `json:"king_to"`
	RookFrom board.Position `json:"rook_from"`
	RookTo   board.Position `json:"rook_to"`
}

type MoveError struct {
	ForbiddenMove *Desc `json:"forbidden_move,omitempty"`
}

type Update struct {
	MoveCall      MoveCall      `json:"move_call"`
	MovePrevious  Move          `json:"move_previous"`
	PlayersStates PlayersStates `json:"players_states"`
}

type MoveCall struct {
	NoCall *Empty `json:"no_call,omitempty"`
	Call   *Call  `json:"call,omitempty"`
}

type Call struct {
	Player string `json:"player"`
	Timer  uint64 `json:"timer"`
	Timer2 uint64 `json:"timer_2"`
}

type PlayersStates struct {
	Red    PlayerState `json:"red"`
	Blue   PlayerState `json:"blue"`
	Yellow PlayerState `json:"yellow"`
	Green  PlayerState `json:"green"`
}

type PlayerState struct {
	NoState   *Empty `json:"no_state,omitempty"`
	Check     *Empty `json:"check,omitempty"`
	Checkmate *Empty `json:"checkmate,omitempty"`
	Stalemate *Empty `json:"stalemate,omitempty"`
	Lost      *Lost  `json:"lost,omitempty"`
}

type Lost struct {
	RemainingPieces string `json:"remaining_pieces"`
}

// What happens to the pieces of a player who dropped out of the
// game.
const (
	RemainingClear       = "clear"
	RemainingTurnToStone = "turn_to_stone"
)
