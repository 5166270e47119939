// Wire protocol tests
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
	"testing"

	fpc "go-fpc"
	"go-fpc/board"
)

func TestEncode(t *testing.T) {
	name := "Alice"
	for i, test := range []struct {
		pdu  *Pdu
		want string
	}{
		{
			&Pdu{Handshake: &Handshake{GetInfo: &GetInfo{
				Request: &Empty{},
			}}},
			`{"handshake":{"get_info":{"request":{}}}}`,
		}, {
			MakeGetInfoOk(),
			`{"handshake":{"get_info":{"ok":{"protocol":{"supported_version":["0"]}}}}}`,
		}, {
			MakeConnectOk(),
			`{"handshake":{"connect":{"ok":{"server":{"name":"go-fpc","version":"0.0.1"}}}}}`,
		}, {
			&Pdu{MatchmakingQueue: &MatchmakingQueue{
				PlayerRegister: &PlayerRegister{Name: &name},
			}},
			`{"matchmaking_queue":{"player_register":{"name":"Alice"}}}`,
		}, {
			MakeRegisterOk(),
			`{"matchmaking_queue":{"player_register":{"ok":{}}}}`,
		}, {
			MakeHeartbeatCheck(),
			`{"matchmaking_queue":{"heartbeat_check":{}}}`,
		}, {
			MakePlayerKick("Heartbeat timeout"),
			`{"matchmaking_queue":{"player_kick":{"description":"Heartbeat timeout"}}}`,
		}, {
			&Pdu{GameSession: &GameSession{Move: &Move{
				Basic: &BasicMove{
					From: board.Pos(7, 2),
					To:   board.Pos(7, 3),
				},
			}}},
			`{"game_session":{"move":{"basic":{"from":"g2","to":"g3"}}}}`,
		}, {
			&Pdu{GameSession: &GameSession{Move: &Move{
				Promotion: &PromotionMove{
					From:   board.Pos(7, 13),
					To:     board.Pos(7, 14),
					Figure: board.Queen,
				},
			}}},
			`{"game_session":{"move":{"promotion":{"from":"g13","to":"g14","figure":"queen"}}}}`,
		}, {
			&Pdu{GameSession: &GameSession{Move: &Move{
				Castling: &CastlingMove{
					KingFrom: board.Pos(8, 1),
					KingTo:   board.Pos(10, 1),
					RookFrom: board.Pos(11, 1),
					RookTo:   board.Pos(9, 1),
				},
			}}},
			`{"game_session":{"move":{"castling":{"king_from":"h1","king_to":"j1","rook_from":"k1","rook_to":"i1"}}}}`,
		}, {
			MakeMoveError("square g3 is occupied"),
			`{"game_session":{"move":{"error":{"forbidden_move":{"description":"square g3 is occupied"}}}}}`,
		},
	} {
		frame, err := test.pdu.Encode()
		if err != nil {
			t.Errorf("(%d) Encode failed: %s", i, err)
			continue
		}
		if string(frame) != test.want {
			t.Errorf("(%d) encoded to\n%s\nwant\n%s", i, frame, test.want)
		}

		back, err := Decode(frame)
		if err != nil {
			t.Errorf("(%d) Decode failed: %s", i, err)
			continue
		}
		again, err := back.Encode()
		if err != nil {
			t.Errorf("(%d) re-encode failed: %s", i, err)
		} else if string(again) != test.want {
			t.Errorf("(%d) re-encoded to\n%s\nwant\n%s", i, again, test.want)
		}
	}
}

func TestDecode(t *testing.T) {
	frame := []byte(`{"handshake":{"connect":{"client":{` +
		`"name":"bot","version":"1.2","protocol":{"version":"0"}}}}}`)
	pdu, err := Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if pdu.Handshake == nil || pdu.Handshake.Connect == nil {
		t.Fatal("connect arm missing")
	}
	client := pdu.Handshake.Connect.Client
	if client == nil {
		t.Fatal("client variant missing")
	}
	if client.Name != "bot" || client.Version != "1.2" {
		t.Errorf("client = %+v", client)
	}
	if client.Protocol.Version != "0" {
		t.Errorf("protocol version = %q, want \"0\"", client.Protocol.Version)
	}

	for i, bad := range []string{
		``,
		`{}`,
		`{"something_else":{}}`,
		`[1,2,3]`,
		`{"game_session":{"move":{"basic":{"from":"a1","to":"a2"}}}}`,
	} {
		if _, err := Decode([]byte(bad)); err == nil {
			t.Errorf("(%d) Decode(%q) accepted", i, bad)
		}
	}
}

func TestMakeInit(t *testing.T) {
	starts := StartPositions{
		Red:    StartPosition{PlayerName: "r", LeftRook: board.LeftRook(fpc.Red)},
		Blue:   StartPosition{PlayerName: "b", LeftRook: board.LeftRook(fpc.Blue)},
		Yellow: StartPosition{PlayerName: "y", LeftRook: board.LeftRook(fpc.Yellow)},
		Green:  StartPosition{PlayerName: "g", LeftRook: board.LeftRook(fpc.Green)},
	}
	frame, err := MakeInit(10, "tok", starts).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_session":{"init":{"countdown":10,"reconnect_id":"tok",` +
		`"start_positions":{` +
		`"red":{"player_name":"r","left_rook":"d1"},` +
		`"blue":{"player_name":"b","left_rook":"a11"},` +
		`"yellow":{"player_name":"y","left_rook":"k14"},` +
		`"green":{"player_name":"g","left_rook":"n4"}}}}}`
	if string(frame) != want {
		t.Errorf("encoded to\n%s\nwant\n%s", frame, want)
	}
}

func TestMakeUpdate(t *testing.T) {
	u := Update{
		MoveCall: MoveCall{Call: &Call{Player: "Red", Timer: 60, Timer2: 5}},
		MovePrevious: NoMove(),
		PlayersStates: PlayersStates{
			Red:    StatePdu(fpc.NoState, ""),
			Blue:   StatePdu(fpc.Check, ""),
			Yellow: StatePdu(fpc.Lost, RemainingTurnToStone),
			Green:  StatePdu(fpc.Lost, RemainingClear),
		},
	}
	frame, err := MakeUpdate(u).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_session":{"update":{` +
		`"move_call":{"call":{"player":"Red","timer":60,"timer_2":5}},` +
		`"move_previous":{"no_move":{}},` +
		`"players_states":{` +
		`"red":{"no_state":{}},` +
		`"blue":{"check":{}},` +
		`"yellow":{"lost":{"remaining_pieces":"turn_to_stone"}},` +
		`"green":{"lost":{"remaining_pieces":"clear"}}}}}}`
	if string(frame) != want {
		t.Errorf("encoded to\n%s\nwant\n%s", frame, want)
	}
}
