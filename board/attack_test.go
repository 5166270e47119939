// Attack detection tests
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

package board

import (
	"testing"

	fpc "go-fpc"
)

func TestUnderAttack(t *testing.T) {
	target := Pos(7, 7) // g7

	// The defending color must differ from the attacker's: own
	// pieces never count as a threat.
	for i, test := range []struct {
		name     string
		piece    Piece
		at       Position
		defender fpc.Color
		attacked bool
	}{
		{"rook on file", Piece{Figure: Rook, Color: fpc.Blue}, Pos(7, 12), fpc.Red, true},
		{"rook on rank", Piece{Figure: Rook, Color: fpc.Blue}, Pos(2, 7), fpc.Red, true},
		{"rook off line", Piece{Figure: Rook, Color: fpc.Blue}, Pos(6, 9), fpc.Red, false},
		{"bishop on diagonal", Piece{Figure: Bishop, Color: fpc.Blue}, Pos(10, 10), fpc.Red, true},
		{"bishop on file", Piece{Figure: Bishop, Color: fpc.Blue}, Pos(7, 10), fpc.Red, false},
		{"queen on diagonal", Piece{Figure: Queen, Color: fpc.Blue}, Pos(4, 4), fpc.Red, true},
		{"queen on rank", Piece{Figure: Queen, Color: fpc.Blue}, Pos(11, 7), fpc.Red, true},
		{"knight", Piece{Figure: Knight, Color: fpc.Blue}, Pos(8, 9), fpc.Red, true},
		{"knight too far", Piece{Figure: Knight, Color: fpc.Blue}, Pos(9, 9), fpc.Red, false},
		{"king adjacent", Piece{Figure: King, Color: fpc.Blue}, Pos(8, 8), fpc.Red, true},
		{"king at distance", Piece{Figure: King, Color: fpc.Blue}, Pos(9, 9), fpc.Red, false},
		// Red pawns attack towards higher rows
		{"red pawn below", Piece{Figure: Pawn, Color: fpc.Red}, Pos(6, 6), fpc.Blue, true},
		{"red pawn above", Piece{Figure: Pawn, Color: fpc.Red}, Pos(6, 8), fpc.Blue, false},
		// Yellow pawns attack towards lower rows
		{"yellow pawn above", Piece{Figure: Pawn, Color: fpc.Yellow}, Pos(8, 8), fpc.Red, true},
		{"yellow pawn below", Piece{Figure: Pawn, Color: fpc.Yellow}, Pos(8, 6), fpc.Red, false},
		// Blue pawns attack towards higher columns
		{"blue pawn left", Piece{Figure: Pawn, Color: fpc.Blue}, Pos(6, 8), fpc.Red, true},
		{"blue pawn right", Piece{Figure: Pawn, Color: fpc.Blue}, Pos(8, 8), fpc.Red, false},
		// Green pawns attack towards lower columns
		{"green pawn right", Piece{Figure: Pawn, Color: fpc.Green}, Pos(8, 6), fpc.Red, true},
		{"green pawn left", Piece{Figure: Pawn, Color: fpc.Green}, Pos(6, 6), fpc.Red, false},
	} {
		b := Empty()
		b.Place(test.at, test.piece)
		if got := b.UnderAttack(target, test.defender); got != test.attacked {
			t.Errorf("(%d) %s: UnderAttack = %v, want %v",
				i, test.name, got, test.attacked)
		}
	}
}

func TestAttackBlocked(t *testing.T) {
	b := Empty()
	b.Place(Pos(7, 12), Piece{Figure: Rook, Color: fpc.Blue})
	b.Place(Pos(7, 9), Piece{Figure: Pawn, Color: fpc.Yellow})
	if b.UnderAttack(Pos(7, 7), fpc.Red) {
		t.Error("rook attacks through a blocking pawn")
	}

	b = Empty()
	b.Place(Pos(10, 10), Piece{Figure: Bishop, Color: fpc.Blue})
	b.Place(Pos(9, 9), Piece{Figure: Pawn, Color: fpc.Red})
	if b.UnderAttack(Pos(7, 7), fpc.Red) {
		t.Error("bishop attacks through a blocking pawn")
	}
}

func TestOwnPiecesDoNotThreaten(t *testing.T) {
	b := Empty()
	b.Place(Pos(7, 12), Piece{Figure: Rook, Color: fpc.Red})
	if b.UnderAttack(Pos(7, 7), fpc.Red) {
		t.Error("own rook counts as a threat")
	}
	if !b.UnderAttack(Pos(7, 7), fpc.Blue) {
		t.Error("red rook does not threaten a blue target")
	}
}
