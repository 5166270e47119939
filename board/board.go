// Board state and initial setup
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
	"encoding/json"
	"fmt"

	fpc "go-fpc"
)

type Figure uint8

const (
	Pawn Figure = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

func (f Figure) String() string {
	switch f {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		panic(fmt.Sprintf("Illegal figure: %d", f))
	}
}

// Figures on the wire are lower-case names (as in the promotion
// message).
func (f Figure) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Figure) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, g := range []Figure{Pawn, Rook, Knight, Bishop, Queen, King} {
		if g.String() == s {
			*f = g
			return nil
		}
	}
	return fmt.Errorf("unknown figure %q", s)
}

// Piece is one figure standing on the board.  Moved is needed to
// restrict castling, the color decides the pawn direction.
type Piece struct {
	Figure Figure
	Color  fpc.Color
	Moved  bool
}

// Board maps occupied squares to pieces.  Empty squares are simply
// absent from the map.
type Board struct {
	cells map[Position]*Piece
}

// The back line of each army, from the left rook to the right rook as
// seen from the Red corner.
var backLine = [8]Figure{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Empty returns a board with no pieces, used by tests and by the
// setup code below.
func Empty() *Board {
	return &Board{cells: make(map[Position]*Piece)}
}

// New sets up the four armies in their starting corners.
func New() *Board {
	b := Empty()
	for _, p := range All() {
		var piece *Piece
		switch {
		case p.Row == 2:
			piece = &Piece{Figure: Pawn, Color: fpc.Red}
		case p.Col == 2:
			piece = &Piece{Figure: Pawn, Color: fpc.Blue}
		case p.Row == Size-1:
			piece = &Piece{Figure: Pawn, Color: fpc.Yellow}
		case p.Col == Size-1:
			piece = &Piece{Figure: Pawn, Color: fpc.Green}
		case p.Row == 1:
			piece = &Piece{Figure: backLine[p.Col-4], Color: fpc.Red}
		case p.Col == 1:
			piece = &Piece{Figure: backLine[p.Row-4], Color: fpc.Blue}
		case p.Row == Size:
			piece = &Piece{Figure: backLine[7-(p.Col-4)], Color: fpc.Yellow}
		case p.Col == Size:
			piece = &Piece{Figure: backLine[7-(p.Row-4)], Color: fpc.Green}
		default:
			continue
		}
		b.cells[p] = piece
	}
	return b
}

// At returns the piece standing on P, if any.
func (b *Board) At(p Position) (*Piece, bool) {
	piece, ok := b.cells[p]
	return piece, ok
}

// Place puts a piece on a square, replacing whatever stood there.
func (b *Board) Place(p Position, piece Piece) {
	b.cells[p] = &piece
}

// Remove clears a square.
func (b *Board) Remove(p Position) {
	delete(b.cells, p)
}

// King returns the position of a color's king, if it is still
// standing.
func (b *Board) King(c fpc.Color) (Position, bool) {
	for p, piece := range b.cells {
		if piece.Figure == King && piece.Color == c {
			return p, true
		}
	}
	return Position{}, false
}

// Count returns the number of pieces a color has left.
func (b *Board) Count(c fpc.Color) int {
	var n int
	for _, piece := range b.cells {
		if piece.Color == c {
			n++
		}
	}
	return n
}
