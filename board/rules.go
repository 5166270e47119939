// Move validation and application
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
	"fmt"

	fpc "go-fpc"
)

type MoveKind uint8

const (
	MoveBasic MoveKind = iota
	MoveCapture
	MovePromotion
	MoveCastling
)

// Move is the rule-engine form of a player's move.  From/To describe
// the moving piece (the king, for castling).  Promote is only
// meaningful for MovePromotion, RookFrom/RookTo only for
// MoveCastling.
type Move struct {
	Kind     MoveKind
	From     Position
	To       Position
	Promote  Figure
	RookFrom Position
	RookTo   Position
}

// Validate checks a move without mutating the board.  The returned
// error carries the description sent back in forbidden_move replies.
func (b *Board) Validate(mv Move, c fpc.Color) error {
	if !mv.From.Valid() || !mv.To.Valid() {
		return fmt.Errorf("move names a square off the board")
	}
	piece, ok := b.At(mv.From)
	if !ok {
		return fmt.Errorf("no piece on %v", mv.From)
	}
	if piece.Color != c {
		return fmt.Errorf("piece on %v belongs to %v", mv.From, piece.Color)
	}

	switch mv.Kind {
	case MoveBasic:
		if _, ok := b.At(mv.To); ok {
			return fmt.Errorf("square %v is occupied", mv.To)
		}
	case MoveCapture:
		victim, ok := b.At(mv.To)
		if !ok {
			return fmt.Errorf("nothing to capture on %v", mv.To)
		}
		if victim.Color == c {
			return fmt.Errorf("cannot capture own piece on %v", mv.To)
		}
	case MovePromotion:
		if piece.Figure != Pawn {
			return fmt.Errorf("only pawns promote")
		}
		switch mv.Promote {
		case Queen, Rook, Bishop, Knight:
		default:
			return fmt.Errorf("cannot promote to %v", mv.Promote)
		}
		if victim, ok := b.At(mv.To); ok && victim.Color == c {
			return fmt.Errorf("square %v is occupied", mv.To)
		}
	case MoveCastling:
		if !mv.RookFrom.Valid() || !mv.RookTo.Valid() {
			return fmt.Errorf("castling names a square off the board")
		}
		if piece.Figure != King {
			return fmt.Errorf("castling moves the king")
		}
		rook, ok := b.At(mv.RookFrom)
		if !ok || rook.Figure != Rook || rook.Color != c {
			return fmt.Errorf("no own rook on %v", mv.RookFrom)
		}
		if piece.Moved || rook.Moved {
			return fmt.Errorf("castling requires unmoved king and rook")
		}
		if _, ok := b.At(mv.To); ok {
			return fmt.Errorf("square %v is occupied", mv.To)
		}
		if _, ok := b.At(mv.RookTo); ok && mv.RookTo != mv.From {
			return fmt.Errorf("square %v is occupied", mv.RookTo)
		}
		if b.UnderAttack(mv.From, c) {
			return fmt.Errorf("cannot castle out of check")
		}
	default:
		return fmt.Errorf("unknown move kind")
	}
	return nil
}

// Apply validates MV and mutates the board accordingly.
func (b *Board) Apply(mv Move, c fpc.Color) error {
	if err := b.Validate(mv, c); err != nil {
		return err
	}

	piece, _ := b.At(mv.From)
	switch mv.Kind {
	case MoveBasic, MoveCapture:
		b.Remove(mv.From)
		b.Place(mv.To, Piece{Figure: piece.Figure, Color: c, Moved: true})
	case MovePromotion:
		b.Remove(mv.From)
		b.Place(mv.To, Piece{Figure: mv.Promote, Color: c, Moved: true})
	case MoveCastling:
		b.Remove(mv.From)
		b.Remove(mv.RookFrom)
		b.Place(mv.To, Piece{Figure: King, Color: c, Moved: true})
		b.Place(mv.RookTo, Piece{Figure: Rook, Color: c, Moved: true})
	}
	return nil
}

// Conditions derives each seat's standing from the board alone.  A
// missing king means the army is lost; a threatened king means check.
// Mate and stalemate detection would need full move generation and is
// left to the session layer, which already demotes checkmated players
// on the next scheduling pass.
func (b *Board) Conditions() map[fpc.Color]fpc.Condition {
	out := make(map[fpc.Color]fpc.Condition, 4)
	for _, c := range fpc.Seats {
		king, ok := b.King(c)
		switch {
		case !ok:
			out[c] = fpc.Lost
		case b.UnderAttack(king, c):
			out[c] = fpc.Check
		default:
			out[c] = fpc.NoState
		}
	}
	return out
}
