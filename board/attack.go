// Attack detection
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
	fpc "go-fpc"
)

var (
	knightShifts = [8][2]int{
		{2, 1}, {1, 2}, {2, -1}, {1, -2},
		{-2, 1}, {-1, 2}, {-2, -1}, {-1, -2},
	}
	diagonals    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals  = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
)

// pawnAttacks reports whether a pawn of color C standing on FROM
// threatens TO, assuming the two squares are diagonally adjacent.
// Pawns only attack forwards, and "forwards" depends on the corner
// the army started in.
func pawnAttacks(c fpc.Color, from, to Position) bool {
	switch c {
	case fpc.Red:
		return from.Row < to.Row
	case fpc.Yellow:
		return from.Row > to.Row
	case fpc.Blue:
		return from.Col < to.Col
	case fpc.Green:
		return from.Col > to.Col
	default:
		return false
	}
}

// Attackers collects the positions of all pieces, of any color, that
// currently threaten TARGET.
func (b *Board) Attackers(target Position) []Position {
	var attackers []Position

	for _, s := range knightShifts {
		p, ok := target.Shift(s[0], s[1])
		if !ok {
			continue
		}
		if piece, ok := b.At(p); ok && piece.Figure == Knight {
			attackers = append(attackers, p)
		}
	}

	for _, s := range diagonals {
		for dist := 1; ; dist++ {
			p, ok := target.Shift(s[0]*dist, s[1]*dist)
			if !ok {
				break
			}
			piece, ok := b.At(p)
			if !ok {
				continue
			}
			switch piece.Figure {
			case Queen, Bishop:
				attackers = append(attackers, p)
			case Pawn:
				if dist == 1 && pawnAttacks(piece.Color, p, target) {
					attackers = append(attackers, p)
				}
			case King:
				if dist == 1 {
					attackers = append(attackers, p)
				}
			}
			break
		}
	}

	for _, s := range orthogonals {
		for dist := 1; ; dist++ {
			p, ok := target.Shift(s[0]*dist, s[1]*dist)
			if !ok {
				break
			}
			piece, ok := b.At(p)
			if !ok {
				continue
			}
			switch piece.Figure {
			case Queen, Rook:
				attackers = append(attackers, p)
			case King:
				if dist == 1 {
					attackers = append(attackers, p)
				}
			}
			break
		}
	}

	return attackers
}

// UnderAttack reports whether any piece not belonging to C threatens
// TARGET.
func (b *Board) UnderAttack(target Position, c fpc.Color) bool {
	for _, p := range b.Attackers(target) {
		if piece, ok := b.At(p); ok && piece.Color != c {
			return true
		}
	}
	return false
}
