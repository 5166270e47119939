// Turn order
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

package game

import (
	fpc "go-fpc"
)

// NextMover decides who is called to move after CURRENT, given the
// four seats' conditions indexed by color.  It is a pure function:
// eliminations are frequent, so the rotation is recomputed from the
// seat array instead of keeping a ring structure alive.
//
// At game start CURRENT is nil and Red opens, provided all four
// seats are present.  Once at most one movable player remains there
// is nobody to call and the game is over.
func NextMover(current *fpc.Color, conditions [4]fpc.Condition) (fpc.Color, bool) {
	movable := 0
	for _, c := range conditions {
		if c.Movable() {
			movable++
		}
	}
	if movable <= 1 {
		return 0, false
	}

	if current == nil {
		if movable == 4 {
			return fpc.Red, true
		}
		return 0, false
	}

	next := *current
	for i := 0; i < 3; i++ {
		next = next.Next()
		if conditions[next].Movable() {
			return next, true
		}
	}
	return 0, false
}
