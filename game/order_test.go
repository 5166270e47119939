// Turn order tests
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
	"testing"

	fpc "go-fpc"
)

func TestNextMover(t *testing.T) {
	colorp := func(c fpc.Color) *fpc.Color { return &c }
	all := [4]fpc.Condition{}

	for i, test := range []struct {
		current    *fpc.Color
		conditions [4]fpc.Condition
		next       fpc.Color
		ok         bool
	}{
		// Red opens a full table
		{nil, all, fpc.Red, true},
		// no opening with an empty seat
		{nil, [4]fpc.Condition{fpc.Lost, 0, 0, 0}, 0, false},
		// plain rotation
		{colorp(fpc.Red), all, fpc.Blue, true},
		{colorp(fpc.Blue), all, fpc.Yellow, true},
		{colorp(fpc.Yellow), all, fpc.Green, true},
		{colorp(fpc.Green), all, fpc.Red, true},
		// lost seats are skipped
		{colorp(fpc.Red),
			[4]fpc.Condition{0, fpc.Lost, 0, 0}, fpc.Yellow, true},
		{colorp(fpc.Blue),
			[4]fpc.Condition{fpc.Lost, 0, fpc.Lost, 0}, fpc.Green, true},
		// checked players still move
		{colorp(fpc.Red),
			[4]fpc.Condition{0, fpc.Check, 0, 0}, fpc.Blue, true},
		// one player standing ends the game
		{colorp(fpc.Red),
			[4]fpc.Condition{0, fpc.Lost, fpc.Lost, fpc.Lost}, 0, false},
		{colorp(fpc.Blue),
			[4]fpc.Condition{fpc.Lost, fpc.Lost, 0, fpc.Lost}, 0, false},
		// nobody standing
		{colorp(fpc.Red),
			[4]fpc.Condition{fpc.Lost, fpc.Lost, fpc.Lost, fpc.Lost},
			0, false},
	} {
		next, ok := NextMover(test.current, test.conditions)
		if ok != test.ok || (ok && next != test.next) {
			t.Errorf("(%d) NextMover = %v, %v, want %v, %v",
				i, next, ok, test.next, test.ok)
		}
	}
}
