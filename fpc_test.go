// Shared type tests
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

import "testing"

func TestNext(t *testing.T) {
	for i, test := range []struct{ from, to Color }{
		{Red, Blue},
		{Blue, Yellow},
		{Yellow, Green},
		{Green, Red},
	} {
		if got := test.from.Next(); got != test.to {
			t.Errorf("(%d) %v.Next() = %v, want %v",
				i, test.from, got, test.to)
		}
	}
}

func TestMovable(t *testing.T) {
	for _, s := range []Condition{NoState, Check, Checkmate, Stalemate} {
		if !s.Movable() {
			t.Errorf("%v is not movable", s)
		}
	}
	if Lost.Movable() {
		t.Error("Lost is movable")
	}
}
