// Board coordinates
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
	"strconv"

	fpc "go-fpc"
)

// The board is a 14×14 square with the four 3×3 corner blocks cut
// off, leaving a cross of 160 playable squares.  Columns are lettered
// a to n, rows are numbered 1 to 14.  Red plays from rows 1/2, Blue
// from columns a/b, Yellow from rows 13/14 and Green from columns
// m/n.
const Size = 14

// Column and Row indices both count from 1, so that the zero value
// of Position is recognisably invalid.
type (
	Column int8
	Row    int8
)

// Position names one square on the cross-shaped board.
type Position struct {
	Col Column
	Row Row
}

// Pos is a shorthand constructor used pervasively in board code.
func Pos(col, row int) Position {
	return Position{Column(col), Row(row)}
}

// Valid reports whether P names one of the 160 playable squares.
func (p Position) Valid() bool {
	if p.Col < 1 || p.Col > Size || p.Row < 1 || p.Row > Size {
		return false
	}
	// The corner blocks are cut off
	edgeCol := p.Col <= 3 || p.Col > Size-3
	edgeRow := p.Row <= 3 || p.Row > Size-3
	return !(edgeCol && edgeRow)
}

// Shift returns the square DC columns and DR rows away, and whether
// that square is on the board.
func (p Position) Shift(dc, dr int) (Position, bool) {
	q := Pos(int(p.Col)+dc, int(p.Row)+dr)
	return q, q.Valid()
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col)-1, p.Row)
}

// ParsePosition interprets a square name such as "d1" or "k14".
func ParsePosition(s string) (Position, error) {
	if len(s) < 2 || len(s) > 3 {
		return Position{}, fmt.Errorf("malformed position %q", s)
	}
	col := int(s[0]-'a') + 1
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Position{}, fmt.Errorf("malformed position %q", s)
	}
	p := Pos(col, row)
	if !p.Valid() {
		return Position{}, fmt.Errorf("no square %q on the board", s)
	}
	return p, nil
}

// Positions on the wire are just square names.
func (p Position) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("no square %v on the board", p)
	}
	return json.Marshal(p.String())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	q, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = q
	return nil
}

// All returns every playable square, column by column.
func All() []Position {
	ps := make([]Position, 0, 160)
	for col := 1; col <= Size; col++ {
		for row := 1; row <= Size; row++ {
			if p := Pos(col, row); p.Valid() {
				ps = append(ps, p)
			}
		}
	}
	return ps
}

// LeftRook returns the starting square of a seat's left rook, as
// shipped to clients in the init frame.
func LeftRook(c fpc.Color) Position {
	switch c {
	case fpc.Red:
		return Pos(4, 1) // d1
	case fpc.Blue:
		return Pos(1, 11) // a11
	case fpc.Yellow:
		return Pos(11, 14) // k14
	case fpc.Green:
		return Pos(14, 4) // n4
	default:
		panic(fmt.Sprintf("Illegal color: %d", c))
	}
}
