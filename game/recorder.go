// Game history interface
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
	"context"
	"time"

	fpc "go-fpc"
	"go-fpc/proto"
)

// Recorder persists game history.  Implementations must tolerate
// concurrent calls from multiple turn drivers; failures are theirs
// to log, the session layer does not care.
type Recorder interface {
	// RecordGame is called once when a table has been formed.
	RecordGame(ctx context.Context, g *Game)
	// RecordMove is called for every accepted move.
	RecordMove(ctx context.Context, g *Game, c fpc.Color, mv proto.Move, at time.Time)
	// RecordResult is called when the turn driver exits.  WINNER
	// is nil when no seat survived.
	RecordResult(ctx context.Context, g *Game, winner *fpc.Color)
}

// Discard is a no-op recorder, used when running without a database.
type Discard struct{}

func (Discard) RecordGame(context.Context, *Game) {}

func (Discard) RecordMove(context.Context, *Game, fpc.Color, proto.Move, time.Time) {}

func (Discard) RecordResult(context.Context, *Game, *fpc.Color) {}
