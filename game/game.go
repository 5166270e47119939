// Game session state
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
	"errors"
	"log"
	"sync"
	"time"

	fpc "go-fpc"
	"go-fpc/board"
	"go-fpc/proto"
)

var ErrForbiddenMove = errors.New("forbidden move")

// Player is one seat of a game.
type Player struct {
	Color         fpc.Color
	ReconnectID   string
	TimeRemaining time.Duration
	Condition     fpc.Condition
	Peer          *Peer

	// What the board shows for this player's pieces after they
	// dropped out (wire value, see proto.Remaining*).
	Remaining string
}

// CompletedMove is a move a handler has accepted on behalf of the
// current mover, parked for the turn driver to apply.
type CompletedMove struct {
	Move board.Move // rule-engine form
	Wire proto.Move // echoed as move_previous
	At   time.Time
}

// WhoMove records whose move the turn driver is waiting for.
type WhoMove struct {
	Color    fpc.Color
	Since    time.Time
	Complete *CompletedMove
}

// Game is one four-player session.  The single lock guards the
// board, the seats and WhoMove; the signal channel wakes the turn
// driver when a handler commits a move.  A handler holds the lock
// from validation through both writing Complete and signalling, so
// the driver can never observe one without the other.
type Game struct {
	mu      sync.Mutex
	id      uint64
	board   *board.Board
	players [4]*Player
	whoMove *WhoMove
	signal  chan struct{}

	started time.Time
}

// NewGame seats four players, in turn order, around a fresh board.
func NewGame(id uint64, b *board.Board, players [4]*Player) *Game {
	return &Game{
		id:      id,
		board:   b,
		players: players,
		signal:  make(chan struct{}, 1),
		started: time.Now(),
	}
}

func (g *Game) ID() uint64 { return g.id }

func (g *Game) Started() time.Time { return g.started }

// Player returns the seat playing C.
func (g *Game) Player(c fpc.Color) *Player {
	return g.players[c]
}

// Players returns the four seats in turn order.
func (g *Game) Players() [4]*Player {
	return g.players
}

// WhoMove returns the current move call, for inspection in tests and
// invariant checks.
func (g *Game) WhoMove() *WhoMove {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.whoMove
}

// Broadcast encodes MSG once and enqueues it to all four seats in
// fixed order.  A peer whose queue is gone is logged and skipped;
// the remaining seats still receive the frame.
func (g *Game) Broadcast(msg *proto.Pdu) {
	frame, err := msg.Encode()
	if err != nil {
		log.Printf("Game %d: cannot encode broadcast: %s", g.id, err)
		return
	}
	for _, pl := range g.players {
		if pl.Peer == nil {
			continue
		}
		if err := pl.Peer.out.Push(frame); err != nil {
			log.Printf("Game %d: dropping frame for %s: %s",
				g.id, pl.Peer, err)
		}
	}
}

// SubmitMove is the handler-side half of the move/timer race.  It
// verifies that C is the seat being called and that the board
// accepts MV, then records the completed move and signals the
// driver, all under the game lock.
func (g *Game) SubmitMove(c fpc.Color, wire proto.Move, mv board.Move, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.whoMove == nil || g.whoMove.Color != c || g.whoMove.Complete != nil {
		return ErrForbiddenMove
	}
	if err := g.board.Validate(mv, c); err != nil {
		return err
	}

	g.whoMove.Complete = &CompletedMove{Move: mv, Wire: wire, At: now}
	g.signal <- struct{}{}
	return nil
}

// conditions snapshots the four seats.  Callers hold the game lock.
func (g *Game) conditions() [4]fpc.Condition {
	var out [4]fpc.Condition
	for i, pl := range g.players {
		out[i] = pl.Condition
	}
	return out
}

// statesPdu builds the players_states block.  Callers hold the game
// lock.
func (g *Game) statesPdu() proto.PlayersStates {
	state := func(pl *Player) proto.PlayerState {
		return proto.StatePdu(pl.Condition, pl.Remaining)
	}
	return proto.PlayersStates{
		Red:    state(g.players[fpc.Red]),
		Blue:   state(g.players[fpc.Blue]),
		Yellow: state(g.players[fpc.Yellow]),
		Green:  state(g.players[fpc.Green]),
	}
}
