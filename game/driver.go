// Turn driver
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
	"log"
	"time"

	fpc "go-fpc"
	"go-fpc/conf"
	"go-fpc/proto"
)

// Play runs one game to completion: it waits out the init countdown,
// calls the first mover and then races each mover's clock against
// the move signal until at most one player is left standing.  One
// goroutine per game.
//
// The driver owns no housekeeping beyond the game itself; unseating
// the peers and dropping the registry entries is left to the caller.
func Play(g *Game, cf *conf.Conf, rec Recorder) {
	bg := context.Background()
	dbg := fpc.Debug.Printf

	time.Sleep(cf.InitCountdown)

	// First call
	g.mu.Lock()
	first, ok := NextMover(nil, g.conditions())
	if !ok {
		// Can only happen if seats were lost before the
		// countdown ran out; announce the empty result and
		// stop.
		g.whoMove = nil
		g.Broadcast(proto.MakeUpdate(proto.Update{
			MoveCall:      proto.MoveCall{NoCall: &proto.Empty{}},
			MovePrevious:  proto.NoMove(),
			PlayersStates: g.statesPdu(),
		}))
		g.mu.Unlock()
		rec.RecordResult(bg, g, nil)
		return
	}
	g.whoMove = &WhoMove{Color: first, Since: time.Now()}
	budget := g.players[first].TimeRemaining
	g.Broadcast(proto.MakeUpdate(proto.Update{
		MoveCall: proto.MoveCall{Call: &proto.Call{
			Player: first.String(),
			Timer:  uint64(budget / time.Second),
			Timer2: uint64(cf.PlayerGrace / time.Second),
		}},
		MovePrevious:  proto.NoMove(),
		PlayersStates: g.statesPdu(),
	}))
	g.mu.Unlock()
	dbg("Game %d: called %v with %v on the clock", g.id, first, budget)

	for {
		timer := time.NewTimer(budget + cf.PlayerGrace)
		var moved bool
		select {
		case <-timer.C:
		case <-g.signal:
			moved = true
			timer.Stop()
		}

		g.mu.Lock()
		who := g.whoMove
		mover := g.players[who.Color]

		// The timer may have fired a moment after a handler
		// committed a move.  The move wins the race; the
		// paired signal is drained here so the next iteration
		// starts clean.
		if !moved && who.Complete != nil {
			<-g.signal
			moved = true
		}

		var previous proto.Move
		if moved {
			cm := who.Complete
			if err := g.board.Apply(cm.Move, who.Color); err != nil {
				// Validate accepted the move under this
				// same lock, so the board cannot reject
				// it now.
				log.Printf("Game %d: apply failed for %v: %s",
					g.id, who.Color, err)
			}
			previous = cm.Wire
			elapsed := cm.At.Sub(who.Since) - cf.PlayerGrace
			if elapsed < 0 {
				elapsed = 0
			}
			mover.TimeRemaining -= elapsed
			if mover.TimeRemaining < 0 {
				mover.TimeRemaining = 0
			}
			rec.RecordMove(bg, g, who.Color, cm.Wire, cm.At)
			dbg("Game %d: %v moved, %v left", g.id, who.Color,
				mover.TimeRemaining)
		} else {
			mover.Condition = fpc.Lost
			mover.TimeRemaining = 0
			mover.Remaining = proto.RemainingTurnToStone
			previous = proto.NoMove()
			dbg("Game %d: %v lost on time", g.id, who.Color)
		}

		// Refresh conditions from the board.  Players already
		// reported as mated or stalled were shown once on the
		// previous update; now they are out for good.
		fresh := g.board.Conditions()
		for _, pl := range g.players {
			switch pl.Condition {
			case fpc.Lost:
			case fpc.Checkmate, fpc.Stalemate:
				pl.Condition = fpc.Lost
				if pl.Remaining == "" {
					pl.Remaining = proto.RemainingClear
				}
			default:
				pl.Condition = fresh[pl.Color]
				// A captured king clears the army off the
				// board.
				if pl.Condition == fpc.Lost && pl.Remaining == "" {
					pl.Remaining = proto.RemainingClear
				}
			}
		}

		cur := who.Color
		next, ok := NextMover(&cur, g.conditions())
		if !ok {
			g.whoMove = nil
			g.Broadcast(proto.MakeUpdate(proto.Update{
				MoveCall:      proto.MoveCall{NoCall: &proto.Empty{}},
				MovePrevious:  previous,
				PlayersStates: g.statesPdu(),
			}))
			winner := g.soleSurvivor()
			g.mu.Unlock()

			rec.RecordResult(bg, g, winner)
			if winner != nil {
				dbg("Game %d: over, %v survives", g.id, *winner)
			} else {
				dbg("Game %d: over, nobody survives", g.id)
			}
			return
		}

		g.whoMove = &WhoMove{Color: next, Since: time.Now()}
		budget = g.players[next].TimeRemaining
		g.Broadcast(proto.MakeUpdate(proto.Update{
			MoveCall: proto.MoveCall{Call: &proto.Call{
				Player: next.String(),
				Timer:  uint64(budget / time.Second),
				Timer2: uint64(cf.PlayerGrace / time.Second),
			}},
			MovePrevious:  previous,
			PlayersStates: g.statesPdu(),
		}))
		g.mu.Unlock()
		dbg("Game %d: called %v with %v on the clock", g.id, next, budget)
	}
}

// soleSurvivor returns the last movable seat, if exactly one is
// left.  Callers hold the game lock.
func (g *Game) soleSurvivor() *fpc.Color {
	var winner *fpc.Color
	for _, pl := range g.players {
		if pl.Condition.Movable() {
			if winner != nil {
				return nil
			}
			c := pl.Color
			winner = &c
		}
	}
	return winner
}
