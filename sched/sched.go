// Matchmaking dispatcher
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

// Package sched moves peers through the matchmaking pipeline.  A
// single task ticks once a second and runs four passes over the
// registry buckets:
//
//	A. MMQueue → HeartbeatWait, probing peers in groups of four
//	B. HeartbeatWait → Idle when the probe goes unanswered
//	C. HeartbeatReady → MMQueue when the partners never showed up
//	D. HeartbeatReady → Game, four at a time
package sched

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	fpc "go-fpc"
	"go-fpc/board"
	"go-fpc/conf"
	"go-fpc/game"
	"go-fpc/proto"
)

type dispatcher struct {
	cf  *conf.Conf
	reg *game.Registry
	rec game.Recorder

	shut chan struct{}
	wait sync.WaitGroup // running turn drivers
}

// MakeDispatcher builds the matchmaking manager.  Tests drive it by
// calling Tick directly instead of Start.
func MakeDispatcher(cf *conf.Conf, reg *game.Registry, rec game.Recorder) *dispatcher {
	return &dispatcher{
		cf:   cf,
		reg:  reg,
		rec:  rec,
		shut: make(chan struct{}),
	}
}

func Prepare(cf *conf.Conf, reg *game.Registry, rec game.Recorder) {
	cf.Register(MakeDispatcher(cf, reg, rec))
}

func (*dispatcher) String() string { return "Matchmaking Dispatcher" }

func (d *dispatcher) Start() {
	tick := time.NewTicker(d.cf.DispatchTick)
	defer tick.Stop()
	for {
		select {
		case <-d.shut:
			return
		case now := <-tick.C:
			d.Tick(now)
		}
	}
}

func (d *dispatcher) Shutdown() {
	log.Println("Waiting for ongoing games to finish.")
	close(d.shut)
	d.wait.Wait()
}

// Tick runs the four dispatcher passes.  A panic in one tick is
// contained so a single bad peer cannot stall matchmaking for good.
func (d *dispatcher) Tick(now time.Time) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("Dispatcher tick panicked: %v", err)
		}
	}()

	d.promoteQueued(now)
	d.expireProbed(now)
	d.requeueReady(now)
	d.formTables(now)
}

// verified snapshots a bucket and keeps only the peers whose
// authoritative state still matches; stale entries are pruned along
// the way.  Lazy reconciliation, the bucket is just a cache.
func (d *dispatcher) verified(s game.PeerState) []*game.Peer {
	var live []*game.Peer
	for _, p := range d.reg.Bucket(s) {
		if cur, _ := p.State(); cur != s {
			d.reg.Prune(p, s)
			continue
		}
		live = append(live, p)
	}
	return live
}

// Pass A: probe queued peers in groups of four.  The remainder stays
// in MMQueue for a later tick.
func (d *dispatcher) promoteQueued(now time.Time) {
	queued := d.verified(game.StateMMQueue)
	sort.Slice(queued, func(i, j int) bool {
		return queued[i].QueuedSince().Before(queued[j].QueuedSince())
	})

	for len(queued) >= 4 {
		group := queued[:4]
		queued = queued[4:]
		for _, p := range group {
			if !p.BeginHeartbeat(now) {
				// Lost a race against a leave or a
				// disconnect; the shortened group flows
				// through the heartbeat timeouts and
				// regroups.
				continue
			}
			d.reg.Prune(p, game.StateMMQueue)
			d.reg.MoveToBucket(p, game.StateHeartbeatWait)
			if err := p.Send(proto.MakeHeartbeatCheck()); err != nil {
				fpc.Debug.Printf("Cannot probe %s: %s", p, err)
			}
		}
	}
}

// Pass B: kick peers whose heartbeat went unanswered.
func (d *dispatcher) expireProbed(now time.Time) {
	for _, p := range d.verified(game.StateHeartbeatWait) {
		if !p.ExpireHeartbeat(now, d.cf.HeartbeatWaitTimeout) {
			continue
		}
		d.reg.Prune(p, game.StateHeartbeatWait)
		d.reg.MoveToBucket(p, game.StateIdle)
		if err := p.Send(proto.MakePlayerKick("Heartbeat timeout")); err != nil {
			fpc.Debug.Printf("Cannot kick %s: %s", p, err)
		}
	}
}

// Pass C: a ready peer whose partners kept failing pass B would wait
// forever; send it back to the queue so the next full quartet forms
// promptly.
func (d *dispatcher) requeueReady(now time.Time) {
	for _, p := range d.verified(game.StateHeartbeatReady) {
		if !p.RequeueReady(now, d.cf.HeartbeatReadyTimeout) {
			continue
		}
		d.reg.Prune(p, game.StateHeartbeatReady)
		d.reg.MoveToBucket(p, game.StateMMQueue)
	}
}

// Pass D: seat confirmed peers four at a time.
func (d *dispatcher) formTables(now time.Time) {
	ready := d.verified(game.StateHeartbeatReady)
	sort.Slice(ready, func(i, j int) bool {
		_, a := ready[i].State()
		_, b := ready[j].State()
		return a.Before(b)
	})

	for len(ready) >= 4 {
		var quartet [4]*game.Peer
		copy(quartet[:], ready[:4])
		ready = ready[4:]
		d.formTable(quartet, now)
	}
}

func (d *dispatcher) formTable(quartet [4]*game.Peer, now time.Time) {
	id := d.reg.NewGameID()

	// Tokens must also be distinct within the batch; the registry
	// only checks against live games.
	var tokens [4]string
	minted := make(map[string]bool, 4)
	for i := range tokens {
		for {
			tok := d.reg.MintToken()
			if !minted[tok] {
				minted[tok] = true
				tokens[i] = tok
				break
			}
		}
	}

	var players [4]*game.Player
	for i, c := range fpc.Seats {
		players[c] = &game.Player{
			Color:         c,
			ReconnectID:   tokens[i],
			TimeRemaining: d.cf.PlayerTimer,
			Condition:     fpc.NoState,
			Peer:          quartet[i],
		}
	}
	g := game.NewGame(id, board.New(), players)

	for i, c := range fpc.Seats {
		if !quartet[i].SeatInGame(c, g) {
			// The peer disconnected between verification
			// and seating.  It stays on the roster and
			// loses on time like any other absentee.
			fpc.Debug.Printf("Game %d: %s vanished while seating",
				id, quartet[i])
		}
		d.reg.Prune(quartet[i], game.StateHeartbeatReady)
	}
	d.reg.RegisterGame(g)

	start := func(c fpc.Color) proto.StartPosition {
		return proto.StartPosition{
			PlayerName: players[c].Peer.Name(),
			LeftRook:   board.LeftRook(c),
		}
	}
	starts := proto.StartPositions{
		Red:    start(fpc.Red),
		Blue:   start(fpc.Blue),
		Yellow: start(fpc.Yellow),
		Green:  start(fpc.Green),
	}
	countdown := uint64(d.cf.InitCountdown / time.Second)
	for _, c := range fpc.Seats {
		pl := players[c]
		init := proto.MakeInit(countdown, pl.ReconnectID, starts)
		if err := pl.Peer.Send(init); err != nil {
			fpc.Debug.Printf("Game %d: cannot init %s: %s",
				id, pl.Peer, err)
		}
	}

	d.rec.RecordGame(context.Background(), g)
	log.Printf("Game %d starts with %s, %s, %s, %s", id,
		quartet[0], quartet[1], quartet[2], quartet[3])

	d.wait.Add(1)
	go func() {
		defer d.wait.Done()
		defer func() {
			// The game is over (or its driver is broken
			// beyond repair); either way the table is
			// cleared and the seats freed.
			d.reg.DropGame(g)
			for _, pl := range g.Players() {
				if pl.Peer != nil && pl.Peer.EndGame(g) {
					d.reg.MoveToBucket(pl.Peer, game.StateIdle)
				}
			}
		}()
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Game %d: driver panicked: %v", id, err)
			}
		}()
		game.Play(g, d.cf, d.rec)
	}()
}
