// Peer lifecycle
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
	"fmt"
	"sync"
	"time"

	fpc "go-fpc"
	"go-fpc/proto"
)

// PeerState is the lifecycle stage of a connected peer.  The value
// stored on the peer itself is authoritative; the registry buckets
// are advisory caches.
type PeerState uint8

const (
	StateUnknown PeerState = iota // handshake not completed
	StateIdle
	StateMMQueue
	StateHeartbeatWait  // probe sent, waiting for the ack
	StateHeartbeatReady // acked, waiting to be grouped
	StateGame
)

func (s PeerState) String() string {
	switch s {
	case StateUnknown:
		return "Unknown"
	case StateIdle:
		return "Idle"
	case StateMMQueue:
		return "MMQueue"
	case StateHeartbeatWait:
		return "HeartbeatWait"
	case StateHeartbeatReady:
		return "HeartbeatReady"
	case StateGame:
		return "Game"
	default:
		panic(fmt.Sprintf("Illegal peer state: %d", s))
	}
}

// ClientInfo is the triple a client announces during the handshake.
type ClientInfo struct {
	Name     string
	Version  string
	Protocol string
}

// Peer is one connected client.  All transitions take the peer lock
// and re-check the current state, so concurrent actors (connection
// handler, dispatcher, turn driver) can attempt them blindly and
// find out whether they won.
type Peer struct {
	mu   sync.Mutex
	addr string
	out  *Outbox

	state PeerState
	since time.Time // entered Unknown/HeartbeatWait/HeartbeatReady
	seen  time.Time // entered MMQueue, keeps the queue in arrival order

	name string // registered player name
	info *ClientInfo

	color fpc.Color // valid while state == StateGame
	game  *Game
}

func NewPeer(addr string) *Peer {
	return &Peer{
		addr:  addr,
		out:   NewOutbox(),
		state: StateUnknown,
		since: time.Now(),
	}
}

func (p *Peer) String() string { return p.addr }

func (p *Peer) Addr() string { return p.addr }

func (p *Peer) Out() *Outbox { return p.out }

// Send encodes one PDU onto the peer's outbound queue.
func (p *Peer) Send(pdu *proto.Pdu) error {
	frame, err := pdu.Encode()
	if err != nil {
		return err
	}
	return p.out.Push(frame)
}

// State returns the authoritative state and the instant it was
// entered (meaningful for Unknown, HeartbeatWait and HeartbeatReady).
func (p *Peer) State() (PeerState, time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.since
}

// Name returns the registered player name, if any.
func (p *Peer) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Info returns the handshake triple, if the handshake completed.
func (p *Peer) Info() *ClientInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info
}

// QueuedSince reports when the peer last entered the matchmaking
// queue.
func (p *Peer) QueuedSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen
}

// CompleteHandshake moves Unknown → Idle and records the client
// info.  It returns the state the peer was in before the call, which
// the handler uses to decide between replying and ignoring.
func (p *Peer) CompleteHandshake(info ClientInfo) PeerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	prior := p.state
	if prior == StateUnknown {
		p.info = &info
		p.state = StateIdle
	}
	return prior
}

// EnterQueue moves Idle → MMQueue and records the player name.  The
// prior state is returned so the handler can pick the matching
// error reply.
func (p *Peer) EnterQueue(name string, now time.Time) PeerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	prior := p.state
	if prior == StateIdle {
		p.name = name
		p.seen = now
		p.state = StateMMQueue
	}
	return prior
}

// LeaveQueue moves MMQueue/HeartbeatWait/HeartbeatReady → Idle.
func (p *Peer) LeaveQueue() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StateMMQueue, StateHeartbeatWait, StateHeartbeatReady:
		p.state = StateIdle
		p.name = ""
		return true
	}
	return false
}

// BeginHeartbeat moves MMQueue → HeartbeatWait.  Used by the
// dispatcher in pass A; a false return means the bucket entry was
// stale.
func (p *Peer) BeginHeartbeat(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateMMQueue {
		return false
	}
	p.state = StateHeartbeatWait
	p.since = now
	return true
}

// AcknowledgeHeartbeat moves HeartbeatWait → HeartbeatReady.
func (p *Peer) AcknowledgeHeartbeat(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateHeartbeatWait {
		return false
	}
	p.state = StateHeartbeatReady
	p.since = now
	return true
}

// ExpireHeartbeat moves HeartbeatWait → Idle once the probe has gone
// unanswered for longer than TIMEOUT.  The player name is cleared,
// the client has to register again.
func (p *Peer) ExpireHeartbeat(now time.Time, timeout time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateHeartbeatWait || now.Sub(p.since) <= timeout {
		return false
	}
	p.state = StateIdle
	p.name = ""
	return true
}

// RequeueReady moves HeartbeatReady → MMQueue once the peer has been
// kept waiting for partners longer than TIMEOUT.
func (p *Peer) RequeueReady(now time.Time, timeout time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateHeartbeatReady || now.Sub(p.since) <= timeout {
		return false
	}
	p.state = StateMMQueue
	p.seen = now
	return true
}

// SeatInGame moves HeartbeatReady → Game.
func (p *Peer) SeatInGame(color fpc.Color, g *Game) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateHeartbeatReady {
		return false
	}
	p.state = StateGame
	p.color = color
	p.game = g
	return true
}

// EndGame moves Game → Idle, but only if the peer is still seated in
// G.  Called when the turn driver of G exits.
func (p *Peer) EndGame(g *Game) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateGame || p.game != g {
		return false
	}
	p.state = StateIdle
	p.name = ""
	p.color = 0
	p.game = nil
	return true
}

// CurrentGame returns the game the peer is seated in, if any.
func (p *Peer) CurrentGame() (*Game, fpc.Color, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateGame {
		return nil, 0, false
	}
	return p.game, p.color, true
}

// MarkUnknown resets the peer after it left the primary registry
// index, so that stale bucket entries resolve as no-ops.
func (p *Peer) MarkUnknown(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateUnknown
	p.since = now
	p.name = ""
	p.game = nil
}
