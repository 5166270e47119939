// Peer and game registry
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
	"math/rand"
	"sync"
	"time"
)

var ErrDuplicateAddress = errors.New("duplicate address")

func init() { rand.Seed(time.Now().UnixMicro()) }

// Registry indexes connected peers by address, plus one advisory
// bucket per waiting state for the dispatcher.  Bucket entries may be
// stale: a peer is never eagerly removed from its old bucket, readers
// instead re-check the authoritative state under the peer lock and
// prune mismatches.  This keeps every registry operation under a
// single lock and avoids ordering six map locks against each other.
//
// No method of the registry takes a peer or game lock, and no caller
// is expected to hold one, so the lock here never nests with the
// entity locks.
type Registry struct {
	mu      sync.RWMutex
	peers   map[string]*Peer
	buckets map[PeerState]map[string]*Peer

	games     map[uint64]*Game
	reconnect map[string]*Game
	nextGame  uint64
}

func NewRegistry() *Registry {
	buckets := make(map[PeerState]map[string]*Peer, 4)
	for _, s := range []PeerState{
		StateIdle, StateMMQueue, StateHeartbeatWait, StateHeartbeatReady,
	} {
		buckets[s] = make(map[string]*Peer)
	}
	return &Registry{
		peers:     make(map[string]*Peer),
		buckets:   buckets,
		games:     make(map[uint64]*Game),
		reconnect: make(map[string]*Game),
	}
}

// TryInsert adds a freshly accepted peer to the primary index.
func (r *Registry) TryInsert(addr string, p *Peer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.peers[addr]; ok {
		return ErrDuplicateAddress
	}
	r.peers[addr] = p
	return nil
}

// Remove drops a peer from the primary index and from every bucket.
// The dispatcher passes would prune the waiting buckets on their own,
// but nothing ever reads the Idle bucket, so a disconnect must clear
// it here.  The peer state is reset to Unknown so that references
// held elsewhere resolve as no-ops.
func (r *Registry) Remove(addr string) {
	r.mu.Lock()
	p, ok := r.peers[addr]
	if ok {
		delete(r.peers, addr)
	}
	for _, b := range r.buckets {
		delete(b, addr)
	}
	r.mu.Unlock()

	if ok {
		p.MarkUnknown(time.Now())
	}
}

// Get looks a peer up by address.
func (r *Registry) Get(addr string) (*Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.peers[addr]
	return p, ok
}

// Peers returns the number of connected peers.
func (r *Registry) Peers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// MoveToBucket inserts a peer into the bucket for S.  The old bucket
// entry, if any, is left behind on purpose (lazy reconciliation).
func (r *Registry) MoveToBucket(p *Peer, s PeerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buckets[s]; ok {
		b[p.addr] = p
	}
}

// Bucket snapshots the peers cached under S.  The caller must
// re-check each peer's state before acting on it.
func (r *Registry) Bucket(s PeerState) []*Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b := r.buckets[s]
	out := make([]*Peer, 0, len(b))
	for _, p := range b {
		out = append(out, p)
	}
	return out
}

// Prune removes a stale entry from the bucket for S.
func (r *Registry) Prune(p *Peer, s PeerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buckets[s]; ok {
		delete(b, p.addr)
	}
}

// NewGameID hands out the next game id.  Wrap-around is permitted,
// live collisions are practically impossible.
func (r *Registry) NewGameID() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextGame++
	return r.nextGame
}

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MintToken generates a 32-character reconnect token that no live
// game is using.  The dispatcher is the only minter, so checking
// under the read lock is race-free.
func (r *Registry) MintToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for {
		buf := make([]byte, 32)
		for i := range buf {
			buf[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
		}
		tok := string(buf)
		if _, taken := r.reconnect[tok]; !taken {
			return tok
		}
	}
}

// RegisterGame indexes a freshly formed game by id and by the
// reconnect tokens of its four players.
func (r *Registry) RegisterGame(g *Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID()] = g
	for _, pl := range g.Players() {
		r.reconnect[pl.ReconnectID] = g
	}
}

// DropGame removes a finished game and its reconnect tokens.
func (r *Registry) DropGame(g *Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, g.ID())
	for _, pl := range g.Players() {
		delete(r.reconnect, pl.ReconnectID)
	}
}

// Game looks a live game up by id.
func (r *Registry) Game(id uint64) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// GameByToken looks a live game up by one of its reconnect tokens.
func (r *Registry) GameByToken(tok string) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.reconnect[tok]
	return g, ok
}
