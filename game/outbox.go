// Per-peer outbound queue
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
	"sync"
)

var ErrOutboxClosed = errors.New("outbox closed")

// Outbox is the unbounded frame queue between everyone who talks to
// a peer (handlers, the dispatcher, turn drivers) and the single
// write pump that drains it onto the socket.  Push never blocks;
// frames reach the client in push order.
type Outbox struct {
	mu     sync.Mutex
	queue  [][]byte
	wake   chan struct{}
	closed bool
}

func NewOutbox() *Outbox {
	return &Outbox{wake: make(chan struct{}, 1)}
}

// Push enqueues one frame.  It fails only after Close.
func (o *Outbox) Push(frame []byte) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrOutboxClosed
	}
	o.queue = append(o.queue, frame)
	o.mu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pop blocks until a frame is available, the outbox is closed and
// drained, or CANCEL closes.  Frames pushed before Close are still
// returned, so the write pump drains before exiting.
func (o *Outbox) Pop(cancel <-chan struct{}) ([]byte, bool) {
	for {
		o.mu.Lock()
		if len(o.queue) > 0 {
			frame := o.queue[0]
			o.queue = o.queue[1:]
			o.mu.Unlock()
			return frame, true
		}
		closed := o.closed
		o.mu.Unlock()
		if closed {
			return nil, false
		}

		select {
		case <-o.wake:
		case <-cancel:
			return nil, false
		}
	}
}

// Close stops further pushes and wakes the pump.
func (o *Outbox) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
}
