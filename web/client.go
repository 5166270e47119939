// Connection handling
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

package web

import (
	"log"

	"github.com/gorilla/websocket"

	fpc "go-fpc"
	"go-fpc/game"
	"go-fpc/proto"
)

// handle runs the read side of one connection; the write pump is a
// second task.  When either side fails the other is shut down too,
// and the peer leaves the registry.  The disconnect does not touch
// any game the peer sits in: an absent player keeps being scheduled
// and loses on time.
func (l *Listener) handle(conn *websocket.Conn) {
	addr := conn.RemoteAddr().String()
	peer := game.NewPeer(addr)

	if err := l.reg.TryInsert(addr, peer); err != nil {
		log.Printf("Dropping connection from %s: %s", addr, err)
		conn.Close()
		return
	}
	fpc.Debug.Printf("New peer %s", addr)

	go writePump(conn, peer.Out())

	defer func() {
		if err := recover(); err != nil {
			log.Printf("Connection %s panicked: %v", addr, err)
		}
		l.reg.Remove(addr)
		peer.Out().Close()
		conn.Close()
		fpc.Debug.Printf("Peer %s disconnected", addr)
	}()

	h := handler{reg: l.reg}
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			fpc.Debug.Printf("Read from %s failed: %s", addr, err)
			return
		}
		fpc.Debug.Printf("%s < %s", addr, frame)

		pdu, err := proto.Decode(frame)
		if err != nil {
			// Malformed frames are dropped, the connection
			// survives.
			log.Printf("Cannot parse frame from %s: %s", addr, err)
			continue
		}
		h.dispatch(peer, pdu)
	}
}

// writePump drains the peer's outbound queue onto the socket.  It
// exits when the queue is closed and drained, or when a write fails;
// in the latter case closing the connection also stops the read
// side.
func writePump(conn *websocket.Conn, out *game.Outbox) {
	defer conn.Close()
	for {
		frame, ok := out.Pop(nil)
		if !ok {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			fpc.Debug.Printf("Write to %s failed: %s",
				conn.RemoteAddr(), err)
			return
		}
	}
}
