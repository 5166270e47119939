// Websocket endpoint tests
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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	fpc "go-fpc"
	"go-fpc/conf"
	"go-fpc/game"
	"go-fpc/proto"
)

// dial connects a websocket client to a listener mounted on an
// httptest server.
func dial(t *testing.T) (*websocket.Conn, *game.Registry, func()) {
	t.Helper()
	reg := game.NewRegistry()
	l := MakeListener(conf.Default(), reg)
	srv := httptest.NewServer(l.Handler())

	url := strings.Replace(srv.URL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	return conn, reg, func() {
		conn.Close()
		srv.Close()
	}
}

func send(t *testing.T, conn *websocket.Conn, pdu *proto.Pdu) {
	t.Helper()
	frame, err := pdu.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatal(err)
	}
}

func recv(t *testing.T, conn *websocket.Conn) *proto.Pdu {
	t.Helper()
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	pdu, err := proto.Decode(frame)
	if err != nil {
		t.Fatalf("server sent garbage: %s", err)
	}
	return pdu
}

func TestSession(t *testing.T) {
	conn, reg, done := dial(t)
	defer done()

	send(t, conn, &proto.Pdu{Handshake: &proto.Handshake{
		GetInfo: &proto.GetInfo{Request: &proto.Empty{}},
	}})
	pdu := recv(t, conn)
	if pdu.Handshake == nil || pdu.Handshake.GetInfo == nil ||
		pdu.Handshake.GetInfo.Ok == nil {
		t.Fatal("get_info not answered with ok")
	}

	send(t, conn, connectPdu(fpc.ProtocolVersion))
	pdu = recv(t, conn)
	if pdu.Handshake == nil || pdu.Handshake.Connect == nil ||
		pdu.Handshake.Connect.Ok == nil {
		t.Fatal("connect not answered with ok")
	}

	send(t, conn, registerPdu("Alice"))
	pdu = recv(t, conn)
	if pdu.MatchmakingQueue == nil ||
		pdu.MatchmakingQueue.PlayerRegister == nil ||
		pdu.MatchmakingQueue.PlayerRegister.Ok == nil {
		t.Fatal("register not answered with ok")
	}

	if reg.Peers() != 1 {
		t.Errorf("registry holds %d peers, want 1", reg.Peers())
	}
}

func TestMalformedFrame(t *testing.T) {
	conn, _, done := dial(t)
	defer done()

	// Garbage is dropped, the connection survives
	err := conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	if err != nil {
		t.Fatal(err)
	}

	send(t, conn, &proto.Pdu{Handshake: &proto.Handshake{
		GetInfo: &proto.GetInfo{Request: &proto.Empty{}},
	}})
	pdu := recv(t, conn)
	if pdu.Handshake == nil || pdu.Handshake.GetInfo == nil ||
		pdu.Handshake.GetInfo.Ok == nil {
		t.Fatal("connection did not survive a malformed frame")
	}
}

func TestDisconnect(t *testing.T) {
	conn, reg, done := dial(t)
	defer done()

	send(t, conn, connectPdu(fpc.ProtocolVersion))
	recv(t, conn)
	if reg.Peers() != 1 {
		t.Fatalf("registry holds %d peers, want 1", reg.Peers())
	}

	conn.Close()
	for deadline := time.Now().Add(time.Second); time.Now().Before(deadline); {
		if reg.Peers() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("peer still registered after the connection closed")
}
