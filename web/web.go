// WebSocket endpoint
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

// Package web accepts websocket connections and turns them into
// peers.  Each connection runs a read task and a write task; inbound
// frames are dispatched to the message handlers, outbound frames are
// drained from the peer's queue.
package web

import (
	"log"
	"net"
	"net/http"

	"go-fpc/conf"
	"go-fpc/game"
)

type Listener struct {
	cf  *conf.Conf
	reg *game.Registry
	srv *http.Server
	ln  net.Listener
}

func MakeListener(cf *conf.Conf, reg *game.Registry) *Listener {
	return &Listener{cf: cf, reg: reg}
}

func Prepare(cf *conf.Conf, reg *game.Registry) {
	cf.Register(MakeListener(cf, reg))
}

func (*Listener) String() string { return "WebSocket Listener" }

// Handler exposes the upgrade endpoint, mainly so tests can mount it
// on an httptest server.
func (l *Listener) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", l.upgrade)
	return mux
}

func (l *Listener) Start() {
	var err error
	l.ln, err = net.Listen("tcp", l.cf.Addr)
	if err != nil {
		// Without a listening socket there is no server; exit
		// with a failure.
		log.Fatal(err)
	}
	l.srv = &http.Server{Handler: l.Handler()}

	log.Printf("Listening on %s", l.cf.Addr)
	err = l.srv.Serve(l.ln)
	if err != nil && err != http.ErrServerClosed {
		log.Print(err)
	}
}

func (l *Listener) Shutdown() {
	if l.srv != nil {
		if err := l.srv.Close(); err != nil {
			log.Print(err)
		}
	}
}
