// Subsystem Management
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

package conf

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	fpc "go-fpc"
)

// Manager is a subsystem with its own task: the websocket listener,
// the matchmaking dispatcher, the database.
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("Late register: %#v", m))
	}
	c.man = append(c.man, m)
}

// Start launches all registered managers and blocks until an
// interrupt or a shutdown request, then shuts the managers down in
// reverse registration order.
func (c *Conf) Start() {
	for _, m := range c.man {
		fpc.Debug.Printf("Starting %s", m)
		go m.Start()
	}
	c.run = true

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	<-intr
	log.Println("Caught interrupt")

	done := make(chan struct{})
	go func() {
		for i := len(c.man) - 1; i >= 0; i-- {
			m := c.man[i]
			fpc.Debug.Printf("Shutting %s down", m)
			m.Shutdown()
		}
		done <- struct{}{}
	}()

	select {
	case <-intr:
		log.Println("Forced shutdown")
	case <-done:
		log.Println("Shutting down regularly")
	}
}
