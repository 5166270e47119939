// Entry point
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	fpc "go-fpc"
	"go-fpc/conf"
	"go-fpc/db"
	"go-fpc/game"
	"go-fpc/sched"
	"go-fpc/web"
)

// Default file name for the configuration file
const defconf = "server.toml"

func main() {
	var (
		confFile = flag.String("conf", defconf, "Name of configuration file")
		dumpConf = flag.Bool("dump-config", false, "Dump default configuration")
		debug    = flag.Bool("debug", false, "Enable debug logging")
	)

	flag.Parse()
	if flag.NArg() > 1 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *debug {
		fpc.Debug.SetOutput(os.Stderr)
		fpc.Debug.Println("Debug logging has been enabled")
	}

	// Load the configuration from disk (if available)
	config, err := conf.Open(*confFile)
	if err != nil {
		if !os.IsNotExist(err) || *confFile != defconf {
			log.Fatal(err)
		}
		config = conf.Default()
	}

	// Dump the configuration onto the disk if requested
	if *dumpConf {
		if err := config.Dump(os.Stdout); err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	// A positional argument overrides the listen address
	if flag.NArg() == 1 {
		config.Addr = flag.Arg(0)
	}

	reg := game.NewRegistry()

	// Enable the database
	rec := db.Prepare(config)

	// Accept websocket connections
	web.Prepare(config, reg)

	// Run the matchmaking dispatcher
	sched.Prepare(config, reg, rec)

	// Launch the server
	config.Start()
}
