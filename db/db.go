// Database management
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

package db

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"path"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	fpc "go-fpc"
	"go-fpc/conf"
	"go-fpc/game"
	"go-fpc/proto"
)

//go:embed *.sql
var sqlDir embed.FS

type db struct {
	// Two connections to the same file: READ may serve many
	// concurrent queries, WRITE is limited to a single connection
	// so sqlite never sees competing writers.
	read  *sql.DB
	write *sql.DB

	// Prepared statements loaded from the embedded .sql files.
	// QUERIES run on READ, COMMANDS on WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt

	shut chan struct{}
}

// GameRecord is one row of game history.
type GameRecord struct {
	ID      uint64
	Started time.Time
	Names   [4]string
	Winner  *fpc.Color
	Ended   *time.Time
}

// MoveRecord is one accepted move as it was sent on the wire.
type MoveRecord struct {
	Color  fpc.Color
	Played proto.Move
	At     time.Time
}

func (db *db) RecordGame(ctx context.Context, g *game.Game) {
	var names [4]string
	for _, c := range fpc.Seats {
		if p := g.Player(c); p != nil && p.Peer != nil {
			names[c] = p.Peer.Name()
		}
	}
	_, err := db.commands["insert-game"].ExecContext(ctx,
		g.ID(), g.Started(),
		names[fpc.Red], names[fpc.Blue],
		names[fpc.Yellow], names[fpc.Green])
	if err != nil {
		log.Print(err)
	}
}

func (db *db) RecordMove(ctx context.Context, g *game.Game, c fpc.Color, mv proto.Move, at time.Time) {
	played, err := json.Marshal(mv)
	if err != nil {
		log.Print(err)
		return
	}
	_, err = db.commands["insert-move"].ExecContext(ctx,
		g.ID(), c.String(), string(played), at)
	if err != nil {
		log.Print(err)
	}
}

func (db *db) RecordResult(ctx context.Context, g *game.Game, winner *fpc.Color) {
	var name interface{}
	if winner != nil {
		name = winner.String()
	}
	_, err := db.commands["update-result"].ExecContext(ctx,
		name, time.Now(), g.ID())
	if err != nil {
		log.Print(err)
	}
}

// QueryGame fetches the row for game ID, or nil if none was recorded.
func (db *db) QueryGame(ctx context.Context, id uint64) *GameRecord {
	var (
		rec    GameRecord
		winner sql.NullString
		ended  sql.NullTime
	)
	err := db.queries["select-game"].QueryRowContext(ctx, id).Scan(
		&rec.ID, &rec.Started,
		&rec.Names[fpc.Red], &rec.Names[fpc.Blue],
		&rec.Names[fpc.Yellow], &rec.Names[fpc.Green],
		&winner, &ended)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Print(err)
		}
		return nil
	}
	if winner.Valid {
		for _, c := range fpc.Seats {
			if c.String() == winner.String {
				w := c
				rec.Winner = &w
			}
		}
	}
	if ended.Valid {
		rec.Ended = &ended.Time
	}
	return &rec
}

// QueryMoves fetches the accepted moves of game ID in play order.
func (db *db) QueryMoves(ctx context.Context, id uint64) []MoveRecord {
	rows, err := db.queries["select-moves"].QueryContext(ctx, id)
	if err != nil {
		log.Print(err)
		return nil
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var (
			rec   MoveRecord
			color string
			wire  string
		)
		if err := rows.Scan(&color, &wire, &rec.At); err != nil {
			log.Print(err)
			return nil
		}
		for _, c := range fpc.Seats {
			if c.String() == color {
				rec.Color = c
			}
		}
		if err := json.Unmarshal([]byte(wire), &rec.Played); err != nil {
			log.Print(err)
			return nil
		}
		moves = append(moves, rec)
	}
	if err := rows.Err(); err != nil {
		log.Print(err)
	}
	return moves
}

func (db *db) Start() {
	tick := time.NewTicker(24 * time.Hour)
	defer tick.Stop()
	for {
		select {
		case <-db.shut:
			return
		case <-tick.C:
			// https://www.sqlite.org/pragma.html#pragma_optimize
			if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
				log.Print(err)
			}
		}
	}
}

func (db *db) Shutdown() {
	close(db.shut)

	// https://www.sqlite.org/pragma.html#pragma_optimize
	if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
		log.Print(err)
	}
	if err := db.write.Close(); err != nil {
		log.Print(err)
	}
	if err := db.read.Close(); err != nil {
		log.Print(err)
	}
}

func (*db) String() string { return "Database Manager" }

// Prepare opens the database named by the configuration, loads the
// embedded schema and statements and registers the manager.  The
// returned recorder is handed to the matchmaking dispatcher.
func Prepare(cf *conf.Conf) game.Recorder {
	read, err := sql.Open("sqlite3", cf.Database)
	if err != nil {
		log.Fatal(err, ": ", cf.Database)
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", cf.Database)
	if err != nil {
		log.Fatal(err, ": ", cf.Database)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
		shut:     make(chan struct{}),
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		fpc.Debug.Printf("Run PRAGMA %v", pragma)
		if _, err = db.write.Exec("PRAGMA " + pragma + ";"); err != nil {
			log.Fatal(err)
		}
	}

	entries, err := sqlDir.ReadDir(".")
	if err != nil {
		log.Fatal(err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sqlDir, entry.Name())
		if err != nil {
			log.Fatal(err)
		}

		switch {
		case strings.HasPrefix(base, "create-"):
			_, err = db.write.Exec(string(data))
			fpc.Debug.Printf("Executed %v", base)
		case strings.HasPrefix(base, "select-"):
			name := strings.TrimSuffix(base, ".sql")
			db.queries[name], err = db.read.Prepare(string(data))
			fpc.Debug.Printf("Registered query %v", name)
		default:
			name := strings.TrimSuffix(base, ".sql")
			db.commands[name], err = db.write.Prepare(string(data))
			fpc.Debug.Printf("Registered command %v", name)
		}
		if err != nil {
			log.Fatal(entry.Name(), ": ", err)
		}
	}

	cf.Register(conf.Manager(db))
	return db
}
