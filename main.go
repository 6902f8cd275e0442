package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"checkerscli/internal/ledger"
	"checkerscli/internal/logging"
	"checkerscli/internal/session"
	"checkerscli/internal/storage"
	"checkerscli/pkg/utils"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/graphql", "game service GraphQL endpoint")
	player := flag.String("player", "", "player chain id; random if empty")
	dbPath := flag.String("db", "checkers.db", "local cache path; empty disables the cache")
	gameID := flag.String("game", "", "game to select on startup")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := logging.New(*debug)
	defer func() { _ = log.Sync() }()

	playerID := *player
	if playerID == "" {
		playerID = "anon-" + utils.RandomHex(8)
	}

	var store *storage.Store
	if *dbPath != "" {
		db, err := storage.New(*dbPath)
		if err != nil {
			log.Warn("local cache disabled", zap.String("db", *dbPath), zap.Error(err))
		} else {
			store = storage.NewStore(db)
		}
	}

	client := ledger.New(*endpoint, log)
	sess := session.New(client, store, clock.New(), log, playerID, session.DefaultConfig())
	defer sess.Deselect()

	fmt.Printf("checkers cli %s (%s)\nplayer %s, service %s\n", commit, buildDate, playerID, *endpoint)

	c := newCLI(sess, client, store, log)
	if *gameID != "" {
		if err := sess.Select(context.Background(), *gameID); err != nil {
			log.Error("startup select failed", zap.String("game", *gameID), zap.Error(err))
		}
	}
	if err := c.run(os.Stdin, os.Stdout); err != nil {
		log.Error("cli exited", zap.Error(err))
		os.Exit(1)
	}
}
