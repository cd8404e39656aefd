package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appengine-ltd/money-smartz/internal/console"
	"github.com/appengine-ltd/money-smartz/internal/game"
	"github.com/appengine-ltd/money-smartz/internal/storage"
	"github.com/appengine-ltd/money-smartz/internal/storage/sqlite"
	"github.com/appengine-ltd/money-smartz/pkg/logging"
)

// version, commit, date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		name        string
		seed        int64
		dbPath      string
		saveID      string
		scriptPath  string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&name, "name", "Player", "player name for a new game")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.StringVar(&dbPath, "db", "moneysmartz.db", "save database path (empty disables saving)")
	flag.StringVar(&saveID, "save", "", "id of a saved game to continue")
	flag.StringVar(&scriptPath, "script", "", "read commands from this file instead of stdin")
	flag.Parse()

	if showVersion {
		fmt.Printf("Money Smartz %s (%s) %s\n", version, commit, date)
		return
	}

	logging.Setup()

	if err := run(name, seed, dbPath, saveID, scriptPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(name string, seed int64, dbPath, saveID, scriptPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	if dbPath != "" {
		s, err := sqlite.New(dbPath)
		if err != nil {
			return fmt.Errorf("open save database: %w", err)
		}
		defer s.Close()
		store = s
	}

	g, err := startGame(ctx, store, name, seed, saveID)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	prompt := true
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
		prompt = false
	}

	session := console.NewSession(g, store, os.Stdout)
	session.SaveID = saveID
	fmt.Println("Welcome to Money Smartz! Type help for the list of commands.")
	fmt.Println(g.ExecuteCommand("status").Message)
	if err := session.Run(ctx, in, prompt); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Debug("session finished", "game_id", session.SaveID, "over", session.Game.Over)
	return nil
}

func startGame(ctx context.Context, store storage.Store, name string, seed int64, saveID string) (*game.Game, error) {
	if saveID == "" {
		return game.NewGame(game.Config{PlayerName: name, Seed: seed})
	}
	if store == nil {
		return nil, fmt.Errorf("-save needs a database")
	}
	save, err := store.LoadGame(ctx, saveID)
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", saveID, err)
	}
	return save.Game()
}
