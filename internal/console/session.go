// Package console drives a game from a line-oriented text stream. It is the
// headless front end used by the moneysmartz binary and by scripted runs.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/appengine-ltd/money-smartz/internal/finance"
	"github.com/appengine-ltd/money-smartz/internal/game"
	"github.com/appengine-ltd/money-smartz/internal/parser"
	"github.com/appengine-ltd/money-smartz/internal/storage"
)

const storeTimeout = 5 * time.Second

// Session is one player at one terminal. Store may be nil, in which case save
// and load are refused.
type Session struct {
	Game   *game.Game
	SaveID string

	store  storage.Store
	out    io.Writer
	parser *parser.Parser
	opts   []game.Option

	pendingClarify *parser.ClarifyQuestion
	lastEntity     string
	done           bool
}

// NewSession wraps g. opts are reapplied to any game loaded later.
func NewSession(g *game.Game, store storage.Store, out io.Writer, opts ...game.Option) *Session {
	return &Session{
		Game:   g,
		store:  store,
		out:    out,
		parser: parser.New(),
		opts:   opts,
	}
}

// Done reports whether the player asked to leave.
func (s *Session) Done() bool {
	return s.done
}

// Run reads commands until EOF, quit, or ctx is cancelled. When prompt is
// set a "> " prompt is written before each line. Lines are read on their own
// goroutine so cancellation does not wait for the next line; that goroutine
// stays blocked on in until in is closed or yields a line.
func (s *Session) Run(ctx context.Context, in io.Reader, prompt bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line := <-lines:
			s.Submit(ctx, line)
			if s.done {
				return nil
			}
		}
	}
}

// Submit handles one line of input and writes the response.
func (s *Session) Submit(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	if s.pendingClarify != nil {
		q := s.pendingClarify
		s.pendingClarify = nil
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(q.Options) {
				s.println("No such option.")
				return
			}
			s.dispatch(ctx, q.Options[n-1])
			return
		}
	}

	intent := s.parser.Parse(s.parseContext(), line)
	if intent.Clarify != nil {
		s.ask(intent.Clarify)
		return
	}
	s.dispatch(ctx, intent)
}

func (s *Session) parseContext() parser.ParseContext {
	ctx := parser.ParseContext{LastEntity: s.lastEntity}
	for _, a := range s.Game.Player.Assets {
		ctx.Assets = append(ctx.Assets, a.Name)
	}
	return ctx
}

func (s *Session) ask(q *parser.ClarifyQuestion) {
	s.println(q.Prompt)
	if len(q.Options) == 0 {
		return
	}
	for i, opt := range q.Options {
		s.println(fmt.Sprintf("  %d) %s", i+1, parser.IntentToCommandString(opt)))
	}
	s.pendingClarify = q
}

func (s *Session) dispatch(ctx context.Context, intent parser.Intent) {
	switch s.parser.HandlerKey(intent.Verb) {
	case "save":
		s.save(ctx)
		return
	case "load":
		s.load(ctx, saveIDArg(intent))
		return
	case "quit":
		if !s.Game.Over {
			s.println(s.Game.ExecuteCommand("quit").Message)
		}
		s.done = true
		return
	}

	command := parser.IntentToCommandString(intent)
	res := s.Game.ExecuteCommand(command)
	if !res.Handled {
		s.println("Unknown command. Type help for the list.")
		return
	}
	s.rememberEntity(intent)
	s.println(res.Message)
}

// rememberEntity tracks the asset "it" refers to in the next command.
func (s *Session) rememberEntity(intent parser.Intent) {
	switch intent.Verb {
	case "buy", "finance":
		if assets := s.Game.Player.Assets; len(assets) > 0 {
			s.lastEntity = assets[len(assets)-1].Name
		}
	case "repair":
		if len(intent.Args) > 1 {
			s.lastEntity = intent.Args[len(intent.Args)-1]
		}
	case "sell":
		s.lastEntity = ""
	}
}

func (s *Session) save(ctx context.Context) {
	if s.store == nil {
		s.println("Saving is disabled.")
		return
	}
	save, err := storage.NewSave(s.SaveID, s.Game)
	if err != nil {
		s.println("Save failed: " + err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.SaveGame(ctx, save); err != nil {
		slog.Error("save failed", "game_id", s.SaveID, "error", err)
		s.println("Save failed: " + err.Error())
		return
	}
	s.SaveID = save.ID
	slog.Info("game saved", "game_id", save.ID, "player", save.PlayerName)
	s.println("Saved as " + save.ID + ".")
}

// load with an empty id lists the available saves instead.
func (s *Session) load(ctx context.Context, id string) {
	if s.store == nil {
		s.println("Loading is disabled.")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if id == "" {
		saves, err := s.store.ListGames(ctx)
		if err != nil {
			s.println("Load failed: " + err.Error())
			return
		}
		if len(saves) == 0 {
			s.println("No saved games.")
			return
		}
		for _, sv := range saves {
			status := "in progress"
			if sv.Over {
				status = "finished"
			}
			s.println(fmt.Sprintf("%s  %s, age %d, year %d month %d, net worth %s (%s)",
				sv.ID, sv.PlayerName, sv.Age, sv.Year, sv.Month, finance.FormatMoney(sv.NetWorth), status))
		}
		s.println("Type load <id> to continue one.")
		return
	}

	save, err := s.store.LoadGame(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		s.println("No save with id " + id + ".")
		return
	}
	if err != nil {
		s.println("Load failed: " + err.Error())
		return
	}
	g, err := save.Game(s.opts...)
	if err != nil {
		s.println("Load failed: " + err.Error())
		return
	}
	s.Game = g
	s.SaveID = save.ID
	s.lastEntity = ""
	s.println(fmt.Sprintf("Loaded %s.", save.PlayerName))
	s.println(s.Game.ExecuteCommand("status").Message)
}

// saveIDArg reads the id from the raw input, since normalising would split a
// UUID at its dashes.
func saveIDArg(intent parser.Intent) string {
	if len(intent.Args) == 0 {
		return ""
	}
	fields := strings.Fields(intent.Raw)
	if len(fields) < 2 {
		return strings.Join(intent.Args, "-")
	}
	return fields[len(fields)-1]
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
