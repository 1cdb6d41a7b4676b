package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/timur/tennis-hub/internal/api"
	"github.com/timur/tennis-hub/internal/config"
	"github.com/timur/tennis-hub/internal/session"
)

const usage = `tennishub - tennis news, rankings and players from the terminal

Usage:
  tennishub <command> [flags]

Commands:
  login        Sign in and store the session
  register     Create an account and sign in
  logout       Clear the stored session
  whoami       Show the current session
  profile      Show or update the user profile
  news         List news; read one with -read
  players      List the ATP or WTA tour
  rankings     Show the top players of both tours
  player       Show a player's full card
  tournaments  List tournaments or show one
  search       Search news and players; -i for live preview
  chat         Ask the tennis assistant; -history for past exchanges
  prefs        Show or change dark mode and language
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	app, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Manager
	log     zerolog.Logger
}

func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := session.NewFileStore(cfg.StateFile)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	)
	manager := session.NewManager(store, client, logger)
	client.InstallAuth(manager, func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run 'tennishub login' to sign in again.")
	})

	manager.Restore()

	return &app{
		cfg:     cfg,
		client:  client,
		session: manager,
		log:     logger,
	}, nil
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(args)
	case "register":
		return a.cmdRegister(args)
	case "logout":
		return a.cmdLogout(args)
	case "whoami":
		return a.cmdWhoami(args)
	case "profile":
		return a.cmdProfile(args)
	case "news":
		return a.cmdNews(args)
	case "players":
		return a.cmdPlayers(args)
	case "rankings":
		return a.cmdRankings(args)
	case "player":
		return a.cmdPlayer(args)
	case "tournaments":
		return a.cmdTournaments(args)
	case "search":
		return a.cmdSearch(args)
	case "chat":
		return a.cmdChat(args)
	case "prefs":
		return a.cmdPrefs(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
