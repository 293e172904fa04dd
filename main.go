// hackman-bot plays Hack-man over the engine's line protocol on stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/tview"

	"hackman-bot/config"
	"hackman-bot/engine"
	"hackman-bot/history"
	"hackman-bot/logging"
	"hackman-bot/mirror"
	"hackman-bot/protocol"
	"hackman-bot/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagRecord     = flag.Bool("record", false, "Record this session to the history database")
	flagHistory    = flag.Bool("history", false, "Browse recorded sessions instead of playing")
	flagSeed       = flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	flagStrategy   = flag.String("strategy", "", "Move strategy (random or pass)")
	flagInitConfig = flag.Bool("init-config", false, "Write the effective config to the config dir and exit")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("hackman-bot %s\n", Version)
		return
	}

	var cfgErr error
	cfg, cfgErr = loadConfig(config.InitConfig)
	if cfgErr != nil && (*flagInitConfig || *flagHistory) {
		fmt.Fprintln(os.Stderr, cfgErr)
		os.Exit(1)
	}
	flagErr := applyFlags(cfg)

	if err := initLogging(os.Stderr, cfg.Log.Level); err != nil {
		logging.Log.Warningf("log level %q: %v, using INFO", cfg.Log.Level, err)
	}
	if cfgErr != nil {
		logging.Log.Warningf("%v, using defaults", cfgErr)
	}
	if flagErr != nil {
		logging.Log.Warningf("%v, keeping strategy %s", flagErr, cfg.Strategy.Name)
	}

	switch {
	case *flagInitConfig:
		path, err := cfg.Save()
		if err != nil {
			logging.Log.Fatalf("save config: %v", err)
		}
		fmt.Println(path)
	case *flagHistory:
		if err := browseHistory(); err != nil {
			logging.Log.Fatalf("history: %v", err)
		}
	default:
		play()
	}
}

// loadConfig returns the config produced by load. A broken config file, .env
// or environment value is returned as an error alongside the defaults, so the
// bot can still play.
func loadConfig(load func() (*config.Config, error)) (*config.Config, error) {
	c, err := load()
	if err != nil {
		return config.DefaultConfig(), err
	}
	return c, nil
}

// initLogging sets up logging at level, falling back to INFO when level is
// not a known log level.
func initLogging(w io.Writer, level string) error {
	err := logging.InitLogging(w, level)
	if err != nil {
		logging.InitLogging(w, "INFO")
	}
	return err
}

// applyFlags lets command-line flags override the loaded config. An unknown
// strategy name leaves the configured strategy in place.
func applyFlags(c *config.Config) error {
	var err error
	if *flagStrategy != "" {
		if _, err = engine.New(*flagStrategy, 0); err == nil {
			c.Strategy.Name = *flagStrategy
		}
	}
	if *flagSeed != 0 {
		c.Strategy.Seed = *flagSeed
	}
	if *flagRecord {
		c.History.Enabled = true
	}
	return err
}

// play runs the protocol loop until stdin closes.
func play() {
	seed := cfg.Strategy.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	strategy, err := engine.New(cfg.Strategy.Name, seed)
	if err != nil {
		logging.Log.Errorf("strategy: %v, passing every turn", err)
		strategy = engine.Pass{}
	}

	var opts []protocol.Option
	sessionID := ""

	var store *history.Store
	var session *history.Session
	if cfg.History.Enabled {
		store, session = openHistory(strategy.Name())
		if session != nil {
			sessionID = session.ID
			opts = append(opts, protocol.WithObserver(session))
		}
	}

	var pub *mirror.Publisher
	if cfg.Mirror.Broker != "" {
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		pub = mirror.New(cfg.Mirror, sessionID)
		opts = append(opts, protocol.WithObserver(pub))
	}

	logging.Log.Infof("hackman-bot %s playing with strategy %s (seed %d)", Version, strategy.Name(), seed)
	bot := protocol.NewBot(strategy, opts...)
	if err := bot.Run(os.Stdin, os.Stdout); err != nil {
		logging.Log.Errorf("input: %v", err)
	}

	if session != nil {
		if err := session.Close(); err != nil {
			logging.Log.Warningf("close session: %v", err)
		}
	}
	if store != nil {
		store.Close()
	}
	if pub != nil {
		pub.Close()
	}
}

// openHistory opens the history database and starts a session. Failures are
// logged and recording is skipped.
func openHistory(strategy string) (*history.Store, *history.Session) {
	path, err := cfg.HistoryPath()
	if err != nil {
		logging.Log.Warningf("history disabled: %v", err)
		return nil, nil
	}
	store, err := history.Open(path)
	if err != nil {
		logging.Log.Warningf("history disabled: %v", err)
		return nil, nil
	}
	session, err := store.NewSession(strategy)
	if err != nil {
		logging.Log.Warningf("history disabled: %v", err)
		store.Close()
		return nil, nil
	}
	logging.Log.Infof("recording session %s to %s", session.ID, path)
	return store, session
}

// browseHistory opens the replay browser on the history database.
func browseHistory() error {
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	// tview owns the terminal, keep diagnostics off it
	logFile := historyLog(path)
	defer logFile.Close()
	initLogging(logFile, cfg.Log.Level)

	app := tview.NewApplication()
	browser := ui.NewSessionBrowser(store, cfg.Theme, app.Stop)

	rootPage := tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" hackman-bot history ")
	rootPage.AddPage("sessions", browser.Flex(), true, true)

	return app.SetRoot(rootPage, true).Run()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// historyLog opens the log file kept next to the history database, or
// discards logs when it cannot be opened.
func historyLog(dbPath string) io.WriteCloser {
	f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "history.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}
