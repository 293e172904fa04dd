package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"hackman-bot/engine"
	"hackman-bot/field"
	"hackman-bot/logging"
	"hackman-bot/types"
)

// ErrInvalidMove is reported when a strategy returns a move outside the five
// the engine accepts.
var ErrInvalidMove = errors.New("invalid move")

// Decision describes one answer to an action request.
type Decision struct {
	Round     int
	Timebank  int
	Strategy  string
	Move      types.Move
	Available []types.Move
	Err       error // strategy failure that forced a pass
}

// Observer is notified of protocol traffic. Callbacks run on the goroutine
// driving the bot, before the response is written, and must not block.
type Observer interface {
	// Received is called with every non-blank input line, before it is handled.
	Received(line string)

	// Decided is called after a move is chosen and before it is written.
	Decided(d Decision)
}

// Sender may be implemented by an Observer that has slower work to do per
// decision. Run calls Sent after the response line has been written.
type Sender interface {
	Sent(response string)
}

// Bot holds everything one game needs: the settings and state sent by the
// engine and the strategy answering action requests.
type Bot struct {
	Settings *types.Settings
	State    *types.GameState

	strategy  engine.Strategy
	observers []Observer
}

// Option configures a Bot.
type Option func(*Bot)

// WithObserver registers o to receive protocol traffic.
func WithObserver(o Observer) Option {
	return func(b *Bot) {
		b.observers = append(b.observers, o)
	}
}

// NewBot creates a bot with empty settings and state.
func NewBot(strategy engine.Strategy, opts ...Option) *Bot {
	b := &Bot{
		Settings: types.NewSettings(),
		State:    types.NewGameState(),
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run reads lines from r until it is closed, writing one response line to w
// for each action request. It returns nil when r reaches EOF.
func (b *Bot) Run(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if response, ok := b.HandleLine(line); ok {
				if _, werr := fmt.Fprintf(w, "%s\n", response); werr != nil {
					return fmt.Errorf("write response: %w", werr)
				}
				b.sent(response)
			}
		}
		if errors.Is(err, io.EOF) {
			logging.Log.Info("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}

// HandleLine processes a single input line. It returns the response to send
// and true only for action requests.
func (b *Bot) HandleLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	for _, o := range b.observers {
		o.Received(line)
	}

	cmd, err := Parse(line)
	if err != nil {
		if errors.Is(err, ErrUnknownCommand) {
			logging.Log.Errorf("unable to execute command: %s, with data: %v", cmd.Name, cmd.Args)
		} else {
			logging.Log.Warningf("bad %s line %q: %v", cmd.Name, line, err)
		}
		if cmd.Kind != KindActionMove {
			return "", false
		}
	} else if err := Apply(b.Settings, b.State, cmd); err != nil {
		logging.Log.Warningf("%s rejected: %v", cmd.Kind, err)
		return "", false
	}

	if cmd.Kind == KindActionMove {
		return b.decide().String(), true
	}
	return "", false
}

// decide asks the strategy for a move, passing if it fails.
func (b *Bot) decide() types.Move {
	d := Decision{
		Round:    b.State.Round,
		Timebank: b.State.Timebank,
		Strategy: b.strategy.Name(),
	}

	move, err := b.strategy.Execute(b.Settings, b.State)
	if err == nil && !move.Valid() {
		err = fmt.Errorf("%w: %s", ErrInvalidMove, move)
	}
	if err != nil {
		logging.Log.Errorf("round %d: %s strategy failed, passing: %v", d.Round, d.Strategy, err)
		move = types.Pass
		d.Err = err
	}
	d.Move = move

	if available, err := field.AvailableMoves(b.Settings, b.State); err == nil {
		d.Available = available
		if !slices.Contains(available, move) {
			logging.Log.Warningf("round %d: %s is not one of %v", d.Round, move, available)
		}
	}
	logging.Log.Debugf("round %d: %s of %v", d.Round, d.Move, d.Available)

	for _, o := range b.observers {
		o.Decided(d)
	}
	return move
}

func (b *Bot) sent(response string) {
	for _, o := range b.observers {
		if s, ok := o.(Sender); ok {
			s.Sent(response)
		}
	}
}
