package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hackman-bot/config"
	"hackman-bot/history"
	"hackman-bot/logging"
)

// SessionBrowserUI lists recorded sessions and replays the selected one.
type SessionBrowserUI struct {
	flex     *tview.Flex
	list     *tview.List
	view     *FieldView
	hint     *tview.TextView
	store    *history.Store
	sessions []history.SessionInfo
	selected int
	onDone   func()
}

// NewSessionBrowser creates the browser screen backed by store.
func NewSessionBrowser(store *history.Store, theme config.Theme, onDone func()) *SessionBrowserUI {
	sb := &SessionBrowserUI{
		store:  store,
		onDone: onDone,
		view:   NewFieldView(theme),
	}

	// Session list (left panel)
	sb.list = tview.NewList()
	sb.list.SetBorder(true)
	sb.list.SetBorderColor(tcell.PaletteColor(theme.BorderColor))
	sb.list.SetTitle(" Sessions ")
	sb.list.ShowSecondaryText(false)
	sb.list.SetHighlightFullLine(true)
	sb.list.SetMainTextStyle(tcell.StyleDefault.Foreground(Colors.Label))
	sb.list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(Colors.ButtonText).
		Background(Colors.ButtonFocus))

	// Hint bar
	sb.hint = tview.NewTextView()
	sb.hint.SetDynamicColors(true)
	sb.hint.SetBorder(false)
	sb.hint.SetText("  [dimgray]←/→[-] step  [dimgray]g/G[-] first/last  [dimgray]d[-] delete  [dimgray]q[-] quit")

	sb.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		sb.selectSession(index)
	})
	sb.list.SetInputCapture(sb.handleInput)

	// Layout: list left, field right, hint bottom
	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(sb.list, 52, 0, true).
		AddItem(sb.view.Box, 0, 1, false)

	sb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(sb.hint, 1, 0, false)

	sb.loadSessions()
	return sb
}

// Flex returns the flex container for this UI.
func (sb *SessionBrowserUI) Flex() *tview.Flex {
	return sb.flex
}

// loadSessions reads the session list from the store.
func (sb *SessionBrowserUI) loadSessions() {
	sb.list.Clear()
	sb.sessions = nil
	sb.view.SetFrames(nil)

	sessions, err := sb.store.ListSessions()
	if err != nil {
		logging.Log.Errorf("list sessions: %v", err)
	}
	if err != nil || len(sessions) == 0 {
		sb.list.AddItem("[dimgray]No sessions recorded[-]", "", 0, nil)
		return
	}

	sb.sessions = sessions
	for _, s := range sessions {
		sb.list.AddItem(sessionLabel(s), "", 0, nil)
	}
	sb.selectSession(0)
}

// sessionLabel is the list entry for a session.
func sessionLabel(s history.SessionInfo) string {
	status := fmt.Sprintf("%3d rounds", s.Decisions)
	if !s.Finished() {
		status = "[::d]" + status + "*[::-]"
	}
	return fmt.Sprintf("%s  %dx%d  %s  %s", s.StartedAt.Format("01-02 15:04"), s.Width, s.Height, status, s.Strategy)
}

// selectSession loads the frames of session index into the field view.
func (sb *SessionBrowserUI) selectSession(index int) {
	sb.selected = index
	if index < 0 || index >= len(sb.sessions) {
		sb.view.SetFrames(nil)
		return
	}
	frames, err := sb.store.Replay(sb.sessions[index].ID)
	if err != nil {
		logging.Log.Errorf("replay session %s: %v", sb.sessions[index].ID, err)
	}
	sb.view.SetFrames(frames)
}

// handleInput processes keyboard input for the session browser.
func (sb *SessionBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		sb.done()
		return nil
	case tcell.KeyLeft:
		sb.view.Step(-1)
		return nil
	case tcell.KeyRight:
		sb.view.Step(1)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			sb.done()
			return nil
		case 'h':
			sb.view.Step(-1)
			return nil
		case 'l':
			sb.view.Step(1)
			return nil
		case 'g':
			sb.view.Seek(0)
			return nil
		case 'G':
			sb.view.Last()
			return nil
		case 'd':
			sb.deleteSelected()
			return nil
		}
	}
	return event
}

// deleteSelected removes the currently selected session.
func (sb *SessionBrowserUI) deleteSelected() {
	if sb.selected < 0 || sb.selected >= len(sb.sessions) {
		return
	}
	if err := sb.store.Delete(sb.sessions[sb.selected].ID); err != nil {
		logging.Log.Errorf("delete session: %v", err)
	}
	sb.loadSessions()
}

func (sb *SessionBrowserUI) done() {
	if sb.onDone != nil {
		sb.onDone()
	}
}
