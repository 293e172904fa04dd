// Package ui provides the tview screens used to browse recorded sessions.
package ui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hackman-bot/config"
	"hackman-bot/history"
)

// FieldView draws one replayed frame of a session and steps through frames.
type FieldView struct {
	Box    *tview.Box
	theme  config.Theme
	frames []history.Frame
	index  int
}

// NewFieldView creates an empty view using theme for cell symbols.
func NewFieldView(theme config.Theme) *FieldView {
	v := &FieldView{
		Box:   tview.NewBox(),
		theme: theme,
	}
	v.Box.SetBorder(true)
	v.Box.SetTitle(" Field ")
	v.Box.SetBorderColor(tcell.PaletteColor(theme.BorderColor))
	v.Box.SetDrawFunc(v.draw)
	return v
}

// SetFrames replaces the frames and jumps to the first one.
func (v *FieldView) SetFrames(frames []history.Frame) {
	v.frames = frames
	v.index = 0
}

// Step moves delta frames forward (or backward), clamped to the ends.
func (v *FieldView) Step(delta int) {
	v.Seek(v.index + delta)
}

// Seek jumps to frame i, clamped to the ends.
func (v *FieldView) Seek(i int) {
	if i >= len(v.frames) {
		i = len(v.frames) - 1
	}
	if i < 0 {
		i = 0
	}
	v.index = i
}

// Last jumps to the final frame.
func (v *FieldView) Last() {
	v.Seek(len(v.frames) - 1)
}

// Current returns the frame on screen, or nil if there are none.
func (v *FieldView) Current() *history.Frame {
	if len(v.frames) == 0 {
		return nil
	}
	return &v.frames[v.index]
}

func (v *FieldView) style(token, botID string) (rune, tcell.Style) {
	cell, ok := v.theme.Cells[token]
	if !ok {
		cell = v.theme.Unknown
	}
	style := tcell.StyleDefault.Foreground(tcell.PaletteColor(cell.Color))
	if token == botID {
		style = style.Foreground(tcell.PaletteColor(v.theme.OwnBotColor)).Bold(true)
	}
	return cell.Symbol, style
}

func (v *FieldView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	frame := v.Current()
	if frame == nil {
		drawText(screen, x+2, y+1, "No frames recorded", tcell.StyleDefault.Foreground(Colors.Hint))
		return x, y, width, height
	}

	g := frame.Grid
	startX, startY := x+2, y+1
	// 2 characters per cell for square appearance
	if g.Width > 0 && width >= g.Width*2+4 && height >= g.Height+8 {
		for i, token := range frame.Field {
			if i >= g.Size() {
				break
			}
			r, style := v.style(token, frame.BotID)
			cx, cy := startX+(i%g.Width)*2, startY+i/g.Width
			screen.SetContent(cx, cy, r, nil, style)
			screen.SetContent(cx+1, cy, ' ', nil, style)
		}
		startY += g.Height + 1
	}

	lines := frameInfo(frame, v.index, len(v.frames))
	for i, line := range lines {
		style := tcell.StyleDefault.Foreground(Colors.Label)
		if i == 0 {
			style = tcell.StyleDefault.Foreground(Colors.Accent).Bold(true)
		}
		if startY+i >= y+height-1 {
			break
		}
		drawText(screen, startX, startY+i, line, style)
	}
	return x, y, width, height
}

// frameInfo describes a frame as text lines shown under the field.
func frameInfo(frame *history.Frame, index, total int) []string {
	move := "(no response)"
	if frame.Answered {
		move = frame.Move.String()
	}
	lines := []string{
		fmt.Sprintf("Round %d  [%d/%d]", frame.Round, index+1, total),
		fmt.Sprintf("Move: %s  Timebank: %dms", move, frame.Timebank),
	}

	ids := make([]string, 0, len(frame.Players))
	for id := range frame.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := frame.Players[id]
		line := fmt.Sprintf("%s: %d snippets", id, p.Snippets)
		if p.HasWeapon {
			line += ", armed"
		}
		if p.IsParalyzed {
			line += ", paralyzed"
		}
		lines = append(lines, line)
	}
	return lines
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
