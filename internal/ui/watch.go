package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mealmate/internal/viewstate"
)

// stateMsg carries one controller state snapshot into the Bubble Tea loop.
type stateMsg[T any] struct {
	gen   int
	state T
}

// watch adapts an Observable subscription into a chain of tea.Cmds. Each
// delivered message must be answered with next() to keep receiving.
type watch[T any] struct {
	gen    int
	ch     <-chan T
	cancel func()
}

func newWatch[T any](gen int, obs *viewstate.Observable[T]) *watch[T] {
	ch, cancel := obs.Subscribe()
	return &watch[T]{gen: gen, ch: ch, cancel: cancel}
}

func (w *watch[T]) next() tea.Cmd {
	if w == nil {
		return nil
	}
	ch, gen := w.ch, w.gen
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg[T]{gen: gen, state: state}
	}
}

func (w *watch[T]) accepts(msg stateMsg[T]) bool {
	return w != nil && w.gen == msg.gen
}

func (w *watch[T]) stop() {
	if w != nil {
		w.cancel()
	}
}
