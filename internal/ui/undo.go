package ui

import (
	"fmt"

	"foodies/internal/model"
	"foodies/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// maxUndo bounds the history; every action holds two document snapshots.
const maxUndo = 50

type undoAction struct {
	label string
	undo  func() error
	redo  func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndo {
		m.undoStack = m.undoStack[len(m.undoStack)-maxUndo:]
	}
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

// buildMutationAction restores the snapshot taken before a write on undo
// and the one taken after it on redo.
func buildMutationAction(s *store.Store, msg model.MutatedMsg) undoAction {
	before := msg.Before.Clone()
	after := msg.After.Clone()
	return undoAction{
		label: fmt.Sprintf("%s %s", msg.Entity, pastTense(msg.Operation)),
		undo: func() error {
			return s.Replace(before)
		},
		redo: func() error {
			return s.Replace(after)
		},
	}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		// Put the action back so the user can retry.
		if msg.direction == "undo" {
			m.undoStack = append(m.undoStack, msg.action)
		} else {
			m.redoStack = append(m.redoStack, msg.action)
		}
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		return nil
	}
	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid " + msg.action.label
	}
	m.error = ""
	return m.loadCmd()
}

func pastTense(op string) string {
	switch op {
	case model.OpCreate:
		return "created"
	case model.OpUpdate:
		return "updated"
	case model.OpDelete:
		return "deleted"
	case model.OpReorder:
		return "reordered"
	default:
		return op
	}
}
