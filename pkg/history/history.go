// Package history provides a bounded undo/redo stack of reversible
// commands. Every structural document mutation goes through a Command
// so it composes with undo.
package history

// DefaultLimit bounds the undo stack; the oldest entry is evicted
// when a new command would exceed it.
const DefaultLimit = 100

// Command is a reversible document mutation. Undo after Execute must
// restore exactly the prior observable state of everything it touched.
type Command interface {
	Execute()
	Undo()
	Description() string
}

// Info is the payload of the history-changed notification
type Info struct {
	CanUndo         bool
	CanRedo         bool
	UndoDescription string
	RedoDescription string
}

// History is a bounded linear undo/redo stack
type History struct {
	undo  []Command
	redo  []Command
	limit int

	// OnChanged fires after every Execute/Undo/Redo
	OnChanged func(Info)
}

// New creates a history with the default stack bound
func New() *History {
	return &History{limit: DefaultLimit}
}

// NewWithLimit creates a history with a custom stack bound
func NewWithLimit(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Execute runs the command, pushes it onto the undo stack and clears
// the redo stack. The oldest entry is evicted past the stack bound.
func (h *History) Execute(cmd Command) {
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
	h.notify()
}

// Undo reverts the most recent command. Returns false on an empty stack.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	h.notify()
	return true
}

// Redo re-applies the most recently undone command. Returns false on an
// empty stack.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	h.notify()
	return true
}

// CanUndo reports whether the undo stack is non-empty
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDescription returns the description of the next undo, or ""
func (h *History) UndoDescription() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Description()
}

// RedoDescription returns the description of the next redo, or ""
func (h *History) RedoDescription() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Description()
}

func (h *History) notify() {
	if h.OnChanged != nil {
		h.OnChanged(Info{
			CanUndo:         h.CanUndo(),
			CanRedo:         h.CanRedo(),
			UndoDescription: h.UndoDescription(),
			RedoDescription: h.RedoDescription(),
		})
	}
}
