package history

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
)

// AddItemCommand adds one item to the document
type AddItemCommand struct {
	doc  *document.Document
	item document.Item
}

// NewAddItemCommand wraps adding an item in a reversible command
func NewAddItemCommand(doc *document.Document, item document.Item) *AddItemCommand {
	return &AddItemCommand{doc: doc, item: item}
}

func (c *AddItemCommand) Execute() {
	c.doc.AddItem(c.item)
}

func (c *AddItemCommand) Undo() {
	c.doc.RemoveItem(c.item.Base().ID())
}

func (c *AddItemCommand) Description() string {
	return fmt.Sprintf("add %s", c.item.Kind())
}

// deletedEntry remembers where a deleted item sat in the z-order
type deletedEntry struct {
	item  document.Item
	index int
}

// DeleteItemsCommand removes a set of items, restoring the original
// z-order positions on undo
type DeleteItemsCommand struct {
	doc     *document.Document
	entries []deletedEntry
}

// NewDeleteItemsCommand wraps deleting the given items. Returns nil when
// the list is empty.
func NewDeleteItemsCommand(doc *document.Document, items []document.Item) *DeleteItemsCommand {
	if len(items) == 0 {
		return nil
	}
	entries := make([]deletedEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, deletedEntry{item: item})
	}
	return &DeleteItemsCommand{doc: doc, entries: entries}
}

func (c *DeleteItemsCommand) Execute() {
	for i := range c.entries {
		c.entries[i].index = c.doc.RemoveItem(c.entries[i].item.Base().ID())
	}
}

func (c *DeleteItemsCommand) Undo() {
	// Reinsert in reverse removal order so recorded indices stay valid
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if e.index < 0 {
			continue
		}
		c.doc.InsertItemAt(e.index, e.item)
	}
}

func (c *DeleteItemsCommand) Description() string {
	if len(c.entries) == 1 {
		return fmt.Sprintf("delete %s", c.entries[0].item.Kind())
	}
	return fmt.Sprintf("delete %d items", len(c.entries))
}

// MoveItemsCommand translates a set of items by a fixed delta. The
// stored delta (not a relative position) keeps repeated undo/redo
// cycles idempotent.
type MoveItemsCommand struct {
	items  []document.Item
	dx, dy float64
}

// NewMoveItemsCommand wraps moving items by (dx, dy). Locked items are
// excluded up front; returns nil when nothing movable remains.
func NewMoveItemsCommand(items []document.Item, dx, dy float64) *MoveItemsCommand {
	var movable []document.Item
	for _, item := range items {
		if !item.Base().Locked {
			movable = append(movable, item)
		}
	}
	if len(movable) == 0 {
		return nil
	}
	return &MoveItemsCommand{items: movable, dx: dx, dy: dy}
}

func (c *MoveItemsCommand) Execute() {
	for _, item := range c.items {
		item.Translate(c.dx, c.dy)
		item.Base().Dirty = true
	}
}

func (c *MoveItemsCommand) Undo() {
	for _, item := range c.items {
		item.Translate(-c.dx, -c.dy)
		item.Base().Dirty = true
	}
}

func (c *MoveItemsCommand) Description() string {
	if len(c.items) == 1 {
		return fmt.Sprintf("move %s", c.items[0].Kind())
	}
	return fmt.Sprintf("move %d items", len(c.items))
}

// ModifyItemCommand swaps an item between two captured geometry states
type ModifyItemCommand struct {
	item   document.Item
	before document.State
	after  document.State
	label  string
}

// NewModifyItemCommand wraps a geometry edit. before must be captured
// ahead of the mutation, after once the edit is final. Returns nil for
// locked items.
func NewModifyItemCommand(item document.Item, before, after document.State, label string) *ModifyItemCommand {
	if item.Base().Locked {
		return nil
	}
	if label == "" {
		label = fmt.Sprintf("modify %s", item.Kind())
	}
	return &ModifyItemCommand{item: item, before: before, after: after, label: label}
}

func (c *ModifyItemCommand) Execute() {
	c.item.ApplyState(c.after)
	c.item.Base().Dirty = true
}

func (c *ModifyItemCommand) Undo() {
	c.item.ApplyState(c.before)
	c.item.Base().Dirty = true
}

func (c *ModifyItemCommand) Description() string { return c.label }
