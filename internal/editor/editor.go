// Package editor implements the interactive schematic editor shell:
// the Gio window loop, pointer and keyboard handling, the toolbar and
// the canvas renderer.
package editor

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	gvtheme "github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceEdit/pkg/document"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/history"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/library"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/routing"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/selection"
	"github.com/OpenTraceLab/OpenTraceEdit/pkg/viewport"
)

// Tool is the active canvas interaction mode
type Tool int

const (
	ToolSelect Tool = iota
	ToolWire
	ToolPlace
)

func (t Tool) String() string {
	switch t {
	case ToolWire:
		return "Wire"
	case ToolPlace:
		return "Place"
	}
	return "Select"
}

// Editor owns the document and all interactive state for one window
type Editor struct {
	window   *app.Window
	theme    *material.Theme
	gvTheme  *gvtheme.Theme
	explorer *explorer.Explorer

	doc    *document.Document
	vp     *viewport.Viewport
	sel    *selection.Manager
	hist   *history.History
	router *routing.Router
	lib    *library.Library

	colorTheme ColorTheme
	colors     *EditorColors

	tool          Tool
	pendingSymbol string

	// Toolbar widgets
	openBtn, saveBtn           widget.Clickable
	undoBtn, redoBtn           widget.Clickable
	zoomInBtn, zoomOutBtn      widget.Clickable
	fitBtn, gridBtn, themeBtn  widget.Clickable
	selectToolBtn, wireToolBtn widget.Clickable
	placeBtn                   widget.Clickable
	placeMenu                  *menu.DropdownMenu

	openIcon, saveIcon      *widget.Icon
	undoIcon, redoIcon      *widget.Icon
	zoomInIcon, zoomOutIcon *widget.Icon
	fitIcon, gridOnIcon     *widget.Icon
	gridOffIcon             *widget.Icon

	// Pointer interaction state
	lastPointer f32.Point
	panning     bool
	dragging    bool
	dragMoved   geometry.Point
	bandActive  bool
	bandStart   f32.Point
	bandNow     f32.Point

	filepath string
}

// New creates an editor for the given window. path may be empty; a
// non-empty path is loaded before the first frame.
func New(w *app.Window, path string) *Editor {
	if w == nil {
		w = new(app.Window)
	}
	w.Option(app.Title("OpenTraceEdit"), app.Size(unit.Dp(1200), unit.Dp(800)))

	e := &Editor{
		window:     w,
		theme:      material.NewTheme(),
		gvTheme:    gvtheme.NewTheme("", nil, true),
		explorer:   explorer.NewExplorer(w),
		doc:        document.New(),
		vp:         viewport.New(1200, 800),
		sel:        selection.NewManager(),
		hist:       history.New(),
		lib:        library.Builtin(),
		colorTheme: ThemeLight,
	}
	e.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	e.colors = GetEditorColors(e.colorTheme)
	e.loadIcons()

	e.vp.GridSize = e.doc.GridSize
	e.vp.SnapEnabled = e.doc.SnapEnabled

	e.router = routing.NewRouter(routing.DefaultConfig(), e.doc, e.vp.Snap)
	e.router.OnFinished = func(w *document.Wire) {
		e.hist.Execute(history.NewAddItemCommand(e.doc, w))
	}

	e.hist.OnChanged = func(history.Info) {
		e.docChanged()
	}

	e.placeMenu = e.buildPlaceMenu()

	if path != "" {
		e.loadDocument(path)
	}
	return e
}

func (e *Editor) loadIcons() {
	load := func(data []byte) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			return nil
		}
		return icon
	}
	e.openIcon = load(icons.FileFolderOpen)
	e.saveIcon = load(icons.ContentSave)
	e.undoIcon = load(icons.ContentUndo)
	e.redoIcon = load(icons.ContentRedo)
	e.zoomInIcon = load(icons.ActionZoomIn)
	e.zoomOutIcon = load(icons.ActionZoomOut)
	e.fitIcon = load(icons.ActionAspectRatio)
	e.gridOnIcon = load(icons.ImageGridOn)
	e.gridOffIcon = load(icons.ImageGridOff)
}

func (e *Editor) buildPlaceMenu() *menu.DropdownMenu {
	names := e.lib.Names()
	if len(names) == 0 {
		return nil
	}
	opts := make([]menu.MenuOption, 0, len(names))
	for _, name := range names {
		symbol := name
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				e.tool = ToolPlace
				e.pendingSymbol = symbol
				return nil
			},
			Layout: func(gtx menu.C, th *gvtheme.Theme) menu.D {
				lbl := material.Body1(th.Theme, symbol)
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(260)
	return drop
}

// Run blocks processing window events until the window closes
func (e *Editor) Run() error {
	var ops op.Ops
	for {
		switch ev := e.window.Event().(type) {
		case app.DestroyEvent:
			return ev.Err

		case app.FrameEvent:
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(ev.Size),
				Metric:      ev.Metric,
				Now:         ev.Now,
				Source:      ev.Source,
			}
			e.vp.SetScreenSize(ev.Size.X, ev.Size.Y)
			e.handleInput(gtx)
			e.layout(gtx)
			ev.Frame(&ops)
		}
	}
}

// docChanged re-registers the item list with the selection manager
// (dropping stale selections and hit caches) and requests a frame
func (e *Editor) docChanged() {
	e.sel.SetItems(e.doc.Items())
	e.window.Invalidate()
}

func (e *Editor) worldPos(p f32.Point) geometry.Point {
	return e.vp.ScreenToWorld(float64(p.X), float64(p.Y))
}

func (e *Editor) handleInput(gtx layout.Context) {
	e.handleButtons(gtx)
	e.handleKeys(gtx)
	e.handlePointer(gtx)
}

func (e *Editor) handleButtons(gtx layout.Context) {
	if e.openBtn.Clicked(gtx) {
		e.openFilePicker()
	}
	if e.saveBtn.Clicked(gtx) {
		e.saveDocument()
	}
	if e.undoBtn.Clicked(gtx) {
		e.hist.Undo()
	}
	if e.redoBtn.Clicked(gtx) {
		e.hist.Redo()
	}
	if e.zoomInBtn.Clicked(gtx) {
		e.vp.ZoomIn(geometry.Point{X: e.vp.CenterX, Y: e.vp.CenterY})
		e.window.Invalidate()
	}
	if e.zoomOutBtn.Clicked(gtx) {
		e.vp.ZoomOut(geometry.Point{X: e.vp.CenterX, Y: e.vp.CenterY})
		e.window.Invalidate()
	}
	if e.fitBtn.Clicked(gtx) {
		e.fitToView()
	}
	if e.gridBtn.Clicked(gtx) {
		e.toggleSnap()
	}
	if e.themeBtn.Clicked(gtx) {
		e.toggleTheme()
	}
	if e.selectToolBtn.Clicked(gtx) {
		e.setTool(ToolSelect)
	}
	if e.wireToolBtn.Clicked(gtx) {
		e.setTool(ToolWire)
	}
	if e.placeMenu != nil && e.placeBtn.Clicked(gtx) {
		e.placeMenu.ToggleVisibility(gtx)
	}
}

// keyPress drains the event queue for one shortcut and reports whether
// it was pressed this frame
func keyPress(gtx layout.Context, filter key.Filter) bool {
	pressed := false
	for {
		ev, ok := gtx.Event(filter)
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			pressed = true
		}
	}
	return pressed
}

func (e *Editor) handleKeys(gtx layout.Context) {
	if keyPress(gtx, key.Filter{Name: "Z", Required: key.ModShortcut}) {
		e.hist.Undo()
	}
	if keyPress(gtx, key.Filter{Name: "Y", Required: key.ModShortcut}) {
		e.hist.Redo()
	}
	if keyPress(gtx, key.Filter{Name: "Z", Required: key.ModShortcut | key.ModShift}) {
		e.hist.Redo()
	}
	if keyPress(gtx, key.Filter{Name: "O", Required: key.ModShortcut}) {
		e.openFilePicker()
	}
	if keyPress(gtx, key.Filter{Name: "S", Required: key.ModShortcut}) {
		e.saveDocument()
	}
	if keyPress(gtx, key.Filter{Name: "A", Required: key.ModShortcut}) {
		e.sel.SelectAll()
		e.window.Invalidate()
	}
	if keyPress(gtx, key.Filter{Name: key.NameDeleteBackward}) ||
		keyPress(gtx, key.Filter{Name: key.NameDeleteForward}) {
		e.deleteSelection()
	}
	if keyPress(gtx, key.Filter{Name: "F"}) {
		e.fitToView()
	}
	if keyPress(gtx, key.Filter{Name: "G"}) {
		e.toggleSnap()
	}
	if keyPress(gtx, key.Filter{Name: "V"}) {
		e.setTool(ToolSelect)
	}
	if keyPress(gtx, key.Filter{Name: "W"}) {
		e.setTool(ToolWire)
	}
	if keyPress(gtx, key.Filter{Name: key.NameReturn}) {
		if e.router.Active() {
			e.router.Finish()
			e.window.Invalidate()
		}
	}
	if keyPress(gtx, key.Filter{Name: key.NameEscape}) {
		e.handleEscape()
	}
}

// handleEscape cancels the innermost activity: routing first, then the
// place tool, then the selection
func (e *Editor) handleEscape() {
	switch {
	case e.router.Active():
		e.router.Cancel()
	case e.tool != ToolSelect:
		e.setTool(ToolSelect)
	default:
		e.sel.ClearSelection()
	}
	e.window.Invalidate()
}

func (e *Editor) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch pe.Kind {
		case pointer.Press:
			e.lastPointer = pe.Position
			switch {
			case pe.Buttons == pointer.ButtonSecondary || pe.Buttons == pointer.ButtonTertiary:
				if e.router.Active() {
					e.router.Finish()
				} else {
					e.panning = true
				}
			case pe.Buttons == pointer.ButtonPrimary:
				e.primaryPress(pe)
			}

		case pointer.Move:
			e.pointerMove(pe)

		case pointer.Drag:
			e.pointerDrag(pe)

		case pointer.Release:
			e.pointerRelease(pe)

		case pointer.Scroll:
			focus := e.worldPos(pe.Position)
			if pe.Scroll.Y > 0 {
				e.vp.ZoomOut(focus)
			} else if pe.Scroll.Y < 0 {
				e.vp.ZoomIn(focus)
			}
			e.window.Invalidate()
		}
	}
}

func (e *Editor) primaryPress(pe pointer.Event) {
	world := e.worldPos(pe.Position)

	switch e.tool {
	case ToolWire:
		if !e.router.Active() {
			e.router.Start(world)
		} else {
			e.router.CommitWaypoint()
		}
		e.window.Invalidate()

	case ToolPlace:
		e.placeSymbol(e.vp.Snap(world))

	default:
		hits := e.sel.HitTest(world, selection.HitTopmost)
		if len(hits) > 0 {
			item := hits[0]
			if pe.Modifiers.Contain(key.ModShift) {
				e.sel.Toggle(item)
			} else if !e.sel.IsSelected(item.Base().ID()) {
				e.sel.ClearSelection()
				e.sel.Select(item)
			}
			e.dragging = true
			e.dragMoved = geometry.Point{}
		} else {
			if !pe.Modifiers.Contain(key.ModShift) {
				e.sel.ClearSelection()
			}
			e.bandActive = true
			e.bandStart = pe.Position
			e.bandNow = pe.Position
		}
		e.window.Invalidate()
	}
}

func (e *Editor) pointerMove(pe pointer.Event) {
	world := e.worldPos(pe.Position)
	e.lastPointer = pe.Position

	switch e.tool {
	case ToolWire:
		if e.router.Active() {
			e.router.UpdateCursor(world)
			e.window.Invalidate()
		}

	default:
		var top document.Item
		if hits := e.sel.HitTest(world, selection.HitTopmost); len(hits) > 0 {
			top = hits[0]
		}
		if e.sel.SetHovered(top) {
			e.window.Invalidate()
		}
	}
}

func (e *Editor) pointerDrag(pe pointer.Event) {
	dx := float64(pe.Position.X - e.lastPointer.X)
	dy := float64(pe.Position.Y - e.lastPointer.Y)

	switch {
	case e.panning:
		e.vp.PanScreen(dx, dy)

	case e.dragging:
		wdx := dx / e.vp.Scale()
		wdy := dy / e.vp.Scale()
		for _, item := range e.sel.Selected() {
			if !item.Base().Locked {
				item.Translate(wdx, wdy)
			}
		}
		e.dragMoved.X += wdx
		e.dragMoved.Y += wdy
		e.sel.InvalidateCache()

	case e.bandActive:
		e.bandNow = pe.Position

	case e.tool == ToolWire && e.router.Active():
		e.router.UpdateCursor(e.worldPos(pe.Position))
	}

	e.lastPointer = pe.Position
	e.window.Invalidate()
}

func (e *Editor) pointerRelease(pe pointer.Event) {
	switch {
	case e.panning:
		e.panning = false

	case e.dragging:
		e.dragging = false
		e.finishMove()

	case e.bandActive:
		e.bandActive = false
		e.finishRubberBand(pe)
	}
	e.window.Invalidate()
}

// finishMove rewinds the live drag and replays it through the history
// so the move lands on the undo stack exactly once
func (e *Editor) finishMove() {
	total := e.dragMoved
	e.dragMoved = geometry.Point{}
	if total.X == 0 && total.Y == 0 {
		return
	}

	// Snapped items land on the grid relative to their drag origin
	if e.vp.SnapEnabled {
		snapped := e.vp.Snap(total)
		fixX := snapped.X - total.X
		fixY := snapped.Y - total.Y
		if fixX != 0 || fixY != 0 {
			for _, item := range e.sel.Selected() {
				if !item.Base().Locked {
					item.Translate(fixX, fixY)
				}
			}
			total = snapped
		}
	}

	items := e.sel.Selected()
	for _, item := range items {
		if !item.Base().Locked {
			item.Translate(-total.X, -total.Y)
		}
	}
	if cmd := history.NewMoveItemsCommand(items, total.X, total.Y); cmd != nil {
		e.hist.Execute(cmd)
	} else {
		e.sel.InvalidateCache()
	}
}

func (e *Editor) finishRubberBand(pe pointer.Event) {
	a := e.worldPos(e.bandStart)
	b := e.worldPos(pe.Position)

	bounds := geometry.NewBoundingBox()
	bounds.Expand(a)
	bounds.Expand(b)
	if bounds.Width() == 0 && bounds.Height() == 0 {
		return
	}

	// Left-to-right selects contained items, right-to-left anything
	// touched, following the usual EDA convention
	mode := selection.RectContain
	if pe.Position.X < e.bandStart.X {
		mode = selection.RectIntersect
	}
	hits := e.sel.HitTestRect(bounds, mode)
	if pe.Modifiers.Contain(key.ModShift) {
		for _, item := range hits {
			e.sel.Select(item)
		}
	} else {
		e.sel.SelectMultiple(hits)
	}
}

func (e *Editor) placeSymbol(at geometry.Point) {
	comp, err := e.lib.Instantiate(e.pendingSymbol, at)
	if err != nil {
		log.Printf("place failed: %v", err)
		e.setTool(ToolSelect)
		return
	}
	e.hist.Execute(history.NewAddItemCommand(e.doc, comp))
}

func (e *Editor) deleteSelection() {
	items := e.sel.Selected()
	if len(items) == 0 {
		return
	}
	e.sel.ClearSelection()
	if cmd := history.NewDeleteItemsCommand(e.doc, items); cmd != nil {
		e.hist.Execute(cmd)
	}
}

func (e *Editor) setTool(t Tool) {
	if e.tool == ToolWire && t != ToolWire {
		e.router.Cancel()
	}
	e.tool = t
	if t != ToolPlace {
		e.pendingSymbol = ""
	}
	e.window.Invalidate()
}

func (e *Editor) toggleSnap() {
	e.vp.SnapEnabled = !e.vp.SnapEnabled
	e.doc.SnapEnabled = e.vp.SnapEnabled
	e.window.Invalidate()
}

func (e *Editor) toggleTheme() {
	if e.colorTheme == ThemeLight {
		e.colorTheme = ThemeDark
	} else {
		e.colorTheme = ThemeLight
	}
	e.colors = GetEditorColors(e.colorTheme)
	e.window.Invalidate()
}

func (e *Editor) fitToView() {
	bounds := e.doc.Bounds()
	e.vp.FitToBounds(bounds, 10)
	e.window.Invalidate()
}

func (e *Editor) openFilePicker() {
	go func() {
		file, err := e.explorer.ChooseFile("")
		if err != nil {
			if err != explorer.ErrUserDecline {
				log.Printf("file picker error: %v", err)
			}
			return
		}
		defer file.Close()

		if f, ok := file.(*os.File); ok {
			e.loadDocument(f.Name())
			e.window.Invalidate()
		}
	}()
}

func (e *Editor) loadDocument(path string) {
	doc, err := document.ParseFile(path)
	if err != nil {
		log.Printf("error loading %s: %v", path, err)
		return
	}

	e.doc = doc
	e.filepath = path
	e.hist = history.New()
	e.hist.OnChanged = func(history.Info) { e.docChanged() }
	e.vp.GridSize = doc.GridSize
	e.vp.SnapEnabled = doc.SnapEnabled
	e.router = routing.NewRouter(routing.DefaultConfig(), e.doc, e.vp.Snap)
	e.router.OnFinished = func(w *document.Wire) {
		e.hist.Execute(history.NewAddItemCommand(e.doc, w))
	}
	e.docChanged()
	e.fitToView()

	e.window.Option(app.Title("OpenTraceEdit - " + path))
	log.Printf("loaded %s: %d items", path, doc.Len())
}

func (e *Editor) saveDocument() {
	if e.filepath != "" {
		if err := document.SaveFile(e.filepath, e.doc); err != nil {
			log.Printf("error saving %s: %v", e.filepath, err)
		} else {
			log.Printf("saved %s", e.filepath)
		}
		return
	}

	go func() {
		file, err := e.explorer.CreateFile("untitled.otsch")
		if err != nil {
			if err != explorer.ErrUserDecline {
				log.Printf("save picker error: %v", err)
			}
			return
		}
		defer file.Close()

		if err := document.Save(file, e.doc); err != nil {
			log.Printf("error saving: %v", err)
			return
		}
		if f, ok := file.(*os.File); ok {
			e.filepath = f.Name()
			e.window.Option(app.Title("OpenTraceEdit - " + e.filepath))
		}
	}()
}

func (e *Editor) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, e.colors.Background)

	dims := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(e.layoutToolbar),
		layout.Flexed(1, e.layoutCanvas),
		layout.Rigid(e.layoutStatusBar),
	)

	if e.placeMenu != nil {
		e.placeMenu.Layout(gtx, e.gvTheme)
	}
	return dims
}

func (e *Editor) iconButton(btn *widget.Clickable, icon *widget.Icon, fallback string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		if icon == nil {
			return material.Button(e.theme, btn, fallback).Layout(gtx)
		}
		ib := material.IconButton(e.theme, btn, icon, fallback)
		ib.Size = unit.Dp(20)
		ib.Inset = layout.UniformInset(unit.Dp(6))
		return ib.Layout(gtx)
	}
}

func (e *Editor) layoutToolbar(gtx layout.Context) layout.Dimensions {
	gridIcon := e.gridOnIcon
	if !e.vp.SnapEnabled {
		gridIcon = e.gridOffIcon
	}

	toolButton := func(btn *widget.Clickable, label string, active bool) layout.Widget {
		return func(gtx layout.Context) layout.Dimensions {
			b := material.Button(e.theme, btn, label)
			if !active {
				b.Background = e.theme.Palette.Bg
				b.Color = e.theme.Palette.Fg
			}
			return b.Layout(gtx)
		}
	}

	spacer := layout.Rigid(layout.Spacer{Width: 6}.Layout)

	return layout.Inset{Top: 6, Bottom: 6, Left: 8, Right: 8}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(e.iconButton(&e.openBtn, e.openIcon, "Open")),
			spacer,
			layout.Rigid(e.iconButton(&e.saveBtn, e.saveIcon, "Save")),
			spacer,
			layout.Rigid(e.iconButton(&e.undoBtn, e.undoIcon, "Undo")),
			spacer,
			layout.Rigid(e.iconButton(&e.redoBtn, e.redoIcon, "Redo")),
			spacer,
			layout.Rigid(e.iconButton(&e.zoomInBtn, e.zoomInIcon, "Zoom In")),
			spacer,
			layout.Rigid(e.iconButton(&e.zoomOutBtn, e.zoomOutIcon, "Zoom Out")),
			spacer,
			layout.Rigid(e.iconButton(&e.fitBtn, e.fitIcon, "Fit")),
			spacer,
			layout.Rigid(e.iconButton(&e.gridBtn, gridIcon, "Grid")),
			spacer,
			layout.Rigid(toolButton(&e.selectToolBtn, "Select (V)", e.tool == ToolSelect)),
			spacer,
			layout.Rigid(toolButton(&e.wireToolBtn, "Wire (W)", e.tool == ToolWire)),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := "Place"
				if e.tool == ToolPlace && e.pendingSymbol != "" {
					label = "Place: " + e.pendingSymbol
				}
				return material.Button(e.theme, &e.placeBtn, label).Layout(gtx)
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(e.theme, &e.themeBtn, "Theme: "+e.colorTheme.String()).Layout(gtx)
			}),
		)
	})
}

func (e *Editor) layoutCanvas(gtx layout.Context) layout.Dimensions {
	RenderGrid(gtx, e.vp, e.colors)
	RenderDocument(gtx, e.vp, e.doc, e.colors)
	RenderRoutePreview(gtx, e.vp, e.router, e.colors)
	if e.bandActive {
		RenderRubberBand(gtx, e.bandStart, e.bandNow, e.colors)
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (e *Editor) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	snap := "off"
	if e.vp.SnapEnabled {
		snap = "on"
	}
	status := fmt.Sprintf("View: %.0f mm | Grid: %.2f mm (snap %s) | Tool: %s | Items: %d | Selected: %d",
		e.vp.VisibleWidth(), e.vp.GridSize, snap, e.tool, e.doc.Len(), len(e.sel.Selected()))
	if e.hist.CanUndo() {
		status += " | Undo: " + e.hist.UndoDescription()
	}

	return layout.Inset{Top: 4, Bottom: 4, Left: 8, Right: 8}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(e.theme, status)
		return lbl.Layout(gtx)
	})
}
