package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-contacts/internal/config"
	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/history"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/provider"
	"github.com/pstuifzand/tui-contacts/internal/ui"
)

const (
	statusTimeout  = 3 * time.Second
	historyFile    = "commands.toml"
	historyEntries = 200
)

// App is the main application controller
type App struct {
	*contactList

	screen *ui.Screen

	list     *ui.ListView
	search   *ui.SearchBox
	command  *ui.CommandMode
	help     *ui.HelpScreen
	empty    *ui.EmptyNotice
	messages *ui.MessageLogger

	history *history.Manager

	keybindings []KeyBinding
	tasks       chan func()
	redraw      bool
	quit        bool
	closed      bool
	debugMode   bool
}

// NewApp wires the contact list of store to screen
func NewApp(cfg *config.Config, store *provider.Store, screen *ui.Screen) (*App, error) {
	a := &App{
		screen:   screen,
		tasks:    make(chan func(), 256),
		command:  ui.NewCommandMode(),
		help:     ui.NewHelpScreen(),
		empty:    ui.NewEmptyNotice(),
		messages: ui.NewMessageLogger(50),
		redraw:   true,
	}
	a.search = ui.NewSearchBox(a.onQueryChanged)

	l, err := newContactList(cfg, store, a.post)
	if err != nil {
		return nil, err
	}
	a.contactList = l

	a.list = ui.NewListView(l.view)
	a.list.SetPhotoSource(l.photos, l.adapter.PhotoScope())
	a.list.OnPhotoLoaded = func() { a.redraw = true }

	a.keybindings = a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	a.help.SetKeybindings(infos)
	return a, nil
}

// SetCommandHistory loads the command history from m and saves it there
// on Close.
func (a *App) SetCommandHistory(m *history.Manager) error {
	entries, err := m.Load(historyFile)
	if err != nil {
		return err
	}
	a.history = m
	a.command.SetHistory(history.New(entries, historyEntries))
	return nil
}

// post runs fn on the UI goroutine. It may be called from any goroutine,
// including the UI goroutine itself.
func (a *App) post(fn func()) {
	select {
	case a.tasks <- fn:
	default:
		go func() { a.tasks <- fn }()
	}
}

// Start begins loading the list
func (a *App) Start() {
	a.ctl.Start()
	a.SetStatus("Loading contacts")
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()
	a.Start()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			if event == nil {
				close(eventChan)
				return
			}
			eventChan <- event
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleRawEvent(ev)
		case fn := <-a.tasks:
			fn()
			a.redraw = true
		case <-ticker.C:
			// Status messages expire and loading indicators change
			// without an event.
			if a.redraw || a.ctl.IsLoading() {
				a.render()
			}
		}
	}
	return nil
}

// Close stops all loads
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.close()
	if a.history != nil {
		if err := a.history.Save(historyFile, a.command.History().Entries()); err != nil {
			logger.Warn("saving command history: %v", err)
			return err
		}
	}
	return nil
}

// render renders the current state to the screen
func (a *App) render() {
	a.redraw = false
	a.screen.Clear()
	width, height := a.screen.Size()
	if width <= 0 || height < 4 {
		a.screen.Show()
		return
	}

	a.renderHeader(width)
	a.search.SetStatus(a.searchStatus())
	a.search.Render(a.screen, 1)

	listTop, listHeight := 2, height-3
	if a.showEmptyNotice() {
		a.empty.SetSearch(a.adapter.IsSearchMode(), a.adapter.QueryString())
		a.empty.Render(a.screen, listTop, listHeight)
	} else {
		a.list.Render(a.screen, listTop, listHeight)
	}

	if a.command.IsActive() {
		a.command.Render(a.screen, height-1)
	} else {
		a.renderStatus(height - 1)
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderHeader(width int) {
	title := " tui-contacts"
	if f := a.ctl.Filter(); f != nil && f.Type != contactlist.FilterDefault {
		title += "  [" + f.String() + "]"
	}
	a.screen.DrawStringLimited(0, 0, title, width, a.screen.HeaderStyle())
}

func (a *App) showEmptyNotice() bool {
	if a.ctl.IsLoading() {
		return false
	}
	if a.adapter.IsSearchMode() {
		return a.adapter.Count() == 0 || a.adapter.AreAllPartitionsEmpty()
	}
	return a.adapter.IsEmpty()
}

// searchStatus summarizes the results for the search bar
func (a *App) searchStatus() string {
	if !a.adapter.IsSearchMode() {
		return ""
	}
	if a.ctl.IsLoadingDirectoryList() {
		return "searching directories..."
	}
	total := 0
	for i := 0; i < a.adapter.PartitionCount(); i++ {
		total += a.adapter.ResultCount(i)
	}
	if a.ctl.IsLoading() {
		return fmt.Sprintf("%d found, loading...", total)
	}
	if total == 1 {
		return "1 found"
	}
	return fmt.Sprintf("%d found", total)
}

func (a *App) renderStatus(y int) {
	mode := " LIST "
	if a.search.IsActive() {
		mode = " SEARCH "
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())
	if msg := a.messages.Last(); msg != nil && time.Since(msg.Timestamp) <= statusTimeout {
		style := a.screen.StatusMessageStyle()
		if msg.Error {
			style = a.screen.StatusErrorStyle()
		}
		a.screen.DrawStringLimited(x+1, y, msg.Text, a.screen.GetWidth()-x-1, style)
	} else if a.ctl.IsLoading() {
		a.screen.DrawString(x+1, y, "loading...", a.screen.StatusMessageStyle())
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	a.redraw = true
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	_, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.list.ScrollBy(-3)
	case ev.Buttons()&tcell.WheelDown != 0:
		a.list.ScrollBy(3)
	case ev.Buttons()&tcell.Button1 != 0:
		row := y - 2
		if a.list.ClickHeader(row) {
			return
		}
		if position := a.list.RowAt(row); position != -1 {
			a.list.SelectPosition(position)
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' {
			a.help.Toggle()
		}
		return
	}

	if a.search.IsActive() {
		switch ev.Key() {
		case tcell.KeyDown:
			a.list.SelectNext()
		case tcell.KeyUp:
			a.list.SelectPrev()
		default:
			a.search.HandleKey(ev)
		}
		return
	}

	a.handleKeypress(ev)
}

// handleKeypress handles a single keypress in list mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	switch ev.Key() {
	case tcell.KeyDown:
		a.list.SelectNext()
		return
	case tcell.KeyUp:
		a.list.SelectPrev()
		return
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		a.list.PageDown()
		return
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		a.list.PageUp()
		return
	case tcell.KeyHome:
		a.list.SelectFirst()
		return
	case tcell.KeyEnd:
		a.list.SelectLast()
		return
	case tcell.KeyEnter:
		a.showSelected()
		return
	case tcell.KeyEscape:
		if a.search.Query() != "" {
			a.search.SetQuery("")
		}
		return
	case tcell.KeyCtrlC:
		a.quit = true
		return
	}

	if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
		kb.Handler(a)
	}
}

// onQueryChanged reloads the list for a new query
func (a *App) onQueryChanged(query string) {
	a.ctl.SetQueryString(query)
	a.list.SelectFirst()
}

// showSelected reports the selected contact in the status line
func (a *App) showSelected() {
	position := a.list.Selected()
	e, ok := a.list.SelectedEntry()
	if !ok || e.Kind != contactlist.EntryContact {
		return
	}
	text := e.DisplayName
	if e.Detail != "" {
		text += "  " + e.Detail
	}
	if uri := a.adapter.ContactURI(position); uri != "" {
		text += "  " + uri
	}
	a.SetStatus(text)
}

// jumpSection selects the first row of the next or previous section
func (a *App) jumpSection(next bool) {
	sections := a.adapter.Sections()
	current := a.list.Selected()
	target := -1
	for s := range sections {
		p := a.adapter.ListPositionForSection(s)
		if p < 0 {
			continue
		}
		if next && p > current {
			target = p
			break
		}
		if !next && p < current {
			target = p
		}
	}
	if target >= 0 {
		a.list.SelectPosition(target)
	}
}

// setOrder switches the display or the sort order and reloads the list
func (a *App) setOrder(sort, alternative bool) {
	name := "primary"
	if alternative {
		name = "alternative"
	}
	if sort {
		order := contactlist.SortOrderPrimary
		if alternative {
			order = contactlist.SortOrderAlternative
		}
		a.adapter.SetSortOrder(order)
		a.SetStatus("Sort order: " + name)
	} else {
		order := contactlist.DisplayOrderPrimary
		if alternative {
			order = contactlist.DisplayOrderAlternative
		}
		a.adapter.SetDisplayOrder(order)
		a.SetStatus("Display order: " + name)
	}
	a.ctl.ReloadData()
}

// SetFilter changes the local contact filter
func (a *App) SetFilter(f *contactlist.Filter) {
	a.ctl.SetFilter(f)
	a.SetStatus("Filter: " + f.String())
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.quit = true
	case "help":
		a.help.Toggle()
	case "reload":
		a.ctl.ReloadData()
	case "search":
		a.search.SetQuery(strings.Join(parts[1:], " "))
	case "filter":
		f, err := parseFilter(parts[1:])
		if err != nil {
			a.SetError(err.Error())
			return
		}
		a.SetFilter(f)
	case "order", "sort":
		if len(parts) != 2 || (parts[1] != "primary" && parts[1] != "alternative") {
			a.SetError("Usage: " + parts[0] + " primary|alternative")
			return
		}
		a.setOrder(parts[0] == "sort", parts[1] == "alternative")
	case "directories":
		a.listDirectories()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetError("Unknown command: " + parts[0])
	}
}

func (a *App) listDirectories() {
	names := make([]string, 0, a.adapter.PartitionCount())
	for i := 0; i < a.adapter.PartitionCount(); i++ {
		d := a.adapter.Partition(i).Dir
		if d == nil {
			continue
		}
		names = append(names, fmt.Sprintf("%d:%s(%s)", d.ID, d.DirectoryType, d.Status))
	}
	a.SetStatus("Directories: " + strings.Join(names, " "))
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.messages.AddMessage(msg)
	a.redraw = true
}

// SetError shows an error in the status line
func (a *App) SetError(msg string) {
	logger.Warn("%s", msg)
	a.messages.AddError(msg)
	a.redraw = true
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
