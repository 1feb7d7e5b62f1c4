package app

import (
	"github.com/pstuifzand/tui-contacts/internal/contactlist"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			Handler: func(app *App) {
				app.list.SelectNext()
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			Handler: func(app *App) {
				app.list.SelectPrev()
			},
		},
		{
			Key:         'g',
			Description: "Go to first contact",
			Handler: func(app *App) {
				app.list.SelectFirst()
			},
		},
		{
			Key:         'G',
			Description: "Go to last contact",
			Handler: func(app *App) {
				app.list.SelectLast()
			},
		},
		{
			Key:         ']',
			Description: "Next section",
			Handler: func(app *App) {
				app.jumpSection(true)
			},
		},
		{
			Key:         '[',
			Description: "Previous section",
			Handler: func(app *App) {
				app.jumpSection(false)
			},
		},
		{
			Key:         '/',
			Description: "Search",
			Handler: func(app *App) {
				app.search.Start()
			},
		},
		{
			Key:         's',
			Description: "Toggle starred contacts",
			Handler: func(app *App) {
				if f := app.ctl.Filter(); f != nil && f.Type == contactlist.FilterStarred {
					app.SetFilter(contactlist.NewFilter(contactlist.FilterDefault))
				} else {
					app.SetFilter(contactlist.NewFilter(contactlist.FilterStarred))
				}
			},
		},
		{
			Key:         'o',
			Description: "Toggle display order",
			Handler: func(app *App) {
				app.setOrder(false, app.adapter.DisplayOrder() == contactlist.DisplayOrderPrimary)
			},
		},
		{
			Key:         'O',
			Description: "Toggle sort order",
			Handler: func(app *App) {
				app.setOrder(true, app.adapter.SortOrder() == contactlist.SortOrderPrimary)
			},
		},
		{
			Key:         'r',
			Description: "Reload",
			Handler: func(app *App) {
				app.ctl.ReloadData()
				app.SetStatus("Reloading")
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}
