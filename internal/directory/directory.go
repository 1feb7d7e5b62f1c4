// Package directory enumerates the contact directories a list federates:
// the local directory, the local-invisible directory and any remote
// directories known to the registry.
package directory

import (
	"context"
	"fmt"
	"strings"
)

// Well-known directory ids.
const (
	Default        int64 = 0
	LocalInvisible int64 = 1
)

// IsRemote reports whether id names a remote directory.
func IsRemote(id int64) bool {
	return id != Default && id != LocalInvisible
}

// SearchMode selects which directories take part in a search.
type SearchMode int

const (
	SearchModeNone SearchMode = iota
	SearchModeDefault
	SearchModeContactShortcut
	SearchModeDataShortcut
)

func (m SearchMode) String() string {
	switch m {
	case SearchModeNone:
		return "none"
	case SearchModeDefault:
		return "default"
	case SearchModeContactShortcut:
		return "contact_shortcut"
	case SearchModeDataShortcut:
		return "data_shortcut"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode parses the config form of a search mode.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SearchModeNone, nil
	case "default":
		return SearchModeDefault, nil
	case "contact_shortcut":
		return SearchModeContactShortcut, nil
	case "data_shortcut":
		return SearchModeDataShortcut, nil
	}
	return SearchModeNone, fmt.Errorf("unknown directory search mode %q", s)
}

// PhotoSupport describes which photos a directory can serve.
type PhotoSupport int

const (
	PhotoSupportNone PhotoSupport = iota
	PhotoSupportThumbnailOnly
	PhotoSupportFullSizeOnly
	PhotoSupportFull
)

// SupportsThumbnails reports whether list thumbnails can be loaded.
func (p PhotoSupport) SupportsThumbnails() bool {
	return p == PhotoSupportThumbnailOnly || p == PhotoSupportFull
}

// ShortcutSupport describes whether shortcuts can be made to a directory's
// contacts or data items.
type ShortcutSupport int

const (
	ShortcutSupportNone ShortcutSupport = iota
	ShortcutSupportDataItemsOnly
	ShortcutSupportFull
)

// Record is one row of the directory registry.
type Record struct {
	ID              int64
	PackageName     string
	TypeLabel       string
	DisplayName     string
	PhotoSupport    PhotoSupport
	ShortcutSupport ShortcutSupport
}

// Entry is one row of an enumeration, as consumed by the list adapter.
type Entry struct {
	ID           int64
	Type         string
	DisplayName  string
	PhotoSupport PhotoSupport
}

// Predicate selects registry rows.
type Predicate struct {
	// ShortcutSupport lists the accepted shortcut support values; empty
	// accepts any.
	ShortcutSupport       []ShortcutSupport
	ExcludeLocalInvisible bool
}

// Match reports whether r satisfies the predicate.
func (p Predicate) Match(r Record) bool {
	if p.ExcludeLocalInvisible && r.ID == LocalInvisible {
		return false
	}
	if len(p.ShortcutSupport) == 0 {
		return true
	}
	for _, s := range p.ShortcutSupport {
		if r.ShortcutSupport == s {
			return true
		}
	}
	return false
}

// PredicateFor returns the registry predicate of a search mode.
func PredicateFor(mode SearchMode, localInvisibleEnabled bool) (Predicate, error) {
	var p Predicate
	switch mode {
	case SearchModeDefault:
	case SearchModeContactShortcut:
		p.ShortcutSupport = []ShortcutSupport{ShortcutSupportFull}
	case SearchModeDataShortcut:
		p.ShortcutSupport = []ShortcutSupport{ShortcutSupportFull, ShortcutSupportDataItemsOnly}
	default:
		return p, fmt.Errorf("unsupported directory search mode: %s", mode)
	}
	p.ExcludeLocalInvisible = !localInvisibleEnabled
	return p, nil
}

// Registry is the source of directory records.
type Registry interface {
	Directories(ctx context.Context, p Predicate) ([]Record, error)
	// Subscribe registers fn to be called whenever the directory set
	// changes. The returned function removes the subscription.
	Subscribe(fn func()) (unsubscribe func())
}
