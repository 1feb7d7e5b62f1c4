package app

import (
	"context"
	"fmt"

	"github.com/pstuifzand/tui-contacts/internal/config"
	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/listctl"
	"github.com/pstuifzand/tui-contacts/internal/photo"
	"github.com/pstuifzand/tui-contacts/internal/provider"
)

// FavoritesURI addresses the extended directory of starred numbers shown
// in phone number lists.
const FavoritesURI = "content://tui-contacts/favorites"

const remoteBurst = 2

// contactList is the list model with everything that loads it.
type contactList struct {
	router     *provider.Router
	enumerator *directory.Enumerator
	photos     *photo.Manager

	adapter *contactlist.Adapter
	phones  *contactlist.PhoneAdapter
	view    contactlist.View
	ctl     *listctl.Controller
}

// newContactList wires a list over store. post must run its argument on
// the goroutine that owns the list.
func newContactList(cfg *config.Config, store *provider.Store, post func(func())) (*contactList, error) {
	l := &contactList{router: provider.NewRouter(store)}
	if err := l.router.AttachRemoteDirectories(context.Background(), store, cfg.List.RemoteQueriesPerSec, remoteBurst); err != nil {
		return nil, fmt.Errorf("failed to attach remote directories: %w", err)
	}

	mode := cfg.DirectorySearchMode()
	l.enumerator = directory.NewEnumerator(store, mode)
	l.enumerator.SetLocalInvisibleDirectoryEnabled(cfg.List.LocalInvisible)

	var model listctl.Adapter
	if cfg.List.PhoneNumbers {
		l.phones = contactlist.NewPhoneAdapter()
		l.phones.SetExtendedDirectories([]contactlist.ExtendedDirectory{{
			Label:       "Favorites",
			DisplayName: "Starred numbers",
			ContentURI:  FavoritesURI,
		}})
		l.router.RegisterContentURI(FavoritesURI,
			provider.FilteredSource(store, contactlist.NewFilter(contactlist.FilterStarred)))
		l.adapter = l.phones.Adapter
		model, l.view = l.phones, l.phones
	} else {
		l.adapter = contactlist.NewAdapter()
		model, l.view = l.adapter, l.adapter
	}

	l.adapter.SetDirectorySearchMode(mode)
	l.adapter.SetDirectoryResultLimit(cfg.List.DirectoryResultLimit)
	l.adapter.SetDisplayOrder(cfg.DisplayOrder())
	l.adapter.SetSortOrder(cfg.SortOrder())
	l.adapter.SetIncludeProfile(cfg.List.IncludeProfile)
	l.adapter.SetDisplayPhotos(cfg.List.DisplayPhotos)
	l.adapter.SetPinnedPartitionHeadersEnabled(cfg.List.PinnedPartitionHeader)
	l.adapter.ConfigureDefaultPartition(false, false)

	l.photos = photo.NewManager(cfg.List.Workers, post)
	l.adapter.SetPhotoLoader(l.photos, contactlist.DefaultPhotoScope)

	l.ctl = listctl.New(model, l.router, l.enumerator, post, listctl.Options{
		Workers:               cfg.List.Workers,
		DirectorySearchDelay:  cfg.DirectorySearchDelay(),
		DisableSectionHeaders: !cfg.List.SectionHeaders,
	})
	return l, nil
}

func (l *contactList) close() {
	l.ctl.Close()
	l.photos.CancelPendingRequests(l.adapter.PhotoScope())
}

// Listing is a loaded list, row by row.
type Listing struct {
	Entries     []contactlist.Entry
	Directories []contactlist.DirectoryPartition
}

// Snapshot loads the list for query without a screen. Directory searches
// wait for every directory to answer or for ctx to end. Directories whose
// query failed are listed without rows.
func Snapshot(ctx context.Context, cfg *config.Config, store *provider.Store, query string) (*Listing, error) {
	tasks := make(chan func(), 64)
	post := func(fn func()) {
		select {
		case tasks <- fn:
		default:
			go func() { tasks <- fn }()
		}
	}

	l, err := newContactList(cfg, store, post)
	if err != nil {
		return nil, err
	}
	defer l.close()

	l.ctl.Start()
	l.ctl.SetQueryString(query)
	for l.ctl.Pending() {
		select {
		case fn := <-tasks:
			fn()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	listing := &Listing{}
	for i := 0; i < l.adapter.PartitionCount(); i++ {
		if d := l.adapter.Partition(i).Dir; d != nil {
			listing.Directories = append(listing.Directories, *d)
		}
	}
	for position := 0; position < l.view.Count(); position++ {
		listing.Entries = append(listing.Entries, l.view.EntryAt(position))
	}
	return listing, nil
}
