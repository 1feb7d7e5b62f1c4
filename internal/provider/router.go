package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/model"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// Source answers content queries.
type Source interface {
	Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error)
}

// Router sends each query to the source of its directory: extended
// directories by content URI, remote directories by id and everything else
// to the local store.
type Router struct {
	local Source

	mu      sync.RWMutex
	remotes map[int64]Source
	uris    map[string]Source
}

func NewRouter(local Source) *Router {
	return &Router{
		local:   local,
		remotes: make(map[int64]Source),
		uris:    make(map[string]Source),
	}
}

// RegisterRemote serves directory id from src.
func (r *Router) RegisterRemote(id int64, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remotes[id] = src
}

// UnregisterRemote removes the source of directory id.
func (r *Router) UnregisterRemote(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.remotes, id)
}

// RegisterContentURI serves the extended directory at uri from src.
func (r *Router) RegisterContentURI(uri string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uris[uri] = src
}

func (r *Router) Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error) {
	src, err := r.sourceFor(req)
	if err != nil {
		return nil, err
	}
	return src.Query(ctx, req)
}

func (r *Router) sourceFor(req contactlist.LoadRequest) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if req.ContentURI != "" {
		if src, ok := r.uris[req.ContentURI]; ok {
			return src, nil
		}
		return nil, cerrors.New(cerrors.CategoryDirectory, cerrors.CodeUnknownDirectory,
			fmt.Sprintf("no source for %s", req.ContentURI))
	}
	if !directory.IsRemote(req.DirectoryID) {
		return r.local, nil
	}
	if src, ok := r.remotes[req.DirectoryID]; ok {
		return src, nil
	}
	return nil, cerrors.New(cerrors.CategoryDirectory, cerrors.CodeUnknownDirectory,
		fmt.Sprintf("no source for directory %d", req.DirectoryID))
}

// AttachRemoteDirectories registers a throttled remote directory for every
// remote directory in the store, serving the contacts stored for it.
func (r *Router) AttachRemoteDirectories(ctx context.Context, s *Store, perSecond float64, burst int) error {
	records, err := s.Directories(ctx, directory.Predicate{})
	if err != nil {
		return err
	}
	for _, rec := range records {
		if !directory.IsRemote(rec.ID) {
			continue
		}
		id := rec.ID
		backend := func(ctx context.Context) ([]*model.Contact, error) {
			return s.DirectoryContacts(ctx, id)
		}
		r.RegisterRemote(id, NewRemoteDirectory(id, backend, perSecond, burst))
	}
	return nil
}

// FilteredSource serves an extended directory from the local default
// directory restricted by filter.
func FilteredSource(local Source, filter *contactlist.Filter) Source {
	return filteredSource{local: local, filter: filter}
}

type filteredSource struct {
	local  Source
	filter *contactlist.Filter
}

func (s filteredSource) Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error) {
	req.DirectoryID = directory.Default
	req.ContentURI = ""
	req.Filter = s.filter
	req.IncludeProfile = false
	req.IncludeIndex = false
	return s.local.Query(ctx, req)
}
