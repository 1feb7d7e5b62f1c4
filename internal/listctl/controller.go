// Package listctl drives the loading of a contact list: it enumerates
// directories, starts per-partition loads, debounces remote searches and
// applies finished loads to the list adapter on the UI goroutine.
package listctl

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/loader"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// DefaultDirectorySearchDelay is how long a remote directory search waits
// for the user to stop typing.
const DefaultDirectorySearchDelay = 300 * time.Millisecond

// Adapter is the list model the controller drives. Both
// *contactlist.Adapter and *contactlist.PhoneAdapter satisfy it.
type Adapter interface {
	PartitionCount() int
	Partition(i int) *contactlist.Partition
	ChangeDirectories(entries []directory.Entry) error
	ChangeCursor(i int, rs resultset.ResultSet)
	LoadRequest(directoryID int64) contactlist.LoadRequest

	OnDataReload()
	ClearPartitions()
	RemoveDirectoriesAfterDefault()
	ConfigureDefaultPartition(showIfEmpty, hasHeader bool)
	IsLoading() bool

	IsSearchMode() bool
	SetSearchMode(flag bool)
	QueryString() string
	SetQueryString(query string)
	DirectorySearchMode() directory.SearchMode
	SetSectionHeaderDisplayEnabled(flag bool)
	Filter() *contactlist.Filter
	SetFilter(f *contactlist.Filter)
}

var (
	_ Adapter = (*contactlist.Adapter)(nil)
	_ Adapter = (*contactlist.PhoneAdapter)(nil)
)

// Source runs the query of one directory partition.
type Source interface {
	Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error)
}

// Options configure a Controller.
type Options struct {
	Workers              int
	DirectorySearchDelay time.Duration
	// ShowEmptyListForEmptyQuery keeps search mode on for an empty query.
	ShowEmptyListForEmptyQuery bool
	// DisableSectionHeaders keeps section headers off outside search mode.
	DisableSectionHeaders bool
}

// Controller owns the loading state of one list. All methods except the
// constructor must be called on the UI goroutine; post must run its
// argument there.
type Controller struct {
	adapter    Adapter
	source     Source
	enumerator *directory.Enumerator
	post       func(func())

	pool      *loader.Pool
	debouncer *loader.Debouncer

	directoryListStatus    contactlist.Status
	loadPriorityDirsOnly   bool
	forceLoad              bool
	started                bool
	failed                 map[*contactlist.Partition]struct{}
	showEmptyForEmptyQuery bool
	sectionHeaders         bool
}

// New creates a controller. Loads run on a worker pool; their results
// come back through post.
func New(adapter Adapter, source Source, enumerator *directory.Enumerator, post func(func()), opts Options) *Controller {
	delay := opts.DirectorySearchDelay
	if delay <= 0 {
		delay = DefaultDirectorySearchDelay
	}
	c := &Controller{
		adapter:                adapter,
		source:                 source,
		enumerator:             enumerator,
		post:                   post,
		failed:                 make(map[*contactlist.Partition]struct{}),
		showEmptyForEmptyQuery: opts.ShowEmptyListForEmptyQuery,
		sectionHeaders:         !opts.DisableSectionHeaders,
	}
	adapter.SetSectionHeaderDisplayEnabled(c.sectionHeaders && !adapter.IsSearchMode())
	c.pool = loader.NewPool(opts.Workers, func(r loader.Result) {
		post(func() { c.HandleResult(r) })
	})
	c.debouncer = loader.NewDebouncer(delay, post)
	return c
}

// Start begins loading the priority directories.
func (c *Controller) Start() {
	c.started = true
	c.directoryListStatus = contactlist.StatusNotLoaded
	c.loadPriorityDirsOnly = true
	c.forceLoad = false
	c.startLoading()
}

// Close stops every load and timer and drops the adapter's result sets.
func (c *Controller) Close() {
	c.started = false
	c.debouncer.CancelAll()
	c.enumerator.Stop()
	c.pool.Close()
	c.adapter.ClearPartitions()
}

func (c *Controller) startLoading() {
	if !c.started {
		return
	}
	for i := 0; i < c.adapter.PartitionCount(); i++ {
		p := c.adapter.Partition(i)
		if p.Dir == nil {
			continue
		}
		if p.Dir.Status == contactlist.StatusNotLoaded && (p.Dir.Priority || !c.loadPriorityDirsOnly) {
			c.startLoadingDirectoryPartition(i, p)
		}
	}
	// Non-priority directories start on the next round.
	c.loadPriorityDirsOnly = false
}

func (c *Controller) startLoadingDirectoryPartition(i int, p *contactlist.Partition) {
	p.Dir.Status = contactlist.StatusLoading
	delete(c.failed, p)
	if c.forceLoad && p.Dir.ID != directory.Default {
		c.debouncer.Schedule(i, p, func() { c.loadDirectoryPartition(p) })
		return
	}
	c.loadDirectoryPartition(p)
}

// loadDirectoryPartition loads p at the index it has now, which may differ
// from the one it had when the load was scheduled.
func (c *Controller) loadDirectoryPartition(p *contactlist.Partition) {
	i := c.indexOf(p)
	if i < 0 {
		logger.Debug("directory %d was removed before its load started", p.Dir.ID)
		return
	}
	req := c.adapter.LoadRequest(p.Dir.ID)
	gen := c.pool.Start(i, p.Dir.ID, func(ctx context.Context) (resultset.ResultSet, error) {
		return c.source.Query(ctx, req)
	})
	logger.Debug("loading directory %d into partition %d (generation %d)", p.Dir.ID, i, gen)
}

// HandleResult applies a finished load. Superseded loads, loads for
// partitions that no longer exist and loads whose slot now holds another
// directory are closed and dropped.
func (c *Controller) HandleResult(r loader.Result) {
	if !c.pool.IsCurrent(r.Slot, r.Generation) {
		logger.Debug("dropping stale load for partition %d (generation %d)", r.Slot, r.Generation)
		closeResult(r)
		return
	}
	if r.Slot >= c.adapter.PartitionCount() {
		closeResult(r)
		return
	}
	if c.adapter.Partition(r.Slot).DirectoryID() != r.Tag {
		logger.Debug("partition %d no longer shows directory %d", r.Slot, r.Tag)
		closeResult(r)
		return
	}

	if r.Err != nil {
		err := cerrors.NewLoadError("directory query failed", r.Err)
		logger.Error("partition %d, directory %d: %v", r.Slot, r.Tag, err)
		c.failed[c.adapter.Partition(r.Slot)] = struct{}{}
		closeResult(r)
	} else {
		c.adapter.ChangeCursor(r.Slot, r.ResultSet)
	}
	c.afterPartitionLoaded()
}

func (c *Controller) afterPartitionLoaded() {
	if !c.adapter.IsSearchMode() {
		c.directoryListStatus = contactlist.StatusNotLoaded
		c.enumerator.Stop()
		return
	}
	mode := c.adapter.DirectorySearchMode()
	if mode == directory.SearchModeNone {
		return
	}
	if c.directoryListStatus == contactlist.StatusNotLoaded {
		c.directoryListStatus = contactlist.StatusLoading
		c.enumerator.SetMode(mode)
		c.enumerator.Start(c.post, c.onDirectoriesLoaded)
		return
	}
	c.startLoading()
}

func (c *Controller) onDirectoriesLoaded(entries []directory.Entry, err error) {
	if !c.started {
		return
	}
	if err != nil {
		logger.Error("directory enumeration failed: %v", err)
		return
	}
	c.directoryListStatus = contactlist.StatusLoaded
	loading := c.loadingPartitions()
	if err := c.adapter.ChangeDirectories(entries); err != nil && !stderrors.Is(err, cerrors.ErrEmptyDirectoryList) {
		logger.Error("changing directories: %v", err)
	}
	c.restartMovedLoads(loading)
	c.startLoading()
}

// loadingPartitions maps every loading directory partition to its index.
func (c *Controller) loadingPartitions() map[*contactlist.Partition]int {
	out := make(map[*contactlist.Partition]int)
	for i := 0; i < c.adapter.PartitionCount(); i++ {
		if p := c.adapter.Partition(i); p.Dir != nil && p.Dir.IsLoading() {
			out[p] = i
		}
	}
	return out
}

// restartMovedLoads cancels the loads of partitions whose index changed
// and marks them not loaded, so the next startLoading queries them at
// their new index.
func (c *Controller) restartMovedLoads(loading map[*contactlist.Partition]int) {
	for p, old := range loading {
		now := c.indexOf(p)
		if now == old {
			continue
		}
		c.pool.Cancel(old)
		c.debouncer.Cancel(p)
		if now >= 0 {
			logger.Debug("directory %d moved from partition %d to %d; reloading", p.Dir.ID, old, now)
			p.Dir.Status = contactlist.StatusNotLoaded
		}
	}
}

func (c *Controller) indexOf(p *contactlist.Partition) int {
	for i := 0; i < c.adapter.PartitionCount(); i++ {
		if c.adapter.Partition(i) == p {
			return i
		}
	}
	return -1
}

// ReloadData cancels pending delayed searches and running loads, then
// reloads every directory, priority directories first.
func (c *Controller) ReloadData() {
	c.debouncer.CancelAll()
	c.pool.CancelAll()
	c.adapter.OnDataReload()
	c.loadPriorityDirsOnly = true
	c.forceLoad = true
	c.startLoading()
}

// SetQueryString switches search mode as needed and reloads.
func (c *Controller) SetQueryString(query string) {
	if query == c.adapter.QueryString() {
		return
	}
	c.setSearchMode(query != "" || c.showEmptyForEmptyQuery)
	c.adapter.SetQueryString(query)
	c.ReloadData()
}

func (c *Controller) setSearchMode(flag bool) {
	if c.adapter.IsSearchMode() == flag {
		return
	}
	c.adapter.SetSectionHeaderDisplayEnabled(!flag && c.sectionHeaders)
	if !flag {
		c.directoryListStatus = contactlist.StatusNotLoaded
		c.enumerator.Stop()
	}
	c.adapter.SetSearchMode(flag)
	c.adapter.ClearPartitions()
	if !flag {
		// Remote directories only live while searching.
		c.adapter.RemoveDirectoriesAfterDefault()
	}
	c.adapter.ConfigureDefaultPartition(false, flag)
}

// SetFilter changes the contact filter of the default directory and
// reloads.
func (c *Controller) SetFilter(f *contactlist.Filter) {
	c.adapter.SetFilter(f)
	c.ReloadData()
}

func (c *Controller) Filter() *contactlist.Filter {
	return c.adapter.Filter()
}

// IsLoading reports whether any partition or the directory list is still
// loading.
func (c *Controller) IsLoading() bool {
	return c.adapter.IsLoading() || c.IsLoadingDirectoryList()
}

// Pending reports whether a load is still expected to finish. Partitions
// whose load failed keep their loading status but are not pending.
func (c *Controller) Pending() bool {
	if c.IsLoadingDirectoryList() {
		return true
	}
	for i := 0; i < c.adapter.PartitionCount(); i++ {
		p := c.adapter.Partition(i)
		if p.Dir == nil || !p.Dir.IsLoading() {
			continue
		}
		if _, ok := c.failed[p]; !ok {
			return true
		}
	}
	return false
}

// IsLoadingDirectoryList reports whether the directory list of a search
// is still being enumerated.
func (c *Controller) IsLoadingDirectoryList() bool {
	return c.adapter.IsSearchMode() &&
		c.adapter.DirectorySearchMode() != directory.SearchModeNone &&
		c.directoryListStatus != contactlist.StatusLoaded
}

// DirectoryListStatus returns the status of the directory enumeration.
func (c *Controller) DirectoryListStatus() contactlist.Status {
	return c.directoryListStatus
}

func closeResult(r loader.Result) {
	if r.ResultSet != nil {
		if err := r.ResultSet.Close(); err != nil {
			logger.Warn("closing result set of partition %d: %v", r.Slot, err)
		}
	}
}
