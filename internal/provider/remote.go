package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/time/rate"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/model"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// Backend fetches the candidate contacts of a remote directory.
type Backend func(ctx context.Context) ([]*model.Contact, error)

// RemoteDirectory answers searches against a slow contact source. Queries
// are throttled and matched fuzzily against the contact names.
type RemoteDirectory struct {
	id      int64
	backend Backend
	limiter *rate.Limiter
}

// NewRemoteDirectory creates a remote directory allowing perSecond queries
// with the given burst.
func NewRemoteDirectory(id int64, backend Backend, perSecond float64, burst int) *RemoteDirectory {
	if burst <= 0 {
		burst = 1
	}
	return &RemoteDirectory{
		id:      id,
		backend: backend,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// StaticBackend serves a fixed list of contacts.
func StaticBackend(contacts []*model.Contact) Backend {
	return func(ctx context.Context) ([]*model.Contact, error) {
		return contacts, nil
	}
}

type match struct {
	contact *model.Contact
	rank    int
}

// Query waits for the rate limiter, then returns the contacts matching
// the query, best matches first. Without a query the directory returns
// nothing.
func (d *RemoteDirectory) Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, cerrors.Wrap(cerrors.CategoryLoad, cerrors.CodeCanceled, "remote query canceled", err)
		}
		return nil, cerrors.NewStorageError(cerrors.CodeThrottled, fmt.Sprintf("directory %d throttled", d.id), err)
	}

	columns := contactColumns
	if req.PhoneNumbers {
		columns = phoneColumns
	}
	m := resultset.NewMatrix(columns...)
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return m, nil
	}

	contacts, err := d.backend(ctx)
	if err != nil {
		return nil, cerrors.NewLoadError(fmt.Sprintf("remote directory %d", d.id), err)
	}

	var matches []match
	for _, c := range contacts {
		rank := bestRank(query, c)
		if rank < 0 {
			continue
		}
		matches = append(matches, match{contact: c, rank: rank})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return strings.ToLower(matches[i].contact.DisplayName) < strings.ToLower(matches[j].contact.DisplayName)
	})
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	rowID := int64(1)
	for i, mt := range matches {
		c := mt.contact
		contactID := int64(i + 1)
		if !req.PhoneNumbers {
			m.AddRow(contactID, c.LookupKey, c.DisplayName, c.AlternativeName(), int64(0), c.PhotoURI, boolInt(c.Starred), 0)
			continue
		}
		for _, p := range c.Phones {
			if len(p.Number) >= maxPhoneNumberLength {
				continue
			}
			m.AddRow(rowID, contactID, c.LookupKey, c.DisplayName, c.AlternativeName(), int64(0), c.PhotoURI,
				boolInt(c.Starred), 0, p.Number, p.Label)
			rowID++
		}
	}
	logger.Debug("remote directory %d: %d matches for %q", d.id, len(matches), query)
	return m, nil
}

// bestRank is the smallest fuzzy distance of query to any name of c, or
// -1 when nothing matches. Names with a word starting with the query rank
// first.
func bestRank(query string, c *model.Contact) int {
	best := -1
	for _, name := range []string{c.DisplayName, c.AlternativeName()} {
		if hasWordPrefix(name, query) {
			return 0
		}
		r := fuzzy.RankMatchNormalizedFold(query, name)
		if r >= 0 && (best < 0 || r+1 < best) {
			best = r + 1
		}
	}
	return best
}

func hasWordPrefix(name, prefix string) bool {
	prefix = strings.ToLower(prefix)
	for _, word := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}
