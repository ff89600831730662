// Package controller implements the list screens' behavior: paginated
// fetching, filtering, mutations behind role checks, and PDF export of the
// current view. A ListController owns the state of exactly one entity
// listing within one operator session.
package controller

import (
	"context"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/export"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/logger"
	"pannel_backoffice/internal/resources"
)

// DefaultPageSize is the page length of every listing.
const DefaultPageSize = 10

// Mode selects where pagination happens.
type Mode int

const (
	// ModeServer pages through the backend's list envelope.
	ModeServer Mode = iota
	// ModeClient fetches the whole collection once and pages locally.
	// Used for the endpoints that answer with a bare array.
	ModeClient
)

// Messages are the per-entity notification texts.
type Messages struct {
	Created    string
	Updated    string
	Deleted    string
	LoadFailed string
	ConfirmDel string
}

// ListConfig wires a ListController to one entity.
type ListConfig[T any] struct {
	Name     string // entity label, used in logs
	PageSize int
	Mode     Mode

	Fetch    func(ctx context.Context, page int, search string) (*resources.ListResult[T], error)
	FetchAll func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, payload any) error
	Update   func(ctx context.Context, id string, payload any) error
	Delete   func(ctx context.Context, id string) error

	// Match filters items locally in ModeClient.
	Match func(item T, query string) bool
	// Less orders fetched items before display, regardless of how the
	// backend returned them; nil keeps the fetched order.
	Less func(a, b T) bool

	// MutateAction is the permission the role table must grant before any
	// create, update or delete goes out.
	MutateAction Action

	Messages Messages
	Export   *export.TableSpec[T]
}

// Snapshot is a consistent read of a controller's state.
type Snapshot[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Count      int
	TotalPages int
	Next       string
	Previous   string
	Search     string
	Loading    bool
}

// ListController drives one entity listing. All methods are safe for
// concurrent use; overlapping refreshes resolve last-issued-wins.
type ListController[T any] struct {
	cfg     ListConfig[T]
	role    func() string
	notify  Notifier
	confirm Confirmer
	log     *logrus.Entry

	mu         sync.Mutex
	seq        uint64
	closed     bool
	page       int
	search     string
	items      []T
	filtered   []T // ModeClient only: full filtered collection
	count      int
	totalPages int
	next       string
	prev       string
	loading    bool
}

// NewList builds a controller. role reports the caller's role at call
// time, so a session refresh changes what the controller permits without
// rebuilding it.
func NewList[T any](cfg ListConfig[T], role func() string, notify Notifier, confirm Confirmer) *ListController[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MutateAction == "" {
		cfg.MutateAction = ActionCreate
	}
	if cfg.Messages.LoadFailed == "" {
		cfg.Messages.LoadFailed = common.MsgLoadFailed
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	if confirm == nil {
		confirm = StaticConfirmer(false)
	}
	return &ListController[T]{
		cfg:        cfg,
		role:       role,
		notify:     notify,
		confirm:    confirm,
		log:        logger.GetAppLogger().WithField("entity", cfg.Name),
		page:       1,
		totalPages: 1,
	}
}

// Snapshot returns a copy of the current state.
func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:      items,
		Page:       c.page,
		PageSize:   c.cfg.PageSize,
		Count:      c.count,
		TotalPages: c.totalPages,
		Next:       c.next,
		Previous:   c.prev,
		Search:     c.search,
		Loading:    c.loading,
	}
}

// Close detaches the controller from its session. Results of in-flight
// refreshes are discarded after Close.
func (c *ListController[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Refresh re-fetches the current page. When refreshes overlap, only the
// most recently issued one may write state; stale results are dropped
// whole. A failed refresh leaves the previously displayed items in place.
func (c *ListController[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	id := c.seq
	c.loading = true
	page, search := c.page, c.search
	c.mu.Unlock()

	items, filtered, count, next, prev, err := c.fetchPage(ctx, page, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || id != c.seq {
		// a newer refresh owns the state now
		return
	}
	c.loading = false
	if err != nil {
		c.log.WithError(err).Warn("refresh failed")
		c.notify.Error(c.cfg.Messages.LoadFailed)
		return
	}
	c.items = items
	c.filtered = filtered
	c.count = count
	c.next = next
	c.prev = prev
	c.totalPages = pageCount(count, c.cfg.PageSize)
}

func pageCount(count, pageSize int) int {
	pages := int(math.Ceil(float64(count) / float64(pageSize)))
	if pages < 1 {
		return 1
	}
	return pages
}

// fetchPage loads one page of the listing. In ModeClient it also returns
// the full filtered collection, which the export renders.
func (c *ListController[T]) fetchPage(ctx context.Context, page int, search string) ([]T, []T, int, string, string, error) {
	if c.cfg.Mode == ModeClient {
		all, err := c.cfg.FetchAll(ctx)
		if err != nil {
			return nil, nil, 0, "", "", err
		}
		filtered := all
		if search != "" && c.cfg.Match != nil {
			filtered = nil
			for _, item := range all {
				if c.cfg.Match(item, search) {
					filtered = append(filtered, item)
				}
			}
		}
		if c.cfg.Less != nil {
			sort.SliceStable(filtered, func(i, j int) bool { return c.cfg.Less(filtered[i], filtered[j]) })
		}
		count := len(filtered)
		start := (page - 1) * c.cfg.PageSize
		if start > count {
			start = count
		}
		end := start + c.cfg.PageSize
		if end > count {
			end = count
		}
		return filtered[start:end], filtered, count, "", "", nil
	}

	res, err := c.cfg.Fetch(ctx, page, search)
	if err != nil {
		return nil, nil, 0, "", "", err
	}
	if c.cfg.Less != nil {
		sort.SliceStable(res.Results, func(i, j int) bool { return c.cfg.Less(res.Results[i], res.Results[j]) })
	}
	return res.Results, nil, res.Count, res.Next, res.Previous, nil
}

// SetFilter replaces the search query, returns to the first page and
// refreshes.
func (c *ListController[T]) SetFilter(ctx context.Context, query string) {
	c.mu.Lock()
	c.search = query
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SetPage moves to the given page. Out-of-range targets are ignored.
func (c *ListController[T]) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	if page < 1 || page > c.totalPages || page == c.page {
		c.mu.Unlock()
		return
	}
	c.page = page
	c.mu.Unlock()
	c.Refresh(ctx)
}

// guardMutation runs the role check shared by every mutation. The check
// is advisory (the backend re-verifies), but failing it avoids a network
// round trip that is known to be rejected.
func (c *ListController[T]) guardMutation() error {
	if Allows(c.role(), c.cfg.MutateAction) {
		return nil
	}
	c.notify.Error(common.MsgForbidden)
	return common.ErrForbidden
}

func (c *ListController[T]) validate(payload any) error {
	if err := global.Validate.Struct(payload); err != nil {
		e := common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil)
		e.Detail = common.MsgValidationError
		c.notify.Error(e.Notification())
		return e
	}
	return nil
}

// Create validates and submits a new record, then returns to the first
// page and refreshes so the new record is visible. The returned error is
// non-nil whenever the record was not created, so forms stay open with
// their input intact.
func (c *ListController[T]) Create(ctx context.Context, payload any) error {
	if err := c.guardMutation(); err != nil {
		return err
	}
	if err := c.validate(payload); err != nil {
		return err
	}
	if err := c.cfg.Create(ctx, payload); err != nil {
		c.notify.Error(common.NotificationFor(err))
		return err
	}
	c.notify.Success(c.cfg.Messages.Created)
	c.mu.Lock()
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// Update validates and submits an edit, then refreshes.
func (c *ListController[T]) Update(ctx context.Context, id string, payload any) error {
	if err := c.guardMutation(); err != nil {
		return err
	}
	if err := c.validate(payload); err != nil {
		return err
	}
	if err := c.cfg.Update(ctx, id, payload); err != nil {
		c.notify.Error(common.NotificationFor(err))
		return err
	}
	c.notify.Success(c.cfg.Messages.Updated)
	c.Refresh(ctx)
	return nil
}

// Delete removes a record after confirmation. Deleting the last item of a
// page beyond the first steps back one page so the refresh never lands on
// an empty page. A record already gone on the backend surfaces the
// server's not-found error like any other rejection.
func (c *ListController[T]) Delete(ctx context.Context, id string) error {
	if err := c.guardMutation(); err != nil {
		return err
	}
	if !c.confirm.Confirm(c.cfg.Messages.ConfirmDel) {
		return common.NewError(common.ErrCodeValidationInput, common.MsgConfirmRequired, common.StatusBadRequest, nil)
	}
	if err := c.cfg.Delete(ctx, id); err != nil {
		c.notify.Error(common.NotificationFor(err))
		return err
	}

	c.mu.Lock()
	if len(c.items) == 1 && c.page > 1 {
		c.page--
	}
	c.mu.Unlock()

	c.notify.Success(c.cfg.Messages.Deleted)
	c.Refresh(ctx)
	return nil
}

// ExportCurrentView renders the current view to w as a PDF. The active
// filter decides what is printed: locally paged entities export their
// whole filtered collection, server-paged entities the loaded page.
func (c *ListController[T]) ExportCurrentView(w io.Writer) error {
	if c.cfg.Export == nil {
		return common.NewError(common.ErrCodeInternal, common.MsgExportFailed, common.StatusInternalServerError, nil)
	}
	snap := c.Snapshot()
	items := snap.Items
	if c.cfg.Mode == ModeClient {
		c.mu.Lock()
		items = make([]T, len(c.filtered))
		copy(items, c.filtered)
		c.mu.Unlock()
	}
	if err := export.Render(*c.cfg.Export, items, w); err != nil {
		c.notify.Error(common.MsgExportFailed)
		return err
	}
	c.notify.Success(common.MsgExportOK)
	return nil
}

// Filename returns the export file name for the entity.
func (c *ListController[T]) Filename() string {
	if c.cfg.Export == nil {
		return ""
	}
	return c.cfg.Export.Filename
}
