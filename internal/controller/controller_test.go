package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/export"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/models"
	"pannel_backoffice/internal/resources"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	m.Run()
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func (n *recordingNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func page(items []models.City, count int) *resources.ListResult[models.City] {
	return &resources.ListResult[models.City]{Count: count, Results: items}
}

func cities(names ...string) []models.City {
	out := make([]models.City, len(names))
	for i, name := range names {
		out[i] = models.City{ID: fmt.Sprintf("c%d", i), Name: name}
	}
	return out
}

func adminRole() string { return models.RoleAdmin }

func newCityController(cfg ListConfig[models.City], notify Notifier) *ListController[models.City] {
	if cfg.Name == "" {
		cfg.Name = "city"
	}
	return NewList(cfg, adminRole, notify, StaticConfirmer(true))
}

func TestRefreshPopulatesState(t *testing.T) {
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(cities("Cotonou", "Porto-Novo"), 23), nil
		},
	}, nil)

	ctl.Refresh(context.Background())
	snap := ctl.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 23, snap.Count)
	assert.Equal(t, 3, snap.TotalPages)
	assert.False(t, snap.Loading)
}

func TestOverlappingRefreshLastIssuedWins(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				<-release // first request resolves after the second
				return page(cities("STALE"), 1), nil
			}
			return page(cities("FRESH"), 1), nil
		},
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctl.Refresh(context.Background())
	}()
	// make sure the first refresh is in flight before issuing the second
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	ctl.Refresh(context.Background())
	close(release)
	wg.Wait()

	snap := ctl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "FRESH", snap.Items[0].Name, "the stale response must be discarded whole")
	assert.False(t, snap.Loading, "only the latest request clears the loading flag")
}

func TestFailedRefreshKeepsPreviousItems(t *testing.T) {
	notify := &recordingNotifier{}
	fail := false
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			if fail {
				return nil, common.NewError(common.ErrCodeTransport, common.MsgOperationFailed, 0, nil)
			}
			return page(cities("Cotonou"), 1), nil
		},
		Messages: Messages{LoadFailed: "Impossible de charger les villes"},
	}, notify)

	ctl.Refresh(context.Background())
	fail = true
	ctl.Refresh(context.Background())

	snap := ctl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Cotonou", snap.Items[0].Name)
	assert.False(t, snap.Loading)
	assert.Equal(t, "Impossible de charger les villes", notify.lastError())
}

func TestSetFilterResetsToFirstPage(t *testing.T) {
	var gotPage int
	var gotSearch string
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			gotPage, gotSearch = p, s
			return page(nil, 40), nil
		},
	}, nil)

	ctl.Refresh(context.Background())
	ctl.SetPage(context.Background(), 3)
	require.Equal(t, 3, ctl.Snapshot().Page)

	ctl.SetFilter(context.Background(), "porto")
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, "porto", gotSearch)
	assert.Equal(t, 1, ctl.Snapshot().Page)
}

func TestSetPageIgnoresOutOfRange(t *testing.T) {
	calls := 0
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			calls++
			return page(cities("x"), 25), nil
		},
	}, nil)
	ctl.Refresh(context.Background())
	require.Equal(t, 3, ctl.Snapshot().TotalPages)
	before := calls

	ctl.SetPage(context.Background(), 0)
	ctl.SetPage(context.Background(), 4)
	ctl.SetPage(context.Background(), 1) // already there
	assert.Equal(t, before, calls, "out-of-range navigation must not hit the backend")

	ctl.SetPage(context.Background(), 2)
	assert.Equal(t, before+1, calls)
	assert.Equal(t, 2, ctl.Snapshot().Page)
}

func TestClientModeFiltersSortsAndPages(t *testing.T) {
	all := []models.Country{
		{ID: "1", Name: "Togo"}, {ID: "2", Name: "Benin"}, {ID: "3", Name: "Niger"},
		{ID: "4", Name: "Burkina"}, {ID: "5", Name: "Ghana"},
	}
	ctl := NewList(ListConfig[models.Country]{
		Name:     "country",
		Mode:     ModeClient,
		PageSize: 2,
		FetchAll: func(ctx context.Context) ([]models.Country, error) { return all, nil },
		Match: func(c models.Country, q string) bool {
			return strings.Contains(strings.ToLower(c.Name), strings.ToLower(q))
		},
		Less: func(a, b models.Country) bool { return a.Name < b.Name },
	}, adminRole, nil, nil)

	ctl.Refresh(context.Background())
	snap := ctl.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, 3, snap.TotalPages)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Benin", snap.Items[0].Name)

	ctl.SetPage(context.Background(), 3)
	snap = ctl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Togo", snap.Items[0].Name)

	ctl.SetFilter(context.Background(), "nig")
	snap = ctl.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, "Niger", snap.Items[0].Name)
}

func TestServerModeAppliesConfiguredOrder(t *testing.T) {
	ctl := NewList(ListConfig[models.Panel]{
		Name: "panel",
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.Panel], error) {
			return &resources.ListResult[models.Panel]{Count: 3, Results: []models.Panel{
				{ID: "old", CreatedAt: "2025-01-10T08:00:00Z"},
				{ID: "new", CreatedAt: "2025-08-01T08:00:00Z"},
				{ID: "mid", CreatedAt: "2025-04-20T08:00:00Z"},
			}}, nil
		},
		Less: func(a, b models.Panel) bool { return a.CreatedAt > b.CreatedAt },
	}, adminRole, nil, nil)

	ctl.Refresh(context.Background())
	snap := ctl.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, "new", snap.Items[0].ID, "display order must not follow the backend's order")
	assert.Equal(t, "mid", snap.Items[1].ID)
	assert.Equal(t, "old", snap.Items[2].ID)
}

func TestCreateBlockedForReportRole(t *testing.T) {
	notify := &recordingNotifier{}
	called := false
	ctl := NewList(ListConfig[models.City]{
		Name: "city",
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(nil, 0), nil
		},
		Create: func(ctx context.Context, payload any) error { called = true; return nil },
	}, func() string { return models.RoleReport }, notify, nil)

	err := ctl.Create(context.Background(), models.CityPayload{Name: "Kandi", CommuneID: "1"})
	require.Error(t, err)
	assert.False(t, called, "the request must be short-circuited before the network")
	assert.Equal(t, common.MsgForbidden, notify.lastError())
}

func TestUserMutationsRequireAdmin(t *testing.T) {
	for role, allowed := range map[string]bool{
		models.RoleReport: false,
		models.RoleCreate: false,
		models.RoleAdmin:  true,
	} {
		assert.Equal(t, allowed, Allows(role, ActionManageUsers), "role %s", role)
	}
	assert.False(t, Allows("", ActionManageUsers))
	assert.False(t, Allows("unknown", ActionCreate))
	assert.True(t, Allows(models.RoleCreate, ActionDelete))
}

func TestCreateValidationStopsBeforeNetwork(t *testing.T) {
	notify := &recordingNotifier{}
	called := false
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(nil, 0), nil
		},
		Create: func(ctx context.Context, payload any) error { called = true; return nil },
	}, notify)

	err := ctl.Create(context.Background(), models.CityPayload{Name: ""})
	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, common.MsgValidationError, notify.lastError())
}

func TestCreateSuccessNotifiesAndRefreshes(t *testing.T) {
	notify := &recordingNotifier{}
	fetches := 0
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			fetches++
			return page(cities("Kandi"), 1), nil
		},
		Create:   func(ctx context.Context, payload any) error { return nil },
		Messages: Messages{Created: "Ville créée avec succès"},
	}, notify)

	require.NoError(t, ctl.Create(context.Background(), models.CityPayload{Name: "Kandi", CommuneID: "1"}))
	assert.Equal(t, "Ville créée avec succès", notify.lastSuccess())
	assert.Equal(t, 1, fetches, "a successful create re-fetches the listing")
}

func TestCreateReturnsToFirstPage(t *testing.T) {
	var lastFetched int
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			lastFetched = p
			return page(cities("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"), 25), nil
		},
		Create: func(ctx context.Context, payload any) error { return nil },
	}, nil)

	ctl.Refresh(context.Background())
	ctl.SetPage(context.Background(), 2)
	require.Equal(t, 2, ctl.Snapshot().Page)

	require.NoError(t, ctl.Create(context.Background(), models.CityPayload{Name: "Kandi", CommuneID: "1"}))
	assert.Equal(t, 1, lastFetched, "the new record must be visible, so the refresh targets page 1")
	assert.Equal(t, 1, ctl.Snapshot().Page)
}

func TestCreateBackendErrorSurfacesDetail(t *testing.T) {
	notify := &recordingNotifier{}
	backendErr := common.NewError(common.ErrCodeBackend, common.MsgOperationFailed, common.StatusBadRequest, nil)
	backendErr.Detail = "Cette ville existe déjà"
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(nil, 0), nil
		},
		Create: func(ctx context.Context, payload any) error { return backendErr },
	}, notify)

	err := ctl.Create(context.Background(), models.CityPayload{Name: "Kandi", CommuneID: "1"})
	require.Error(t, err, "the form must stay open")
	assert.Equal(t, "Cette ville existe déjà", notify.lastError())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	called := false
	ctl := NewList(ListConfig[models.City]{
		Name: "city",
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(nil, 0), nil
		},
		Delete: func(ctx context.Context, id string) error { called = true; return nil },
	}, adminRole, nil, StaticConfirmer(false))

	err := ctl.Delete(context.Background(), "c1")
	require.Error(t, err)
	assert.False(t, called)
}

func TestDeleteLastItemOfPageStepsBack(t *testing.T) {
	pages := map[int]*resources.ListResult[models.City]{
		1: page(cities("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"), 11),
		2: page(cities("k"), 11),
	}
	var fetchedPages []int
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			fetchedPages = append(fetchedPages, p)
			if res, ok := pages[p]; ok {
				return res, nil
			}
			return page(nil, 11), nil
		},
		Delete: func(ctx context.Context, id string) error { return nil },
	}, nil)

	ctl.Refresh(context.Background())
	ctl.SetPage(context.Background(), 2)
	require.Len(t, ctl.Snapshot().Items, 1)

	pages[1] = page(cities("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"), 10)
	require.NoError(t, ctl.Delete(context.Background(), "c0"))

	snap := ctl.Snapshot()
	assert.Equal(t, 1, snap.Page, "deleting the last row of page 2 must land on page 1")
	assert.Equal(t, 1, fetchedPages[len(fetchedPages)-1])
}

func TestDeleteAlreadyGoneSurfacesNotFound(t *testing.T) {
	notify := &recordingNotifier{}
	notFound := common.NewError(common.ErrCodeBackend, common.MsgOperationFailed, common.StatusNotFound, nil)
	notFound.Detail = "Ressource introuvable"
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			return page(nil, 0), nil
		},
		Delete: func(ctx context.Context, id string) error {
			return notFound
		},
		Messages: Messages{Deleted: "Ville supprimée avec succès"},
	}, notify)

	err := ctl.Delete(context.Background(), "ghost")
	require.Error(t, err, "the server's not-found must reach the caller")
	assert.Equal(t, "Ressource introuvable", notify.lastError())
	assert.Empty(t, notify.lastSuccess(), "no success toast for a record the server rejected")
}

func TestClientModeExportsFullFilteredSet(t *testing.T) {
	all := []models.Country{
		{ID: "1", Name: "Togo"}, {ID: "2", Name: "Benin"}, {ID: "3", Name: "Niger"},
		{ID: "4", Name: "Burkina"}, {ID: "5", Name: "Ghana"},
	}
	var rendered []string
	spec := export.TableSpec[models.Country]{
		Title:    "Liste des Pays",
		Filename: "liste_pays.pdf",
		Columns: []export.Column[models.Country]{{
			Header: "Nom",
			Value: func(c models.Country) string {
				rendered = append(rendered, c.Name)
				return c.Name
			},
		}},
	}
	ctl := NewList(ListConfig[models.Country]{
		Name:     "country",
		Mode:     ModeClient,
		PageSize: 2,
		FetchAll: func(ctx context.Context) ([]models.Country, error) { return all, nil },
		Match: func(c models.Country, q string) bool {
			return strings.Contains(strings.ToLower(c.Name), strings.ToLower(q))
		},
		Export: &spec,
	}, adminRole, nil, nil)

	ctl.Refresh(context.Background())
	require.Len(t, ctl.Snapshot().Items, 2)

	var buf bytes.Buffer
	require.NoError(t, ctl.ExportCurrentView(&buf))
	assert.Len(t, rendered, 5, "export covers the whole collection, not the displayed page")

	rendered = nil
	ctl.SetFilter(context.Background(), "nig")
	buf.Reset()
	require.NoError(t, ctl.ExportCurrentView(&buf))
	assert.Equal(t, []string{"Niger"}, rendered, "the active filter still applies to the export")
}

func TestCloseDropsInFlightResults(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	ctl := newCityController(ListConfig[models.City]{
		Fetch: func(ctx context.Context, p int, s string) (*resources.ListResult[models.City], error) {
			close(started)
			<-release
			return page(cities("late"), 1), nil
		},
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctl.Refresh(context.Background())
	}()
	<-started
	ctl.Close()
	close(release)
	wg.Wait()

	assert.Empty(t, ctl.Snapshot().Items, "a closed controller must not absorb late results")
}
