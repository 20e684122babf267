package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/cache"
	"icons8dl/pkg/errors"
	"icons8dl/pkg/icons8"
	"icons8dl/pkg/logger"
)

// fakeCatalog serves pages from a fixed list of icons and records requested offsets
type fakeCatalog struct {
	mu       sync.Mutex
	icons    []icons8.Icon
	offsets  []int
	queries  []string
	override func(offset int, w http.ResponseWriter) bool
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	amount, _ := strconv.Atoi(r.URL.Query().Get("amount"))

	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	if f.override != nil && f.override(offset, w) {
		return
	}

	end := offset + amount
	if end > len(f.icons) {
		end = len(f.icons)
	}
	page := []icons8.Icon{}
	if offset < len(f.icons) {
		page = f.icons[offset:end]
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "icons": page})
}

func (f *fakeCatalog) requestedOffsets() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.offsets...)
}

func makeIcons(n int) []icons8.Icon {
	icons := make([]icons8.Icon, n)
	for i := range icons {
		icons[i] = icons8.Icon{ID: fmt.Sprintf("id-%d", i), Name: fmt.Sprintf("Icon %d", i)}
	}
	return icons
}

func newFetcher(t *testing.T, serverURL string, c ResponseCache, log logger.Logger) *Fetcher {
	t.Helper()
	client := icons8.NewClient(5*time.Second, "", log)
	opts := DefaultOptions()
	opts.BaseURL = serverURL
	return NewFetcher(client, c, opts, log)
}

func TestFilterValidate(t *testing.T) {
	assert.ErrorIs(t, Filter{}.Validate(), ErrEmptyFilter)
	assert.NoError(t, Filter{Style: "ios"}.Validate())
	assert.NoError(t, Filter{Query: "home"}.Validate())
}

func TestFetchAllRejectsEmptyFilter(t *testing.T) {
	f := NewFetcher(nil, nil, Options{}, nil)
	_, err := f.FetchAll(context.Background(), Filter{}, nil)
	assert.ErrorIs(t, err, ErrEmptyFilter)
}

func TestPageURL(t *testing.T) {
	f := NewFetcher(nil, nil, Options{}, nil)
	assert.Equal(t,
		icons8.DefaultCatalogURL+"?amount=100&offset=200&ai=false&language=en-US&sortBy=mostDownloaded&style=ios&term=cat",
		f.PageURL(Filter{Style: "ios", Query: "cat"}, 200))
}

func TestFetchAllPaginates(t *testing.T) {
	catalog := &fakeCatalog{icons: makeIcons(103)}
	server := httptest.NewServer(catalog)
	defer server.Close()

	var totals []int
	f := newFetcher(t, server.URL, nil, logger.NewNopLogger())
	icons, err := f.FetchAll(context.Background(), Filter{Style: "ios"}, PageObserverFunc(func(total int) {
		totals = append(totals, total)
	}))
	require.NoError(t, err)

	assert.Len(t, icons, 103)
	assert.Equal(t, "id-0", icons[0].ID)
	assert.Equal(t, "id-102", icons[102].ID)
	assert.Equal(t, []int{0, 100}, catalog.requestedOffsets())
	assert.Equal(t, []int{100, 103}, totals)
	assert.Equal(t, "amount=100&offset=0&ai=true&language=en-US&sortBy=mostDownloaded&style=ios", catalog.queries[0])
}

func TestFetchAllExactMultipleStopsOnEmptyPage(t *testing.T) {
	catalog := &fakeCatalog{icons: makeIcons(200)}
	server := httptest.NewServer(catalog)
	defer server.Close()

	var totals []int
	f := newFetcher(t, server.URL, nil, nil)
	icons, err := f.FetchAll(context.Background(), Filter{Query: "arrow"}, PageObserverFunc(func(total int) {
		totals = append(totals, total)
	}))
	require.NoError(t, err)

	assert.Len(t, icons, 200)
	assert.Equal(t, []int{0, 100, 200}, catalog.requestedOffsets())
	assert.Equal(t, []int{100, 200}, totals, "no notification for the empty page")
}

func TestFetchAllEmptyCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	server := httptest.NewServer(catalog)
	defer server.Close()

	calls := 0
	f := newFetcher(t, server.URL, nil, nil)
	icons, err := f.FetchAll(context.Background(), Filter{Style: "nothing"}, PageObserverFunc(func(int) { calls++ }))
	require.NoError(t, err)
	assert.Empty(t, icons)
	assert.Zero(t, calls)
}

func TestFetchAllStopsOnUnsuccessfulResponse(t *testing.T) {
	catalog := &fakeCatalog{
		icons: makeIcons(250),
		override: func(offset int, w http.ResponseWriter) bool {
			if offset == 100 {
				fmt.Fprint(w, `{"success":false,"icons":[{"id":"x","name":"ignored"}]}`)
				return true
			}
			return false
		},
	}
	server := httptest.NewServer(catalog)
	defer server.Close()

	log := logger.NewTestLogger()
	f := newFetcher(t, server.URL, nil, log)
	icons, err := f.FetchAll(context.Background(), Filter{Style: "ios"}, nil)
	require.NoError(t, err)

	assert.Len(t, icons, 100)
	assert.Equal(t, []int{0, 100}, catalog.requestedOffsets())
	assert.True(t, log.HasMessage("Catalog reported an unsuccessful response, stopping"))
}

func TestFetchAllFatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		wantType errors.ErrorType
	}{
		{"server error", func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) }, errors.ErrorTypeHTTPStatus},
		{"missing icons", func(w http.ResponseWriter) { fmt.Fprint(w, `{"success":true}`) }, errors.ErrorTypeSchema},
		{"icon without name", func(w http.ResponseWriter) { fmt.Fprint(w, `{"success":true,"icons":[{"id":"1"}]}`) }, errors.ErrorTypeSchema},
		{"garbage", func(w http.ResponseWriter) { fmt.Fprint(w, `<html>`) }, errors.ErrorTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{
				icons: makeIcons(150),
				override: func(offset int, w http.ResponseWriter) bool {
					if offset == 100 {
						tt.respond(w)
						return true
					}
					return false
				},
			}
			server := httptest.NewServer(catalog)
			defer server.Close()

			cacheDir := t.TempDir()
			f := newFetcher(t, server.URL, cache.New(cacheDir, nil), nil)
			icons, err := f.FetchAll(context.Background(), Filter{Style: "ios"}, nil)
			require.Error(t, err)
			assert.Nil(t, icons)
			assert.Contains(t, err.Error(), "offset 100")
			assert.Equal(t, tt.wantType, errors.TypeOf(err))

			// Only the valid first page was persisted
			entries, readErr := os.ReadDir(cacheDir)
			require.NoError(t, readErr)
			assert.Len(t, entries, 1)
		})
	}
}

func TestFetchAllTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := icons8.NewClient(50*time.Millisecond, "", nil)
	opts := DefaultOptions()
	opts.BaseURL = server.URL
	f := NewFetcher(client, nil, opts, nil)

	_, err := f.FetchAll(context.Background(), Filter{Style: "ios"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeTimeout, errors.TypeOf(err))
}

func TestFetchAllUsesCache(t *testing.T) {
	catalog := &fakeCatalog{icons: makeIcons(103)}
	server := httptest.NewServer(catalog)
	defer server.Close()

	c := cache.New(t.TempDir(), nil)

	first, err := newFetcher(t, server.URL, c, nil).FetchAll(context.Background(), Filter{Style: "ios"}, nil)
	require.NoError(t, err)
	require.Len(t, catalog.requestedOffsets(), 2)

	// Both pages are now cached; a second walk must not touch the network
	second, err := newFetcher(t, server.URL, c, nil).FetchAll(context.Background(), Filter{Style: "ios"}, nil)
	require.NoError(t, err)
	assert.Len(t, catalog.requestedOffsets(), 2)
	assert.Equal(t, first, second)

	// A different filter is a different key
	_, err = newFetcher(t, server.URL, c, nil).FetchAll(context.Background(), Filter{Style: "color"}, nil)
	require.NoError(t, err)
	assert.Len(t, catalog.requestedOffsets(), 4)
}

func TestFetchAllRefetchesInvalidCachedPage(t *testing.T) {
	catalog := &fakeCatalog{icons: makeIcons(5)}
	server := httptest.NewServer(catalog)
	defer server.Close()

	log := logger.NewTestLogger()
	c := cache.New(t.TempDir(), log)
	f := newFetcher(t, server.URL, c, log)

	url := f.PageURL(Filter{Style: "ios"}, 0)
	c.Write(url, []byte(`{"success":true,"icons":[{"id":"no-name"}]}`))

	icons, err := f.FetchAll(context.Background(), Filter{Style: "ios"}, nil)
	require.NoError(t, err)
	assert.Len(t, icons, 5)
	assert.Equal(t, []int{0}, catalog.requestedOffsets())
	assert.True(t, log.HasMessage("Cached page failed validation, refetching"))

	// The fresh body replaced the bad entry
	body, ok := c.Read(url)
	require.True(t, ok)
	page, err := icons8.DecodeIconsResponse(body)
	require.NoError(t, err)
	assert.Len(t, page.Icons, 5)
}
