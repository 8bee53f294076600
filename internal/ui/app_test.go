package ui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitedeck/internal/collection"
	"sitedeck/internal/logging"
	"sitedeck/internal/site"
)

type fakeSource struct {
	mu        sync.Mutex
	items     []site.Item
	listErr   error
	deleteErr error
	lists     int
	deleted   []string
}

func (f *fakeSource) List(ctx context.Context) ([]site.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]site.Item(nil), f.items...), nil
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeSource) counts() (lists int, deleted []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, append([]string(nil), f.deleted...)
}

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

// runCmd executes cmd and flattens batches. Commands that block (status
// expiry ticks) are abandoned after a short wait.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// pump feeds the messages produced by cmd back into the model until no
// further work is produced. Spinner ticks are dropped.
func pump(t *testing.T, m tea.Model, cmd tea.Cmd) {
	t.Helper()
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 100, "message loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
}

func press(t *testing.T, m tea.Model, key string) {
	t.Helper()
	_, cmd := m.Update(keyMsg(key))
	pump(t, m, cmd)
}

func newTestApp(t *testing.T, src *fakeSource) (*AppModel, tea.Model, *recordingOpener) {
	t.Helper()
	op := &recordingOpener{}
	a := NewAppModel(AppOptions{
		Source:     src,
		Opener:     op,
		BaseURL:    "http://api.test",
		CreatePath: "/dashboard",
	})
	m := a.AsTeaModel()
	pump(t, m, m.Init())
	return a, m, op
}

var blog = site.Item{ID: "1", Title: "Blog", Href: "https://blog.example.com", EditHref: "/sites/1"}

func TestApp_InitialLoadShowsRows(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	assert.Equal(t, collection.StatusLoaded, a.State.Status())
	assert.Equal(t, collection.ViewList, a.List.Presentation().Kind)
	assert.Contains(t, m.View(), "Blog")
	assert.Contains(t, m.View(), "[d]elete")
	lists, _ := src.counts()
	assert.Equal(t, 1, lists)
}

func TestApp_SkeletonBeforeLoadCompletes(t *testing.T) {
	a := NewAppModel(AppOptions{Source: &fakeSource{}})
	m := a.AsTeaModel()
	m.Init() // commands not run

	assert.Equal(t, collection.StatusLoading, a.State.Status())
	assert.Equal(t, collection.ViewSkeleton, a.List.Presentation().Kind)
	assert.NotContains(t, m.View(), collection.MsgCreateCTA)
}

func TestApp_EmptyShowsCTA(t *testing.T) {
	_, m, op := newTestApp(t, &fakeSource{})

	assert.Contains(t, m.View(), collection.MsgCreateCTA)

	press(t, m, "n")
	assert.Equal(t, []string{"http://api.test/dashboard"}, op.urls)
}

func TestApp_LoadFailureShowsBannerAndNotifies(t *testing.T) {
	a, m, _ := newTestApp(t, &fakeSource{listErr: errors.New("boom")})

	assert.Equal(t, collection.StatusError, a.State.Status())
	assert.Equal(t, collection.MsgLoadFailed, a.Status)
	assert.True(t, a.StatusIsError)
	assert.Contains(t, m.View(), "Press r to retry.")
}

func TestApp_RefreshRecovers(t *testing.T) {
	src := &fakeSource{listErr: errors.New("boom"), items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)
	require.Equal(t, collection.StatusError, a.State.Status())

	src.mu.Lock()
	src.listErr = nil
	src.mu.Unlock()
	press(t, m, "r")

	assert.Equal(t, collection.StatusLoaded, a.State.Status())
	assert.False(t, a.List.Presentation().ShowError)
}

func TestApp_RetryLogsLastFailure(t *testing.T) {
	var logs bytes.Buffer
	src := &fakeSource{listErr: errors.New("connection refused")}
	a := NewAppModel(AppOptions{Source: src, Logger: logging.New(&logs, "debug", "text")})
	m := a.AsTeaModel()
	pump(t, m, m.Init())
	require.Equal(t, collection.StatusError, a.State.Status())

	press(t, m, "r")

	assert.Contains(t, logs.String(), "retrying list after failure")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestApp_DeleteConfirmedRefetchesOnce(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	press(t, m, "d")
	require.Equal(t, 1, a.Modals.Len())
	assert.Contains(t, m.View(), "Are you sure you want to delete Blog?")
	assert.True(t, a.State.PendingDeletion())

	press(t, m, "y")

	lists, deleted := src.counts()
	assert.Equal(t, []string{"1"}, deleted)
	assert.Equal(t, 2, lists)
	assert.Equal(t, collection.MsgDeleted, a.Status)
	assert.False(t, a.State.PendingDeletion())
	assert.Equal(t, 0, a.Modals.Len())
	assert.Contains(t, m.View(), collection.MsgCreateCTA)
}

func TestApp_DeleteFailureStillRefetches(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}, deleteErr: errors.New("500")}
	a, m, _ := newTestApp(t, src)

	press(t, m, "d")
	press(t, m, "enter")

	lists, deleted := src.counts()
	assert.Equal(t, []string{"1"}, deleted)
	assert.Equal(t, 2, lists)
	assert.Equal(t, collection.MsgDeleteFailed, a.Status)
	assert.True(t, a.StatusIsError)
	assert.False(t, a.State.PendingDeletion())
	assert.Equal(t, 1, a.State.Len())
}

func TestApp_DeclineSendsNothing(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	press(t, m, "d")
	press(t, m, "n")

	lists, deleted := src.counts()
	assert.Empty(t, deleted)
	assert.Equal(t, 1, lists)
	assert.False(t, a.State.PendingDeletion())
	assert.Equal(t, 0, a.Modals.Len())

	// The gate is open again.
	press(t, m, "d")
	assert.Equal(t, 1, a.Modals.Len())
}

func TestApp_DeleteRejectedWhilePending(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)
	require.True(t, a.State.BeginDelete())
	a.List.Sync(a.State)

	_, cmd := m.Update(ShowDeleteSiteMsg{})
	pump(t, m, cmd)

	assert.Equal(t, 0, a.Modals.Len())
	_, deleted := src.counts()
	assert.Empty(t, deleted)
	assert.Contains(t, m.View(), "(deleting…)")
}

func TestApp_ModalCapturesKeys(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	press(t, m, "d")
	_, cmd := m.Update(keyMsg("q"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(keyMsg("r"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.Modals.Len())
}

func TestApp_StaleLoadIsDropped(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	old := a.State.BeginLoad()
	latest := a.State.BeginLoad()
	newer := site.Item{ID: "2", Title: "Docs"}

	m.Update(SitesLoadedMsg{Ticket: latest, Items: []site.Item{newer}})
	m.Update(SitesLoadedMsg{Ticket: old, Err: errors.New("late failure")})

	assert.Equal(t, collection.StatusLoaded, a.State.Status())
	assert.Equal(t, []site.Item{newer}, a.State.Items())
	assert.Empty(t, a.Status)
}

func TestApp_DetailNavigation(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, op := newTestApp(t, src)

	press(t, m, "enter")
	require.Equal(t, ModeDetail, a.Mode)
	require.NotNil(t, a.Detail)
	assert.Equal(t, "http://api.test/sites/1", a.Detail.EditURL)
	assert.Contains(t, m.View(), "https://blog.example.com")

	press(t, m, "v")
	press(t, m, "e")
	assert.Equal(t, []string{"https://blog.example.com", "http://api.test/sites/1"}, op.urls)

	press(t, m, "esc")
	assert.Equal(t, ModeList, a.Mode)
	assert.Nil(t, a.Detail)
}

func TestApp_DetailDeleteControlFollowsGate(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	press(t, m, "enter")
	require.NotNil(t, a.Detail)
	assert.Contains(t, a.Detail.View(), "d: delete")

	press(t, m, "d")
	require.Equal(t, 1, a.Modals.Len())
	assert.Contains(t, a.Detail.View(), "(deleting…)")
	assert.NotContains(t, a.Detail.View(), "d: delete")

	press(t, m, "n")
	assert.Contains(t, a.Detail.View(), "d: delete")
}

func TestApp_DetailOpenedDuringDeleteShowsDisabled(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)
	require.True(t, a.State.BeginDelete())

	_, cmd := m.Update(SelectSiteMsg{ID: blog.ID})
	pump(t, m, cmd)

	require.NotNil(t, a.Detail)
	assert.False(t, a.Detail.DeleteEnabled)
	assert.Contains(t, m.View(), "(deleting…)")
}

func TestApp_DeleteFromDetailReturnsToList(t *testing.T) {
	src := &fakeSource{items: []site.Item{blog}}
	a, m, _ := newTestApp(t, src)

	press(t, m, "enter")
	press(t, m, "d")
	press(t, m, "y")

	assert.Equal(t, ModeList, a.Mode)
	assert.Equal(t, 0, a.State.Len())
}

func TestApp_StatusExpires(t *testing.T) {
	a, m, _ := newTestApp(t, &fakeSource{listErr: errors.New("boom")})
	require.NotEmpty(t, a.Status)

	m.Update(statusExpiredMsg{seq: a.statusSeq - 1})
	assert.NotEmpty(t, a.Status, "older expiry must not clear a newer message")

	m.Update(statusExpiredMsg{seq: a.statusSeq})
	assert.Empty(t, a.Status)
}
