package collection

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitedeck/internal/logging"
	"sitedeck/internal/site"
	"sitedeck/internal/siteapi"
)

type fakeSource struct {
	mu        sync.Mutex
	lists     int
	deletes   []string
	items     []site.Item
	listErr   error
	deleteErr error
	// onDelete lets a test observe state mid-flight.
	onDelete func()
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
	if f.onDelete != nil {
		f.onDelete()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
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

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newTestController(src *fakeSource, answer bool) (*Controller, *fakeConfirmer, *recordingNotifier, *bytes.Buffer) {
	var buf bytes.Buffer
	conf := &fakeConfirmer{answer: answer}
	notif := &recordingNotifier{}
	return NewController(src, conf, notif, logging.New(&buf, "debug", "text")), conf, notif, &buf
}

func TestController_LoadSuccess(t *testing.T) {
	src := &fakeSource{items: []site.Item{{ID: "1", Title: "A", Href: "http://a", EditHref: "/sites/1"}}}
	c, _, notif, _ := newTestController(src, true)

	assert.Equal(t, StatusLoaded, c.Load(context.Background()))
	snap := c.Snapshot()
	assert.Equal(t, ViewList, Render(snap).Kind)
	assert.Equal(t, "A", snap.Items()[0].Title)
	assert.Empty(t, notif.errors)
}

func TestController_LoadEmptyShowsCTA(t *testing.T) {
	c, _, _, _ := newTestController(&fakeSource{}, true)
	c.Load(context.Background())
	snap := c.Snapshot()
	assert.Equal(t, ViewEmpty, Render(snap).Kind)
}

func TestController_SnapshotIsDetached(t *testing.T) {
	src := &fakeSource{items: items("1", "2")}
	c, _, _, _ := newTestController(src, true)
	c.Load(context.Background())

	before := c.Snapshot()
	require.False(t, c.Snapshot().PendingDeletion())
	c.Delete(context.Background(), "1", "Site 1")

	assert.Equal(t, items("1", "2"), before.Items())
	assert.Equal(t, items("2"), c.Snapshot().Items())
}

func TestController_LoadFailureNotifiesAndLogs(t *testing.T) {
	src := &fakeSource{items: items("1")}
	c, _, notif, logs := newTestController(src, true)
	c.Load(context.Background())

	src.listErr = &siteapi.StatusError{Op: "list sites", Code: 503, Body: map[string]interface{}{"error": "maintenance"}}
	assert.Equal(t, StatusError, c.Load(context.Background()))

	assert.Equal(t, []string{MsgLoadFailed}, notif.errors)
	assert.Contains(t, logs.String(), "status=503")
	assert.Contains(t, logs.String(), "maintenance")
	snap := c.Snapshot()
	assert.Equal(t, items("1"), snap.Items(), "stale items survive a failed load")
}

func TestController_DeleteConfirmed(t *testing.T) {
	src := &fakeSource{items: items("1", "2")}
	c, conf, notif, _ := newTestController(src, true)
	c.Load(context.Background())

	var pendingDuringDelete bool
	src.onDelete = func() { pendingDuringDelete = c.Snapshot().PendingDeletion() }

	out := c.Delete(context.Background(), "1", "Site 1")
	assert.Equal(t, DeleteSucceeded, out)
	assert.True(t, pendingDuringDelete)
	assert.Equal(t, []string{"Are you sure you want to delete Site 1?"}, conf.prompts)
	assert.Equal(t, []string{MsgDeleted}, notif.successes)
	assert.Equal(t, []string{"1"}, src.deletes)
	assert.Equal(t, 2, src.lists, "initial load plus exactly one refetch")

	snap := c.Snapshot()
	assert.False(t, snap.PendingDeletion())
	assert.Equal(t, items("2"), snap.Items())
}

func TestController_DeleteFailureStillRefetches(t *testing.T) {
	src := &fakeSource{items: items("1"), deleteErr: &siteapi.StatusError{Op: "delete site", Code: 500}}
	c, _, notif, logs := newTestController(src, true)
	c.Load(context.Background())

	out := c.Delete(context.Background(), "1", "Site 1")
	assert.Equal(t, DeleteFailed, out)
	assert.Equal(t, []string{MsgDeleteFailed}, notif.errors)
	assert.Empty(t, notif.successes)
	assert.Equal(t, 2, src.lists)
	assert.Contains(t, logs.String(), "delete site")

	snap := c.Snapshot()
	_, stillThere := snap.Find("1")
	assert.True(t, stillThere, "list reflects the refetch, which still has the item")
	assert.False(t, snap.PendingDeletion())
}

func TestController_DeleteTransportFailure(t *testing.T) {
	src := &fakeSource{items: items("1"), deleteErr: &siteapi.TransportError{Op: "delete site", Err: errors.New("connection refused")}}
	c, _, notif, _ := newTestController(src, true)

	assert.Equal(t, DeleteFailed, c.Delete(context.Background(), "1", "Site 1"))
	assert.Equal(t, []string{MsgDeleteFailed}, notif.errors)
	assert.Equal(t, 1, src.lists)
}

func TestController_DeclineSendsNothing(t *testing.T) {
	src := &fakeSource{items: items("1")}
	c, _, notif, _ := newTestController(src, false)
	c.Load(context.Background())

	assert.Equal(t, DeleteDeclined, c.Delete(context.Background(), "1", "Site 1"))
	assert.Empty(t, src.deletes)
	assert.Equal(t, 1, src.lists, "no refetch after decline")
	assert.Empty(t, notif.successes)
	assert.Empty(t, notif.errors)
	assert.False(t, c.Snapshot().PendingDeletion(), "decline reopens the delete gate")
}

func TestController_ConfirmErrorIsDecline(t *testing.T) {
	src := &fakeSource{items: items("1")}
	c, conf, _, _ := newTestController(src, true)
	conf.err = errors.New("interrupted")

	assert.Equal(t, DeleteDeclined, c.Delete(context.Background(), "1", "Site 1"))
	assert.Empty(t, src.deletes)
}

func TestController_DeleteGated(t *testing.T) {
	src := &fakeSource{items: items("1", "2")}
	c, _, _, _ := newTestController(src, true)
	c.Load(context.Background())

	var inner DeleteOutcome
	src.onDelete = func() {
		src.onDelete = nil
		inner = c.Delete(context.Background(), "2", "Site 2")
	}
	c.Delete(context.Background(), "1", "Site 1")

	assert.Equal(t, DeleteRejected, inner)
	assert.Equal(t, []string{"1"}, src.deletes, "gated delete issued no request")
}

// blockingSource hands out List results in an order chosen by the test.
type blockingSource struct {
	started chan chan []site.Item
}

func (b *blockingSource) List(ctx context.Context) ([]site.Item, error) {
	reply := make(chan []site.Item)
	b.started <- reply
	return <-reply, nil
}

func (b *blockingSource) Delete(ctx context.Context, id string) error { return nil }

func TestController_LastStartedLoadWins(t *testing.T) {
	src := &blockingSource{started: make(chan chan []site.Item)}
	c := NewController(src, &fakeConfirmer{}, &recordingNotifier{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); c.Load(context.Background()) }()
	first := <-src.started

	wg.Add(1)
	go func() { defer wg.Done(); c.Load(context.Background()) }()
	second := <-src.started

	second <- items("fresh")
	first <- items("stale")
	wg.Wait()

	snap := c.Snapshot()
	require.Equal(t, StatusLoaded, snap.Status())
	assert.Equal(t, items("fresh"), snap.Items())
}

func TestDeleteOutcome_String(t *testing.T) {
	assert.Equal(t, "rejected", DeleteRejected.String())
	assert.Equal(t, "declined", DeleteDeclined.String())
	assert.Equal(t, "succeeded", DeleteSucceeded.String())
	assert.Equal(t, "failed", DeleteFailed.String())
}
