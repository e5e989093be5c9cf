package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenKeepsSharedKeysObserved(t *testing.T) {
	c := newCache(time.Hour)
	screen := c.NewScreen()

	members := NewKey(ResourceMembers, nil)
	branches := NewKey(ResourceBranches, nil)
	trainers := NewKey(ResourceTrainers, nil)

	screen.Show("/members", members, branches)
	screen.Show("/trainers", trainers, branches)

	assert.Equal(t, "/trainers", screen.Page())

	snap, _ := c.Snapshot(branches)
	assert.Equal(t, 1, snap.Observers)
	snap, _ = c.Snapshot(members)
	assert.Zero(t, snap.Observers)

	screen.Clear()
	snap, _ = c.Snapshot(trainers)
	assert.Zero(t, snap.Observers)
	assert.Empty(t, screen.Page())
}

func TestScreenLeavingPageDropsItsFetch(t *testing.T) {
	c := newCache(time.Hour)
	screen := c.NewScreen()
	key := NewKey(ResourceReservations, map[string]string{"page": "2"})
	started := make(chan struct{})

	screen.Show("/reservations", key)
	done := make(chan error, 1)
	go func() {
		_, err := c.Query(context.Background(), key, func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})
		done <- err
	}()
	<-started

	screen.Show("/")
	require.ErrorIs(t, <-done, context.Canceled)

	snap, _ := c.Snapshot(key)
	assert.Equal(t, StatusIdle, snap.Status)
}

func TestReleaseAfterResetDoesNotTouchNewEntries(t *testing.T) {
	c := newCache(time.Hour)
	key := NewKey(ResourceMembers, nil)

	old := c.Observe(key)
	c.Reset()
	fresh := c.Observe(key)
	old.Release()

	snap, _ := c.Snapshot(key)
	assert.Equal(t, 1, snap.Observers)
	fresh.Release()
}
