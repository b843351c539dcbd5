package realms

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tmorgan/bloodmoney/internal/api"
)

// fakeLister serves a fixed realm list and counts calls.
type fakeLister struct {
	realms []api.RealmInfo
	err    error
	calls  atomic.Int32
}

func (f *fakeLister) GetRealms(ctx context.Context) ([]api.RealmInfo, error) {
	f.calls.Add(1)
	return f.realms, f.err
}

func testRealms() []api.RealmInfo {
	return []api.RealmInfo{
		{Name: "Medivh", Slug: "medivh", ConnectedRealms: []string{"medivh", "exodar"}},
		{Name: "Exodar", Slug: "exodar", ConnectedRealms: []string{"exodar", "medivh"}},
		{Name: "Sargeras", Slug: "sargeras", ConnectedRealms: []string{"sargeras"}},
	}
}

func TestRegistry_StartSyncsRealms(t *testing.T) {
	lister := &fakeLister{realms: testRealms()}
	reg := New(DefaultConfig(), lister, nil)

	if err := reg.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer reg.Stop()

	realms := reg.Realms()
	if len(realms) != 3 {
		t.Fatalf("len(Realms()) = %d, want 3", len(realms))
	}

	groups := reg.Groups()
	if len(groups) != 2 {
		t.Fatalf("len(Groups()) = %d, want 2 (connected pair collapses)", len(groups))
	}
	if groups[0].Leader() != "exodar" {
		t.Errorf("Leader() = %q, want %q (canonical sort)", groups[0].Leader(), "exodar")
	}
	if groups[1].Leader() != "sargeras" {
		t.Errorf("Leader() = %q, want %q", groups[1].Leader(), "sargeras")
	}

	if reg.LastSyncAt().IsZero() {
		t.Error("LastSyncAt should be set after sync")
	}
}

func TestRegistry_StartFailsWhenSyncFails(t *testing.T) {
	lister := &fakeLister{err: errors.New("api down")}
	reg := New(DefaultConfig(), lister, nil)

	if err := reg.Start(context.Background()); err == nil {
		t.Fatal("Start should fail when the initial sync fails")
	}
}

func TestRegistry_ReconcileRefreshes(t *testing.T) {
	lister := &fakeLister{realms: testRealms()}
	cfg := Config{
		ReconcileInterval: 20 * time.Millisecond,
		SyncTimeout:       time.Second,
	}
	reg := New(cfg, lister, nil)

	if err := reg.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer reg.Stop()

	deadline := time.After(2 * time.Second)
	for lister.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("reconcile never re-synced (calls = %d)", lister.calls.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRegistry_GroupsReturnsCopy(t *testing.T) {
	lister := &fakeLister{realms: testRealms()}
	reg := New(DefaultConfig(), lister, nil)

	if err := reg.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer reg.Stop()

	groups := reg.Groups()
	groups[0] = groups[len(groups)-1]

	fresh := reg.Groups()
	if fresh[0].Leader() != "exodar" {
		t.Error("mutating the returned slice must not affect registry state")
	}
}
