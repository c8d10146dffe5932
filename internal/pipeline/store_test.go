// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(types.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func archivedSession(id string) *Session {
	s := NewSession()
	s.ID = id
	s.State = StateImproved
	s.Profile = &types.ResearcherProfile{
		Interests:  []string{"Stellar Astrophysics"},
		SkillLevel: "intermediate",
	}
	s.Current = &types.Proposal{
		Title:     "Asteroseismology of Red Giants",
		Subfields: []string{"Stellar Astrophysics"},
		Idea:      types.NormalizeSections(nil, nil),
		Version:   2,
	}
	s.Original = &types.Proposal{Title: "Asteroseismology of Red Giants", Idea: types.NormalizeSections(nil, nil)}
	s.UserFeedback = []string{"Narrow the sample."}
	return s
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := archivedSession("session-abc123")
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "session-abc123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.State != StateImproved {
		t.Errorf("state = %s", loaded.State)
	}
	if loaded.Current == nil || loaded.Current.Version != 2 {
		t.Errorf("current proposal not restored: %+v", loaded.Current)
	}
	if loaded.Profile == nil || loaded.Profile.SkillLevel != "intermediate" {
		t.Errorf("profile not restored: %+v", loaded.Profile)
	}
	if len(loaded.UserFeedback) != 1 || loaded.UserFeedback[0] != "Narrow the sample." {
		t.Errorf("feedback history not restored: %v", loaded.UserFeedback)
	}
}

func TestStoreSaveUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := archivedSession("session-abc123")
	if err := store.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}
	sess.Current.Version = 3
	sess.touch()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("upsert produced %d rows", len(summaries))
	}
	if summaries[0].Version != 3 {
		t.Errorf("listed version = %d, want 3", summaries[0].Version)
	}
}

func TestStoreListOrdersByRecency(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := archivedSession("session-older")
	older.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	newer := archivedSession("session-newer")
	newer.UpdatedAt = time.Now().UTC()

	if err := store.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	if summaries[0].ID != "session-newer" || summaries[1].ID != "session-older" {
		t.Errorf("ordering = %s, %s", summaries[0].ID, summaries[1].ID)
	}
	if summaries[0].Title != "Asteroseismology of Red Giants" {
		t.Errorf("summary title = %q", summaries[0].Title)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load(context.Background(), "session-missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := archivedSession("session-abc123")
	if err := store.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "session-abc123"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "session-abc123"); err == nil {
		t.Error("deleted session still loads")
	}
	if err := store.Delete(ctx, "session-abc123"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found on double delete, got %v", err)
	}
}
