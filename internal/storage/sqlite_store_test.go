package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/almanac/internal/models"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "almanac.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func edition(id, city string, at time.Time, issues ...models.QAIssue) models.Edition {
	return models.Edition{
		ID:          id,
		Locale:      models.Locale{City: city, Region: "OR"},
		GeneratedAt: at,
		Version:     "1.0",
		Seed:        ^uint64(0),
		Weeks: []models.Week{
			{Week: 1, Title: "Cozy Beginnings", Season: models.SeasonWinter, PlaceToVisit: "Library"},
		},
		Issues: issues,
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := setupStore(t)
	at := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	ed := edition("a1b2c3d4-0000", "Portland", at,
		models.QAIssue{WeekNumber: 1, Severity: models.SeverityError, Category: models.IssueDevelopment, Message: "dup"})

	if err := store.SaveEdition(ed); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}

	got, err := store.GetEdition(ed.ID)
	if err != nil {
		t.Fatalf("GetEdition failed: %v", err)
	}
	if got.Locale.City != "Portland" || got.Seed != ^uint64(0) || !got.GeneratedAt.Equal(at) {
		t.Errorf("Unexpected edition: %+v", got)
	}
	if len(got.Weeks) != 1 || got.Weeks[0].Title != "Cozy Beginnings" {
		t.Errorf("Weeks not round-tripped: %+v", got.Weeks)
	}
	if len(got.Issues) != 1 {
		t.Errorf("Expected 1 issue, got %d", len(got.Issues))
	}

	byPrefix, err := store.GetEdition("a1b2")
	if err != nil || byPrefix.ID != ed.ID {
		t.Errorf("Expected prefix lookup to resolve, got %q, %v", byPrefix.ID, err)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetEdition("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteEdition("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestSQLiteStore_AmbiguousPrefix(t *testing.T) {
	store := setupStore(t)
	now := time.Now().UTC()
	for _, id := range []string{"abc-1", "abc-2"} {
		if err := store.SaveEdition(edition(id, "Salem", now)); err != nil {
			t.Fatalf("SaveEdition failed: %v", err)
		}
	}
	_, err := store.GetEdition("abc")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("Expected ambiguous prefix error, got %v", err)
	}
	if _, err := store.GetEdition("abc-2"); err != nil {
		t.Errorf("Expected exact id to resolve, got %v", err)
	}
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	store := setupStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	older := edition("old", "Bend", base,
		models.QAIssue{WeekNumber: 2, Severity: models.SeverityWarning, Category: models.IssueTone, Message: "w"})
	newer := edition("new", "Eugene", base.Add(48*time.Hour),
		models.QAIssue{WeekNumber: 3, Severity: models.SeverityError, Category: models.IssueDevelopment, Message: "e1"},
		models.QAIssue{WeekNumber: 4, Severity: models.SeverityError, Category: models.IssueDevelopment, Message: "e2"})
	for _, ed := range []models.Edition{older, newer} {
		if err := store.SaveEdition(ed); err != nil {
			t.Fatalf("SaveEdition failed: %v", err)
		}
	}

	list, err := store.ListEditions()
	if err != nil {
		t.Fatalf("ListEditions failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("Expected newest first, got %+v", list)
	}
	if list[0].Errors != 2 || list[0].Warnings != 0 || list[1].Warnings != 1 {
		t.Errorf("Unexpected issue counts: %+v", list)
	}
	if list[0].Weeks != 1 || list[0].Locale.City != "Eugene" {
		t.Errorf("Unexpected summary: %+v", list[0])
	}
}

func TestSQLiteStore_SaveReplacesIssues(t *testing.T) {
	store := setupStore(t)
	ed := edition("e1", "Ashland", time.Now().UTC(),
		models.QAIssue{WeekNumber: 1, Severity: models.SeverityError, Category: models.IssueDevelopment, Message: "old"})
	if err := store.SaveEdition(ed); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}

	ed.Issues = nil
	if err := store.SaveEdition(ed); err != nil {
		t.Fatalf("SaveEdition (update) failed: %v", err)
	}

	list, err := store.ListEditions()
	if err != nil {
		t.Fatalf("ListEditions failed: %v", err)
	}
	if len(list) != 1 || list[0].Errors != 0 {
		t.Errorf("Expected issues replaced on resave, got %+v", list)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := setupStore(t)
	if err := store.SaveEdition(edition("gone", "Medford", time.Now().UTC())); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}
	if err := store.DeleteEdition("gone"); err != nil {
		t.Fatalf("DeleteEdition failed: %v", err)
	}
	if _, err := store.GetEdition("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStore_LoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "almanac init") {
		t.Errorf("Expected init hint, got %v", err)
	}
}

func TestSQLiteStore_LoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")
	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.SaveEdition(edition("keep", "Hood River", time.Now().UTC())); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}
	first.Close()

	second := NewSQLiteStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()
	if _, err := second.GetEdition("keep"); err != nil {
		t.Errorf("Expected edition after reload, got %v", err)
	}
}
