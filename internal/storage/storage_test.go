package storage

import (
	"testing"
	"time"

	"github.com/auktionera/cataloger/internal/models"
)

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	store := New()
	session := store.Create(models.CatalogRecord{Title: "Vas"})

	if session.ID == "" {
		t.Fatal("Create returned a session without an ID")
	}
	if session.CreatedAt.IsZero() || !session.ModifiedAt.Equal(session.CreatedAt) {
		t.Errorf("Timestamps not initialized: %+v", session)
	}
	got, ok := store.Get(session.ID)
	if !ok || got != session {
		t.Errorf("Get(%q) = %v, %v", session.ID, got, ok)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := New()
	store.Set("a", &models.CatalogSession{
		ID:        "a",
		CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	store.Set("b", &models.CatalogSession{
		ID:        "b",
		CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	})

	list := store.List()
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("List order wrong: %+v", list)
	}
}

func TestDelete(t *testing.T) {
	store := New()
	session := store.Create(models.CatalogRecord{})
	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Error("Session still present after Delete")
	}
}
