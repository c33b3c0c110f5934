package media

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/igrejaviva/media-backend/internal/data/repos/testutil"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
)

func TestTrackRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	teachings := NewTeachingRepo(db, testutil.Logger(t))
	repo := NewTrackRepo(db, testutil.Logger(t))

	parent := &types.Teaching{
		ID:       uuid.New(),
		Title:    "Série",
		Preacher: "Pr. Lima",
		Category: "serie",
		CoverURL: "https://example.com/c.jpg",
		CoverKey: "covers/c.jpg",
	}
	if _, err := teachings.Create(dbc, parent); err != nil {
		t.Fatalf("seed teaching: %v", err)
	}

	now := time.Now().UTC()
	older := &types.Track{
		ID:         uuid.New(),
		TeachingID: parent.ID,
		Title:      "Parte 1",
		Preacher:   parent.Preacher,
		AudioURL:   "https://example.com/1.mp3",
		AudioKey:   "audios/1.mp3",
		CreatedAt:  now.Add(-time.Hour),
	}
	newer := &types.Track{
		ID:         uuid.New(),
		TeachingID: parent.ID,
		Title:      "Parte 2",
		Preacher:   parent.Preacher,
		AudioURL:   "https://example.com/2.mp3",
		AudioKey:   "audios/2.mp3",
		CreatedAt:  now,
	}
	if _, err := repo.Create(dbc, newer); err != nil {
		t.Fatalf("Create newer: %v", err)
	}
	if _, err := repo.Create(dbc, older); err != nil {
		t.Fatalf("Create older: %v", err)
	}

	got, err := repo.GetByTeachingID(dbc, parent.ID)
	if err != nil {
		t.Fatalf("GetByTeachingID: %v", err)
	}
	if len(got) != 2 || got[0].ID != older.ID || got[1].ID != newer.ID {
		t.Fatalf("GetByTeachingID order wrong: %v", got)
	}

	if got, err := repo.GetByTeachingID(dbc, uuid.New()); err != nil || len(got) != 0 {
		t.Fatalf("GetByTeachingID absent parent: len=%d err=%v", len(got), err)
	}

	if n, err := repo.UpdateFields(dbc, older.ID, map[string]interface{}{"title": "Parte 1 (rev)"}); err != nil || n != 1 {
		t.Fatalf("UpdateFields: n=%d err=%v", n, err)
	}

	if n, err := repo.FullDeleteByID(dbc, newer.ID); err != nil || n != 1 {
		t.Fatalf("FullDeleteByID: n=%d err=%v", n, err)
	}
	if n, err := repo.FullDeleteByTeachingID(dbc, parent.ID); err != nil || n != 1 {
		t.Fatalf("FullDeleteByTeachingID: n=%d err=%v", n, err)
	}
}
