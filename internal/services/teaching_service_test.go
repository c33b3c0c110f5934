package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
)

func TestTeachingCreateRequiresFields(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), store)

	_, err := svc.Create(testDBC(), CreateTeachingInput{Title: "x"})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if teachings.createCalls != 0 {
		t.Fatalf("create calls: want=0 got=%d", teachings.createCalls)
	}
}

func TestTeachingCreateRejectsHalfCoverPair(t *testing.T) {
	trace := &callTrace{}
	svc := NewTeachingService(testLogger(t), newFakeTeachingRepo(trace), newFakeTrackRepo(trace), newFakeAssetStore(trace))

	_, err := svc.Create(testDBC(), CreateTeachingInput{
		Title:    "Graça",
		Preacher: "Pr. Silva",
		Category: "domingo",
		CoverURL: "https://cdn.test/covers/x.jpg",
	})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTeachingCreateWithInlineCoverUploadsFirst(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), store)

	created, err := svc.Create(testDBC(), CreateTeachingInput{
		Title:    "Graça",
		Preacher: "Pr. Silva",
		Category: "domingo",
		Cover:    makePNG(t, 60, 60),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if store.uploadCalls != 1 {
		t.Fatalf("upload calls: want=1 got=%d", store.uploadCalls)
	}
	if !strings.HasPrefix(created.CoverKey, "covers/") || created.CoverURL == "" {
		t.Fatalf("cover not attached: url=%q key=%q", created.CoverURL, created.CoverKey)
	}
}

func TestTeachingCreateRejectsCoverFilePlusPair(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), store)

	_, err := svc.Create(testDBC(), CreateTeachingInput{
		Title:    "Graça",
		Preacher: "Pr. Silva",
		Category: "domingo",
		CoverURL: "https://cdn.test/covers/x.jpg",
		CoverKey: "covers/x.jpg",
		Cover:    makePNG(t, 60, 60),
	})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.uploadCalls != 0 || teachings.createCalls != 0 {
		t.Fatalf("side effects on validation failure: upload=%d insert=%d", store.uploadCalls, teachings.createCalls)
	}
}

func TestTeachingGetWithTracksEmptyIsNotNull(t *testing.T) {
	trace := &callTrace{}
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), newFakeAssetStore(trace))

	id := uuid.New()
	teachings.rows[id] = &types.Teaching{ID: id, Title: "t", Preacher: "p", Category: "c"}

	detail, err := svc.GetWithTracks(testDBC(), id)
	if err != nil {
		t.Fatalf("GetWithTracks: %v", err)
	}
	// A teaching without tracks serializes as "tracks": [], not null.
	if detail.Tracks == nil || len(detail.Tracks) != 0 {
		t.Fatalf("tracks: want empty slice, got %#v", detail.Tracks)
	}
}

func TestTeachingUploadCoverRejectsNonImage(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	svc := NewTeachingService(testLogger(t), newFakeTeachingRepo(trace), newFakeTrackRepo(trace), store)

	_, err := svc.UploadCover(testDBC().Ctx, []byte("definitely not an image"))
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.uploadCalls != 0 {
		t.Fatalf("upload calls: want=0 got=%d", store.uploadCalls)
	}
}

func TestTeachingUploadCoverNormalizesAndUploads(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	svc := NewTeachingService(testLogger(t), newFakeTeachingRepo(trace), newFakeTrackRepo(trace), store)

	ref, err := svc.UploadCover(testDBC().Ctx, makePNG(t, 80, 40))
	if err != nil {
		t.Fatalf("UploadCover: %v", err)
	}
	if !strings.HasPrefix(ref.Key, "covers/") {
		t.Fatalf("key folder: got=%q", ref.Key)
	}
	if store.uploadCalls != 1 {
		t.Fatalf("upload calls: want=1 got=%d", store.uploadCalls)
	}
}

func TestTeachingUpdateDestroysOldCoverBeforeUploadingNew(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), store)

	id := uuid.New()
	teachings.rows[id] = &types.Teaching{
		ID:       id,
		Title:    "Graça",
		Preacher: "Pr. Silva",
		Category: "domingo",
		CoverURL: "https://cdn.test/covers/old",
		CoverKey: "covers/old",
	}

	updated, err := svc.Update(testDBC(), id, UpdateTeachingInput{NewCover: makePNG(t, 60, 60)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	ops := trace.snapshot()
	di := indexOf(ops, "destroy:covers/old")
	ui := indexOf(ops, "upload:covers")
	if di == -1 || ui == -1 || di > ui {
		t.Fatalf("destroy-old must precede upload-new: ops=%v", ops)
	}
	if updated.CoverKey == "covers/old" || updated.CoverKey == "" {
		t.Fatalf("cover key not swapped: %q", updated.CoverKey)
	}
}

func TestTeachingUpdateDestroyFailureIsNotFatal(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	store.destroyErr["covers/old"] = errors.New("storage exploded")
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), store)

	id := uuid.New()
	teachings.rows[id] = &types.Teaching{
		ID: id, Title: "t", Preacher: "p", Category: "c",
		CoverURL: "https://cdn.test/covers/old", CoverKey: "covers/old",
	}

	if _, err := svc.Update(testDBC(), id, UpdateTeachingInput{NewCover: makePNG(t, 60, 60)}); err != nil {
		t.Fatalf("Update should survive a failed destroy: %v", err)
	}
}

func TestTeachingUpdateNoOp(t *testing.T) {
	trace := &callTrace{}
	teachings := newFakeTeachingRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, newFakeTrackRepo(trace), newFakeAssetStore(trace))

	id := uuid.New()
	teachings.rows[id] = &types.Teaching{ID: id, Title: "t", Preacher: "p", Category: "c"}

	_, err := svc.Update(testDBC(), id, UpdateTeachingInput{})
	if !apierr.IsCode(err, apierr.CodeNoOp) {
		t.Fatalf("expected no-op error, got %v", err)
	}
	if teachings.updateCalls != 0 {
		t.Fatalf("update calls: want=0 got=%d", teachings.updateCalls)
	}
}

func TestTeachingUpdateNotFound(t *testing.T) {
	trace := &callTrace{}
	svc := NewTeachingService(testLogger(t), newFakeTeachingRepo(trace), newFakeTrackRepo(trace), newFakeAssetStore(trace))

	title := "x"
	_, err := svc.Update(testDBC(), uuid.New(), UpdateTeachingInput{Title: &title})
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTeachingDeleteCascadesAllAssetsAndRows(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	teachings := newFakeTeachingRepo(trace)
	tracks := newFakeTrackRepo(trace)
	svc := NewTeachingService(testLogger(t), teachings, tracks, store)

	id := uuid.New()
	teachings.rows[id] = &types.Teaching{
		ID: id, Title: "Série", Preacher: "p", Category: "serie",
		CoverURL: "https://cdn.test/covers/c", CoverKey: "covers/c",
	}
	for _, key := range []string{"audios/a1", "audios/a2", "audios/a3"} {
		tracks.rows = append(tracks.rows, &types.Track{
			ID: uuid.New(), TeachingID: id, Title: "Parte",
			AudioURL: "https://cdn.test/" + key, AudioKey: key,
		})
	}
	// One hard failure and one already-gone object must not stop the rest.
	store.destroyErr["audios/a2"] = errors.New("storage exploded")
	store.destroyErr["audios/a3"] = notFoundErr("audios/a3")

	if err := svc.Delete(testDBC(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := store.destroyed(); got != 4 {
		t.Fatalf("destroy calls: want=4 got=%d", got)
	}
	ops := trace.snapshot()
	ti := indexOf(ops, "row_delete:tracks")
	pi := indexOf(ops, "row_delete:teaching")
	if ti == -1 || pi == -1 || ti > pi {
		t.Fatalf("tracks must be removed before the teaching: ops=%v", ops)
	}
	for i, op := range ops {
		if strings.HasPrefix(op, "destroy:") && i > ti {
			t.Fatalf("destroy after row removal: ops=%v", ops)
		}
	}
	if len(tracks.rows) != 0 || len(teachings.rows) != 0 {
		t.Fatalf("rows left behind: tracks=%d teachings=%d", len(tracks.rows), len(teachings.rows))
	}
}

func TestTeachingDeleteNotFound(t *testing.T) {
	trace := &callTrace{}
	store := newFakeAssetStore(trace)
	svc := NewTeachingService(testLogger(t), newFakeTeachingRepo(trace), newFakeTrackRepo(trace), store)

	err := svc.Delete(testDBC(), uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.destroyed() != 0 {
		t.Fatalf("destroy calls: want=0 got=%d", store.destroyed())
	}
}
