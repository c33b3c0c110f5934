package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/gcs"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func testDBC() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// makeMP3 returns bytes that content sniffing reports as audio/mpeg.
func makeMP3() []byte {
	return append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)
}

// callTrace records the cross-component operation order so tests can assert
// things like "old asset destroyed before new one uploaded". Destroys fan
// out on goroutines during cascade deletes, hence the lock.
type callTrace struct {
	mu  sync.Mutex
	ops []string
}

func (c *callTrace) add(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
}

func (c *callTrace) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ops...)
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

type fakeAssetStore struct {
	trace *callTrace

	mu           sync.Mutex
	uploadCalls  int
	destroyCalls int
	uploadErr    error
	destroyErr   map[string]error

	counter int
}

func newFakeAssetStore(trace *callTrace) *fakeAssetStore {
	return &fakeAssetStore{trace: trace, destroyErr: map[string]error{}}
}

func (f *fakeAssetStore) Upload(_ context.Context, data []byte, folder string, kind gcs.AssetKind) (gcs.AssetRef, error) {
	f.mu.Lock()
	f.uploadCalls++
	f.mu.Unlock()
	f.trace.add("upload:" + folder)
	if f.uploadErr != nil {
		return gcs.AssetRef{}, f.uploadErr
	}
	if len(data) == 0 {
		return gcs.AssetRef{}, fmt.Errorf("empty payload")
	}
	f.counter++
	key := fmt.Sprintf("%s/obj-%d", folder, f.counter)
	return gcs.AssetRef{URL: "https://cdn.test/" + key, Key: key, Kind: kind}, nil
}

func (f *fakeAssetStore) Destroy(_ context.Context, key string) error {
	f.mu.Lock()
	f.destroyCalls++
	f.mu.Unlock()
	f.trace.add("destroy:" + key)
	if err, ok := f.destroyErr[key]; ok {
		return err
	}
	return nil
}

func (f *fakeAssetStore) destroyed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyCalls
}

func (f *fakeAssetStore) PublicURL(key string) string { return "https://cdn.test/" + key }

// notFoundErr mimics the wrapped already-gone error the real store returns.
func notFoundErr(key string) error {
	return fmt.Errorf("object %q: %w", key, storage.ErrObjectNotExist)
}

type fakeTeachingRepo struct {
	trace *callTrace

	rows      map[uuid.UUID]*types.Teaching
	createErr error

	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeTeachingRepo(trace *callTrace) *fakeTeachingRepo {
	return &fakeTeachingRepo{trace: trace, rows: map[uuid.UUID]*types.Teaching{}}
}

func (f *fakeTeachingRepo) Create(_ dbctx.Context, row *types.Teaching) (*types.Teaching, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeTeachingRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Teaching, error) {
	return f.rows[id], nil
}

func (f *fakeTeachingRepo) ListWithTrackCount(_ dbctx.Context) ([]*types.TeachingWithTrackCount, error) {
	out := make([]*types.TeachingWithTrackCount, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, &types.TeachingWithTrackCount{Teaching: *r})
	}
	return out, nil
}

func (f *fakeTeachingRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	f.updateCalls++
	row, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "title":
			row.Title = v.(string)
		case "preacher":
			row.Preacher = v.(string)
		case "category":
			row.Category = v.(string)
		case "cover_url":
			row.CoverURL = v.(string)
		case "cover_key":
			row.CoverKey = v.(string)
		}
	}
	return 1, nil
}

func (f *fakeTeachingRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	f.deleteCalls++
	f.trace.add("row_delete:teaching")
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeTrackRepo struct {
	trace *callTrace

	rows      []*types.Track
	createErr error

	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeTrackRepo(trace *callTrace) *fakeTrackRepo {
	return &fakeTrackRepo{trace: trace}
}

func (f *fakeTrackRepo) Create(_ dbctx.Context, row *types.Track) (*types.Track, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeTrackRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Track, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeTrackRepo) GetByTeachingID(_ dbctx.Context, teachingID uuid.UUID) ([]*types.Track, error) {
	var out []*types.Track
	for _, r := range f.rows {
		if r.TeachingID == teachingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTrackRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	f.updateCalls++
	for _, r := range f.rows {
		if r.ID != id {
			continue
		}
		for k, v := range updates {
			switch k {
			case "title":
				r.Title = v.(string)
			case "preacher":
				r.Preacher = v.(string)
			case "audio_url":
				r.AudioURL = v.(string)
			case "audio_key":
				r.AudioKey = v.(string)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (f *fakeTrackRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	f.deleteCalls++
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTrackRepo) FullDeleteByTeachingID(_ dbctx.Context, teachingID uuid.UUID) (int64, error) {
	f.trace.add("row_delete:tracks")
	var kept []*types.Track
	var n int64
	for _, r := range f.rows {
		if r.TeachingID == teachingID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

type fakeSoloAudioRepo struct {
	rows      map[uuid.UUID]*types.SoloAudio
	createErr error

	createCalls int
	updateCalls int
}

func newFakeSoloAudioRepo() *fakeSoloAudioRepo {
	return &fakeSoloAudioRepo{rows: map[uuid.UUID]*types.SoloAudio{}}
}

func (f *fakeSoloAudioRepo) Create(_ dbctx.Context, row *types.SoloAudio) (*types.SoloAudio, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeSoloAudioRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.SoloAudio, error) {
	return f.rows[id], nil
}

func (f *fakeSoloAudioRepo) ListNewestFirst(_ dbctx.Context) ([]*types.SoloAudio, error) {
	out := make([]*types.SoloAudio, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSoloAudioRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	f.updateCalls++
	row, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "title":
			row.Title = v.(string)
		case "preacher":
			row.Preacher = v.(string)
		case "audio_url":
			row.AudioURL = v.(string)
		case "audio_key":
			row.AudioKey = v.(string)
		}
	}
	return 1, nil
}

func (f *fakeSoloAudioRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakePosterRepo struct {
	trace *callTrace

	rows      []*types.Poster
	createErr error

	createCalls int
}

func newFakePosterRepo(trace *callTrace) *fakePosterRepo {
	return &fakePosterRepo{trace: trace}
}

func (f *fakePosterRepo) Create(_ dbctx.Context, row *types.Poster) (*types.Poster, error) {
	f.createCalls++
	f.trace.add("row_insert:poster")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC().Add(time.Duration(len(f.rows)) * time.Second)
	}
	// newest first
	f.rows = append([]*types.Poster{row}, f.rows...)
	return row, nil
}

func (f *fakePosterRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Poster, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakePosterRepo) GetNewest(_ dbctx.Context) (*types.Poster, error) {
	if len(f.rows) == 0 {
		return nil, nil
	}
	return f.rows[0], nil
}

func (f *fakePosterRepo) ListNewestFirst(_ dbctx.Context) ([]*types.Poster, error) {
	return append([]*types.Poster(nil), f.rows...), nil
}

func (f *fakePosterRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	f.trace.add("row_delete:poster")
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakePosterRepo) FullDeleteAll(_ dbctx.Context) (int64, error) {
	f.trace.add("row_delete:all_posters")
	n := int64(len(f.rows))
	f.rows = nil
	return n, nil
}

type fakeEventRepo struct {
	rows map[uuid.UUID]*types.Event

	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{rows: map[uuid.UUID]*types.Event{}}
}

func (f *fakeEventRepo) Create(_ dbctx.Context, row *types.Event) (*types.Event, error) {
	f.createCalls++
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeEventRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Event, error) {
	return f.rows[id], nil
}

func (f *fakeEventRepo) ListByCalendarOrder(_ dbctx.Context) ([]*types.Event, error) {
	out := make([]*types.Event, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	f.updateCalls++
	row, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "title":
			row.Title = v.(string)
		case "description":
			row.Description = v.(string)
		case "category":
			row.Category = v.(string)
		case "time":
			row.Time = v.(string)
		case "flyer_url":
			row.FlyerURL = v.(string)
		case "flyer_key":
			row.FlyerKey = v.(string)
		}
	}
	return 1, nil
}

func (f *fakeEventRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	f.deleteCalls++
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeTeachingTextRepo struct {
	rows map[uuid.UUID]*types.TeachingText

	createCalls int
	updateCalls int
}

func newFakeTeachingTextRepo() *fakeTeachingTextRepo {
	return &fakeTeachingTextRepo{rows: map[uuid.UUID]*types.TeachingText{}}
}

func (f *fakeTeachingTextRepo) Create(_ dbctx.Context, row *types.TeachingText) (*types.TeachingText, error) {
	f.createCalls++
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeTeachingTextRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.TeachingText, error) {
	return f.rows[id], nil
}

func (f *fakeTeachingTextRepo) ListNewestFirst(_ dbctx.Context) ([]*types.TeachingText, error) {
	out := make([]*types.TeachingText, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeTeachingTextRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	f.updateCalls++
	row, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	for k, v := range updates {
		switch k {
		case "title":
			row.Title = v.(string)
		case "pastor_name":
			row.PastorName = v.(string)
		case "content":
			row.Content = v.(string)
		}
	}
	return 1, nil
}

func (f *fakeTeachingTextRepo) FullDeleteByID(_ dbctx.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeAdminRepo struct {
	rows map[uuid.UUID]*types.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{rows: map[uuid.UUID]*types.Admin{}}
}

func (f *fakeAdminRepo) Create(_ dbctx.Context, row *types.Admin) (*types.Admin, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeAdminRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Admin, error) {
	return f.rows[id], nil
}

func (f *fakeAdminRepo) GetByUsername(_ dbctx.Context, username string) (*types.Admin, error) {
	for _, r := range f.rows {
		if r.Username == username {
			return r, nil
		}
	}
	return nil, nil
}

type fakeAdminTokenRepo struct {
	rows []*types.AdminToken
}

func newFakeAdminTokenRepo() *fakeAdminTokenRepo {
	return &fakeAdminTokenRepo{}
}

func (f *fakeAdminTokenRepo) Create(_ dbctx.Context, row *types.AdminToken) (*types.AdminToken, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeAdminTokenRepo) GetByAccessToken(_ dbctx.Context, token string) (*types.AdminToken, error) {
	for _, r := range f.rows {
		if r.AccessToken == token {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminTokenRepo) DeleteByAdminID(_ dbctx.Context, adminID uuid.UUID) (int64, error) {
	var kept []*types.AdminToken
	var n int64
	for _, r := range f.rows {
		if r.AdminID == adminID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeAdminTokenRepo) DeleteExpired(_ dbctx.Context) (int64, error) {
	var kept []*types.AdminToken
	var n int64
	now := time.Now().UTC()
	for _, r := range f.rows {
		if r.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}
