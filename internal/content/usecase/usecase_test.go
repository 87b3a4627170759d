package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type entryKey struct {
	kind entity.Kind
	id   int64
}

type fakeDB struct {
	mu      sync.Mutex
	entries map[entryKey]entity.Entry
	options entity.Options
	err     error
}

func (f *fakeDB) ListEntries(_ context.Context, kind entity.Kind) ([]entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Entry
	for k, e := range f.entries {
		if k.kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeDB) GetEntry(_ context.Context, kind entity.Kind, id int64) (*entity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryKey{kind, id}]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &e, nil
}

func (f *fakeDB) CreateEntry(_ context.Context, e entity.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entryKey{e.Kind, e.ID}] = e
	return nil
}

func (f *fakeDB) UpdateEntry(_ context.Context, e entity.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entryKey{e.Kind, e.ID}] = e
	return nil
}

func (f *fakeDB) DeleteEntry(_ context.Context, kind entity.Kind, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[entryKey{kind, id}]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.entries, entryKey{kind, id})
	return nil
}

func (f *fakeDB) GetOptions(context.Context) (entity.Options, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := entity.Options{}
	for k, v := range f.options {
		out[k] = v
	}
	return out, f.err
}

func (f *fakeDB) SaveOptions(_ context.Context, opts entity.Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options = opts
	return nil
}

type numGen int64

func (g numGen) Generate() int64 { return int64(g) }

func newUsecase(t *testing.T) (*Usecase, *fakeDB, *storage.Memory) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	enf, err := rbac.Load([]byte(`
roles:
  admin:
    allow:
      - {obj: content, act: read}
      - {obj: content, act: write}
`))
	require.NoError(t, err)

	db := &fakeDB{entries: map[entryKey]entity.Entry{}, options: entity.Options{}}
	store := storage.NewMemory("https://cdn.talentflow.pt")

	return New(Dependency{
		RepoDB:     db,
		Storage:    store,
		Validator:  v,
		Enforcer:   enf,
		UID:        numGen(42),
		Clock:      clock.Fixed(now),
		Instrument: instrument.NewNoop(),
	}), db, store
}

func as(userType string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 1, UserType: userType})
}

func TestUsecase_GetMeta(t *testing.T) {
	t.Parallel()

	uc, _, _ := newUsecase(t)

	meta, err := uc.GetMeta(as("admin"))
	require.NoError(t, err)
	assert.Equal(t, "Empresas Parceiras", meta.Sections["partners"])
	assert.True(t, meta.EmptyForms[entity.KindIndustry].Active)

	_, err = uc.GetMeta(as("company"))
	assert.True(t, goerror.IsCode(err, goerror.CodeForbidden))
}

func TestUsecase_Entries(t *testing.T) {
	t.Parallel()

	uc, db, _ := newUsecase(t)
	ctx := as("admin")

	list, err := uc.ListEntries(ctx, entity.KindPartner)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	e, err := uc.CreateEntry(ctx, EntryInput{
		Kind:   entity.KindPartner,
		Name:   "  Hotel Atlântico ",
		URL:    "https://atlantico.pt",
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, "Hotel Atlântico", e.Name)
	assert.Equal(t, now, e.CreatedAt)

	_, err = uc.CreateEntry(ctx, EntryInput{Kind: entity.KindPartner, Name: " ", URL: "notaurl"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))
	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "name")
	assert.Contains(t, verr, "url")

	_, err = uc.CreateEntry(ctx, EntryInput{Kind: "hero", Name: "x"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidFormat))

	up, err := uc.UpdateEntry(ctx, UpdateEntryInput{ID: 42, EntryInput: EntryInput{Kind: entity.KindPartner, Name: "Atlântico"}})
	require.NoError(t, err)
	assert.False(t, up.Active)
	assert.Equal(t, "Atlântico", db.entries[entryKey{entity.KindPartner, 42}].Name)

	_, err = uc.UpdateEntry(ctx, UpdateEntryInput{ID: 42, EntryInput: EntryInput{Kind: entity.KindIndustry, Name: "x"}})
	assert.True(t, goerror.IsCode(err, goerror.CodeNotFound))

	require.NoError(t, uc.DeleteEntry(ctx, entity.KindPartner, 42))
	assert.True(t, goerror.IsCode(uc.DeleteEntry(ctx, entity.KindPartner, 42), goerror.CodeNotFound))

	_, err = uc.CreateEntry(as("employee"), EntryInput{Kind: entity.KindPartner, Name: "x"})
	assert.True(t, goerror.IsCode(err, goerror.CodeForbidden))

	db.err = errors.New("connection reset")
	_, err = uc.ListEntries(ctx, entity.KindIndustry)
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.TypeServer, gerr.Type())
}

func TestUsecase_Options(t *testing.T) {
	t.Parallel()

	uc, db, _ := newUsecase(t)
	ctx := as("admin")
	db.options = entity.Options{entity.OptionCompetences: {"Inglês"}}

	opts, err := uc.GetOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, opts, len(entity.OptionNames))
	assert.Equal(t, []string{}, opts[entity.OptionFunctions])
	assert.Equal(t, []string{"Inglês"}, opts[entity.OptionCompetences])

	opts, err = uc.UpdateOptions(ctx, entity.Options{
		entity.OptionFunctions: {" Cozinheiro ", "", "Cozinheiro", "Barman"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cozinheiro", "Barman"}, opts[entity.OptionFunctions])
	assert.Equal(t, []string{"Inglês"}, opts[entity.OptionCompetences])
	assert.Equal(t, []string{"Cozinheiro", "Barman"}, db.options[entity.OptionFunctions])

	_, err = uc.UpdateOptions(ctx, entity.Options{"weekly_tips": {"x"}})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))
}

func TestUsecase_UploadImage(t *testing.T) {
	t.Parallel()

	uc, _, store := newUsecase(t)
	ctx := as("admin")

	obj, err := uc.UploadImage(ctx, UploadImageInput{
		Folder:      "partners",
		Filename:    "Logo Atlântico.PNG",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "content/partners/42-"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "https://cdn.talentflow.pt/"+obj.Key, obj.URL)
	b, ok := store.Get(obj.Key)
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(b))

	_, err = uc.UploadImage(ctx, UploadImageInput{Folder: "partners", Filename: "a.pdf", ContentType: "application/pdf", Body: strings.NewReader("x")})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	_, err = uc.UploadImage(ctx, UploadImageInput{Folder: "tips", Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("x")})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	_, err = uc.UploadImage(ctx, UploadImageInput{
		Folder:      "hero",
		Filename:    "big.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader(strings.Repeat("x", maxImageBytes+1)),
	})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Image must be at most 5 MB", gerr.Fields()["file"])
}
