package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

const goodCode = "123456"

type fakeDB struct {
	mu        sync.Mutex
	existing  map[string]bool
	pending   map[string]*entity.PendingAccount
	created   []entity.NewEmployee
	updated   map[int64]entity.Preferences
	accounts  map[int64]entity.AccountUpdate
	activated []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		existing: map[string]bool{},
		pending:  map[string]*entity.PendingAccount{},
		updated:  map[int64]entity.Preferences{},
		accounts: map[int64]entity.AccountUpdate{},
	}
}

func (f *fakeDB) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing[email], nil
}

func (f *fakeDB) GetPendingAccount(_ context.Context, email string) (*entity.PendingAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.pending[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return acc, nil
}

func (f *fakeDB) CreateEmployee(_ context.Context, in entity.NewEmployee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	f.existing[in.Email] = true
	f.pending[in.Email] = &entity.PendingAccount{ID: in.ID, Email: in.Email, FirstName: in.Personal.FirstName, LastName: in.Personal.LastName}
	f.accounts[in.ID] = entity.AccountUpdate{PasswordHash: in.PasswordHash, Personal: in.Personal}
	return nil
}

func (f *fakeDB) UpdatePendingAccount(_ context.Context, id int64, in entity.AccountUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.pending {
		if acc.ID == id {
			acc.FirstName, acc.LastName = in.Personal.FirstName, in.Personal.LastName
			f.accounts[id] = in
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) account(id int64) entity.AccountUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id]
}

func (f *fakeDB) UpdatePreferences(_ context.Context, id int64, p entity.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = p
	return nil
}

func (f *fakeDB) ActivateAccount(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[email]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.pending, email)
	f.activated = append(f.activated, email)
	return nil
}

type fakeMQ struct {
	mu     sync.Mutex
	events []VerificationCodeIssuedEvent
}

func (f *fakeMQ) PublishVerificationCodeIssued(_ context.Context, msg VerificationCodeIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMQ) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeCodes struct{}

func (fakeCodes) Issue(_ context.Context, _ verification.Purpose, _ string, digits int) (verification.Code, error) {
	return verification.Code{Value: goodCode, Digits: digits, ExpiresAt: now.Add(10 * time.Minute)}, nil
}

func (fakeCodes) Verify(_ context.Context, _ verification.Purpose, _, code string) error {
	if code != goodCode {
		return verification.ErrInvalidCode
	}
	return nil
}

type idGen string

func (g idGen) Generate() string { return string(g) }

type numGen int64

func (g numGen) Generate() int64 { return int64(g) }

type idleTicker struct{ c chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.c }
func (idleTicker) Stop()                 {}

type fixture struct {
	uc *Usecase
	db *fakeDB
	mq *fakeMQ
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	db := newFakeDB()
	mq := &fakeMQ{}

	return &fixture{
		uc: New(Dependency{
			RepoDB:        db,
			RepoMessaging: mq,
			Codes:         fakeCodes{},
			Sessions: session.New[*entity.Session](session.Config{
				Name:  "registration",
				TTL:   time.Hour,
				Clock: clock.Fixed(now),
				UUID:  idGen("sess-1"),
			}),
			Validator:  v,
			Bcrypt:     hash.NewBcrypt(4, ""),
			UID:        numGen(77),
			Clock:      clock.Fixed(now),
			Instrument: instrument.NewNoop(),
			NewTicker: func(time.Duration) otpflow.Ticker {
				return idleTicker{c: make(chan time.Time)}
			},
		}),
		db: db,
		mq: mq,
	}
}

// walk runs steps 1 to 3 and returns the session id.
func (f *fixture) walk(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	p, err := f.uc.CreateSession(ctx)
	require.NoError(t, err)
	id := p.SessionID

	_, err = f.uc.SubmitCredentials(ctx, CredentialsInput{
		SessionID:       id,
		Email:           " Ana@Example.com",
		Password:        "Segredo123!",
		ConfirmPassword: "Segredo123!",
	})
	require.NoError(t, err)

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{
		SessionID: id,
		FirstName: "Ana",
		LastName:  "Silva",
		Phone:     "912345678",
		BirthDate: "1990-04-25",
	})
	require.NoError(t, err)

	_, err = f.uc.SubmitPreferences(ctx, PreferencesInput{
		SessionID:   id,
		Functions:   []string{" Rececionista ", "Rececionista", ""},
		Competences: []string{"Inglês"},
	})
	require.NoError(t, err)

	return id
}

func TestWizard_HappyPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	p, err := f.uc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, p.CompletedSteps)
	assert.Equal(t, "/employee-register/step4", p.CurrentPath)
	assert.Equal(t, "ana@example.com", p.Data.Email)
	assert.Equal(t, "Ana Silva", p.Data.DisplayName)
	assert.Equal(t, "25/04/1990", p.Data.BirthDate)
	assert.Equal(t, []string{"Rececionista"}, p.Data.Functions)
	require.NotNil(t, p.OTP)
	assert.Equal(t, "an***@example.com", p.OTP.MaskedEmail)
	assert.Equal(t, entity.CodeLength, p.OTP.Length)

	require.Len(t, f.db.created, 1)
	assert.Equal(t, int64(77), f.db.created[0].ID)
	assert.NotEqual(t, "Segredo123!", f.db.created[0].PasswordHash)
	require.Equal(t, 1, f.mq.count())
	assert.Equal(t, "Ana Silva", f.mq.events[0].Name)
	assert.Equal(t, goodCode, f.mq.events[0].Code)

	out, err := f.uc.OTPPaste(ctx, OTPPasteInput{SessionID: id, Text: "123-456"})
	require.NoError(t, err)
	assert.True(t, out.Progress.OTP.Complete)

	res, err := f.uc.OTPSubmit(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, []int{1, 2, 3, 4}, res.Progress.CompletedSteps)
	assert.Equal(t, goodCode, res.Progress.Data.Code)
	assert.Equal(t, []string{"ana@example.com"}, f.db.activated)
}

func TestWizard_StepsAreGated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	p, err := f.uc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{SessionID: p.SessionID, FirstName: "Ana", LastName: "Silva", Phone: "912345678", BirthDate: "1990-04-25"})
	assert.True(t, goerror.IsCode(err, goerror.CodeForbidden))

	_, err = f.uc.SubmitPreferences(ctx, PreferencesInput{SessionID: p.SessionID, Functions: []string{"x"}})
	assert.True(t, goerror.IsCode(err, goerror.CodeForbidden))

	out, err := f.uc.GoToStep(ctx, GoToStepInput{SessionID: p.SessionID, Step: 3})
	require.NoError(t, err)
	assert.False(t, out.Moved)
	assert.Equal(t, "/employee-register/step1", out.Progress.CurrentPath)

	_, err = f.uc.OTPSubmit(ctx, p.SessionID)
	assert.True(t, goerror.IsCode(err, goerror.CodeConflict))
}

func TestWizard_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.db.existing["taken@example.com"] = true

	p, err := f.uc.CreateSession(ctx)
	require.NoError(t, err)
	id := p.SessionID

	_, err = f.uc.SubmitCredentials(ctx, CredentialsInput{SessionID: id, Email: "ana@example.com", Password: "Segredo123!", ConfirmPassword: "outro"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	_, err = f.uc.SubmitCredentials(ctx, CredentialsInput{SessionID: id, Email: "taken@example.com", Password: "Segredo123!", ConfirmPassword: "Segredo123!"})
	assert.True(t, goerror.IsCode(err, goerror.CodeConflict))

	_, err = f.uc.SubmitCredentials(ctx, CredentialsInput{SessionID: id, Email: "ana@example.com", Password: "Segredo123!", ConfirmPassword: "Segredo123!"})
	require.NoError(t, err)

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{SessionID: id, FirstName: "Ana", LastName: "Silva", Phone: "912345678", BirthDate: "2030-01-01"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{SessionID: id, FirstName: "Ana", LastName: "Silva", Phone: "91-23", BirthDate: "1990-01-01"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{SessionID: id, FirstName: "Ana", LastName: "Silva", Phone: "912345678", BirthDate: "1990-01-01"})
	require.NoError(t, err)

	_, err = f.uc.SubmitPreferences(ctx, PreferencesInput{SessionID: id, Functions: []string{" ", ""}})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))
	assert.Empty(t, f.db.created)
}

func TestWizard_WrongCodeKeepsStepOpen(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	for i, d := range "000000" {
		_, err := f.uc.OTPDigit(ctx, OTPDigitInput{SessionID: id, Index: i, Value: string(d)})
		require.NoError(t, err)
	}

	res, err := f.uc.OTPSubmit(ctx, id)
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "Invalid verification code", res.Progress.OTP.Error)
	assert.Equal(t, []int{1, 2, 3}, res.Progress.CompletedSteps)
	assert.Empty(t, f.db.activated)

	out, err := f.uc.OTPKey(ctx, OTPKeyInput{SessionID: id, Index: 3, Key: otpflow.KeyArrowLeft})
	require.NoError(t, err)
	assert.Equal(t, otpflow.Focus{Index: 2, Moved: true}, out.Focus)
}

func TestWizard_ResendCooldown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	res, err := f.uc.OTPResend(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, f.mq.count())
	assert.Equal(t, int(otpflow.DefaultCooldown/time.Second), res.Progress.OTP.Cooldown)
	assert.False(t, res.Progress.OTP.CanResend)

	_, err = f.uc.OTPResend(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, f.mq.count())
}

func TestWizard_RevisitPreferencesUpdatesAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	out, err := f.uc.GoToStep(ctx, GoToStepInput{SessionID: id, Step: entity.StepPreferences})
	require.NoError(t, err)
	assert.True(t, out.Moved)

	_, err = f.uc.SubmitPreferences(ctx, PreferencesInput{SessionID: id, Functions: []string{"Cozinheiro"}})
	require.NoError(t, err)

	assert.Len(t, f.db.created, 1)
	assert.Equal(t, []string{"Cozinheiro"}, f.db.updated[77].Functions)
}

func TestWizard_RevisitEarlierStepsUpdatesPendingAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)
	first := f.db.account(77)

	_, err := f.uc.SubmitCredentials(ctx, CredentialsInput{
		SessionID:       id,
		Email:           "ana@example.com",
		Password:        "OutroSegredo9!",
		ConfirmPassword: "OutroSegredo9!",
	})
	require.NoError(t, err)

	_, err = f.uc.SubmitPersonal(ctx, PersonalInput{
		SessionID: id,
		FirstName: "Beatriz",
		LastName:  "Costa",
		Phone:     "913333333",
		BirthDate: "1991-06-02",
	})
	require.NoError(t, err)

	acc := f.db.account(77)
	assert.NotEqual(t, first.PasswordHash, acc.PasswordHash)
	assert.True(t, f.uc.bcrypt.Verify(acc.PasswordHash, "OutroSegredo9!"))
	assert.Equal(t, "Beatriz", acc.Personal.FirstName)
	assert.Equal(t, "Costa", acc.Personal.LastName)
	assert.Equal(t, "913333333", acc.Personal.Phone)

	_, err = f.uc.SubmitPreferences(ctx, PreferencesInput{SessionID: id, Functions: []string{"Cozinheiro"}})
	require.NoError(t, err)
	assert.Len(t, f.db.created, 1)
	require.Equal(t, 2, f.mq.count())
	assert.Equal(t, "Beatriz Costa", f.mq.events[1].Name)

	p, err := f.uc.SubmitPreferences(ctx, PreferencesInput{SessionID: id, Functions: []string{"Cozinheiro"}})
	require.NoError(t, err)
	assert.Equal(t, 2, f.mq.count())
	assert.Positive(t, p.OTP.Cooldown)
}

func TestWizard_RevisitAfterVerificationIsRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	_, err := f.uc.OTPPaste(ctx, OTPPasteInput{SessionID: id, Text: goodCode})
	require.NoError(t, err)
	res, err := f.uc.OTPSubmit(ctx, id)
	require.NoError(t, err)
	require.True(t, res.Verified)

	_, err = f.uc.SubmitCredentials(ctx, CredentialsInput{
		SessionID:       id,
		Email:           "ana@example.com",
		Password:        "OutroSegredo9!",
		ConfirmPassword: "OutroSegredo9!",
	})
	assert.True(t, goerror.IsCode(err, goerror.CodeConflict))

	c, _ := f.uc.sessions.Get(id)
	cred, _ := c.Credentials()
	assert.True(t, f.uc.bcrypt.Verify(cred.PasswordHash, "Segredo123!"))
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	id := f.walk(t)

	require.NoError(t, f.uc.DeleteSession(ctx, id))

	_, err := f.uc.GetSession(ctx, id)
	assert.True(t, goerror.IsCode(err, goerror.CodeNotFound))
	assert.True(t, goerror.IsCode(f.uc.DeleteSession(ctx, id), goerror.CodeNotFound))
}

func TestVerifyAndResend(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.db.pending["rui@example.com"] = &entity.PendingAccount{ID: 5, Email: "rui@example.com", FirstName: "Rui"}

	require.NoError(t, f.uc.Resend(ctx, ResendInput{Email: "nobody@example.com"}))
	assert.Equal(t, 0, f.mq.count())

	require.NoError(t, f.uc.Resend(ctx, ResendInput{Email: "RUI@example.com"}))
	require.Equal(t, 1, f.mq.count())
	assert.Equal(t, "Rui", f.mq.events[0].Name)

	err := f.uc.Verify(ctx, VerifyInput{Email: "rui@example.com", Code: "12345"})
	assert.True(t, goerror.IsCode(err, goerror.CodeInvalidInput))

	err = f.uc.Verify(ctx, VerifyInput{Email: "rui@example.com", Code: "654321"})
	assert.ErrorIs(t, err, verification.ErrInvalidCode)

	require.NoError(t, f.uc.Verify(ctx, VerifyInput{Email: "rui@example.com", Code: goodCode}))
	assert.Equal(t, []string{"rui@example.com"}, f.db.activated)

	err = f.uc.Verify(ctx, VerifyInput{Email: "rui@example.com", Code: goodCode})
	assert.True(t, goerror.IsCode(err, goerror.CodeNotFound))
}
