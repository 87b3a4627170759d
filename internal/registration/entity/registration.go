package entity

import (
	"sync"
	"time"

	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/wizard"
)

const (
	StepCredentials = 1
	StepPersonal    = 2
	StepPreferences = 3
	StepVerify      = 4

	TotalSteps = StepVerify

	// CodeLength is the number of digits of a registration code.
	CodeLength = 6
)

type Credentials struct {
	Email        string
	PasswordHash string
}

type Personal struct {
	FirstName string
	LastName  string
	Phone     string
	BirthDate time.Time
}

type Preferences struct {
	Functions       []string
	Competences     []string
	GeoAreas        []string
	ActivitySectors []string
}

type NewEmployee struct {
	ID           int64
	Email        string
	PasswordHash string
	Personal     Personal
	Preferences  Preferences
}

// AccountUpdate carries the step 1 and 2 data of an account that is still
// waiting for its verification code.
type AccountUpdate struct {
	PasswordHash string
	Personal     Personal
}

type PendingAccount struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// Session is the server side state of one employee registration wizard.
type Session struct {
	ID      string
	Tracker *wizard.Tracker

	mu          sync.Mutex
	path        string
	flow        *otpflow.Flow
	credentials *Credentials
	personal    *Personal
	preferences *Preferences
	accountID   int64
	code        string
}

// NewSession creates a session whose tracker records navigation into the
// session itself.
func NewSession(id string) *Session {
	s := &Session{ID: id, path: wizard.EmployeeRegisterPath(StepCredentials)}
	s.Tracker = wizard.New(wizard.NavigatorFunc(s.navigate))
	return s
}

func (s *Session) navigate(path string) {
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
}

// Path is the route the wizard last navigated to.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *Session) Flow() *otpflow.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow
}

// SetFlow installs f unless a flow is already open. It returns the open flow.
func (s *Session) SetFlow(f *otpflow.Flow) *otpflow.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow == nil {
		s.flow = f
	}
	return s.flow
}

func (s *Session) SetCredentials(c Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = &c
}

func (s *Session) Credentials() (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credentials == nil {
		return Credentials{}, false
	}
	return *s.credentials, true
}

func (s *Session) SetPersonal(p Personal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.personal = &p
}

func (s *Session) Personal() (Personal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.personal == nil {
		return Personal{}, false
	}
	return *s.personal, true
}

func (s *Session) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = &p
}

func (s *Session) Preferences() (Preferences, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preferences == nil {
		return Preferences{}, false
	}
	return *s.preferences, true
}

func (s *Session) SetAccountID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = id
}

func (s *Session) AccountID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID
}

// SetCode stores the verified code as part of the step data.
func (s *Session) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}

func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Close stops the verification prompt, if one is open.
func (s *Session) Close() {
	if f := s.Flow(); f != nil {
		f.Close()
	}
}
