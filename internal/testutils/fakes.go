// Package testutils provides in-memory repository fakes and testify mocks
// for exercising command handlers and sagas without a database.
package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/domain/application"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/intern"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY REPOSITORIES
// The fakes reproduce the persistence semantics command handlers rely on,
// including status-qualified Transition writes.
// ══════════════════════════════════════════════════════════════════════════════

// MemApplicationRepo is an in-memory application.Repository.
type MemApplicationRepo struct {
	mu    sync.Mutex
	items map[string]application.Application
}

// NewMemApplicationRepo creates an empty repository.
func NewMemApplicationRepo() *MemApplicationRepo {
	return &MemApplicationRepo{items: make(map[string]application.Application)}
}

// Seed stores an application directly, bypassing lifecycle checks.
func (r *MemApplicationRepo) Seed(app *application.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[app.ID] = *app
}

func (r *MemApplicationRepo) Create(ctx context.Context, app *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[app.ID]; ok {
		return application.ErrAlreadyExists
	}
	r.items[app.ID] = *app
	return nil
}

func (r *MemApplicationRepo) GetByID(ctx context.Context, id string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *MemApplicationRepo) Update(ctx context.Context, app *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[app.ID]; !ok {
		return application.ErrNotFound
	}
	r.items[app.ID] = *app
	return nil
}

func (r *MemApplicationRepo) Transition(ctx context.Context, app *application.Application, from application.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[app.ID]
	if !ok {
		return application.ErrNotFound
	}
	if stored.Status != from {
		return shared.NewDomainError("application", "Transition", shared.ErrInvalidState,
			"application was concurrently transitioned (current: "+string(stored.Status)+")")
	}
	r.items[app.ID] = *app
	return nil
}

func (r *MemApplicationRepo) ListByUniversity(ctx context.Context, universityID string, opts application.ListOptions) ([]*application.Application, error) {
	return r.list(func(a application.Application) bool { return a.UniversityID == universityID })
}

func (r *MemApplicationRepo) ListByStatus(ctx context.Context, status application.Status, opts application.ListOptions) ([]*application.Application, error) {
	return r.list(func(a application.Application) bool { return a.Status == status })
}

func (r *MemApplicationRepo) list(keep func(application.Application) bool) ([]*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*application.Application
	for _, a := range r.items {
		if keep(a) {
			copied := a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MemCandidateRepo is an in-memory candidate.Repository.
type MemCandidateRepo struct {
	mu    sync.Mutex
	items map[string]candidate.Candidate
}

// NewMemCandidateRepo creates an empty repository.
func NewMemCandidateRepo() *MemCandidateRepo {
	return &MemCandidateRepo{items: make(map[string]candidate.Candidate)}
}

// Seed stores a candidate directly, bypassing lifecycle checks.
func (r *MemCandidateRepo) Seed(c *candidate.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = *c
}

func (r *MemCandidateRepo) Create(ctx context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.StudentID == c.StudentID {
			return candidate.ErrStudentIDTaken
		}
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemCandidateRepo) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, candidate.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *MemCandidateRepo) GetByStudentID(ctx context.Context, studentID string) (*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.StudentID == studentID {
			copied := c
			return &copied, nil
		}
	}
	return nil, candidate.ErrNotFound
}

func (r *MemCandidateRepo) Update(ctx context.Context, c *candidate.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return candidate.ErrNotFound
	}
	for id, existing := range r.items {
		if id != c.ID && existing.StudentID == c.StudentID {
			return candidate.ErrStudentIDTaken
		}
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemCandidateRepo) Transition(ctx context.Context, c *candidate.Candidate, from candidate.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[c.ID]
	if !ok {
		return candidate.ErrNotFound
	}
	if stored.Status != from {
		return shared.NewDomainError("candidate", "Transition", shared.ErrInvalidState,
			"candidate was concurrently transitioned (current: "+string(stored.Status)+")")
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemCandidateRepo) ListByApplication(ctx context.Context, applicationID string) ([]*candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*candidate.Candidate
	for _, c := range r.items {
		if c.ApplicationID == applicationID && !c.Deleted {
			copied := c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemCandidateRepo) CountByApplication(ctx context.Context, applicationID string) (int, error) {
	listed, err := r.ListByApplication(ctx, applicationID)
	return len(listed), err
}

func (r *MemCandidateRepo) ExistsByStudentID(ctx context.Context, studentID, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.items {
		if id != excludeID && c.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// MemInternRepo is an in-memory intern.Repository.
type MemInternRepo struct {
	mu    sync.Mutex
	items map[string]intern.Intern
}

// NewMemInternRepo creates an empty repository.
func NewMemInternRepo() *MemInternRepo {
	return &MemInternRepo{items: make(map[string]intern.Intern)}
}

// Seed stores an intern directly, bypassing lifecycle checks.
func (r *MemInternRepo) Seed(i *intern.Intern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID] = *i
}

func (r *MemInternRepo) Create(ctx context.Context, i *intern.Intern) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.CandidateID == i.CandidateID {
			return intern.ErrAlreadyPromoted
		}
	}
	r.items[i.ID] = *i
	return nil
}

func (r *MemInternRepo) GetByID(ctx context.Context, id string) (*intern.Intern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, intern.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *MemInternRepo) GetByCandidateID(ctx context.Context, candidateID string) (*intern.Intern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.CandidateID == candidateID {
			copied := i
			return &copied, nil
		}
	}
	return nil, intern.ErrNotFound
}

func (r *MemInternRepo) Update(ctx context.Context, i *intern.Intern) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[i.ID]; !ok {
		return intern.ErrNotFound
	}
	r.items[i.ID] = *i
	return nil
}

func (r *MemInternRepo) Transition(ctx context.Context, i *intern.Intern, from intern.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[i.ID]
	if !ok {
		return intern.ErrNotFound
	}
	if stored.Status != from {
		return shared.NewDomainError("intern", "Transition", shared.ErrInvalidState,
			"intern was concurrently transitioned (current: "+string(stored.Status)+")")
	}
	r.items[i.ID] = *i
	return nil
}

func (r *MemInternRepo) ListByStatus(ctx context.Context, status intern.Status, opts intern.ListOptions) ([]*intern.Intern, error) {
	return r.list(func(i intern.Intern) bool { return i.Status == status })
}

func (r *MemInternRepo) ListBySupervisor(ctx context.Context, supervisorID string, opts intern.ListOptions) ([]*intern.Intern, error) {
	return r.list(func(i intern.Intern) bool { return i.SupervisorID == supervisorID })
}

func (r *MemInternRepo) list(keep func(intern.Intern) bool) ([]*intern.Intern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*intern.Intern
	for _, i := range r.items {
		if keep(i) {
			copied := i
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

// MemSubmissionRepo is an in-memory submission.Repository.
type MemSubmissionRepo struct {
	mu    sync.Mutex
	items map[string]submission.Submission
}

// NewMemSubmissionRepo creates an empty repository.
func NewMemSubmissionRepo() *MemSubmissionRepo {
	return &MemSubmissionRepo{items: make(map[string]submission.Submission)}
}

// Seed stores a submission directly, bypassing lifecycle checks.
func (r *MemSubmissionRepo) Seed(s *submission.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
}

func (r *MemSubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *MemSubmissionRepo) GetByID(ctx context.Context, id string) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, submission.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *MemSubmissionRepo) Transition(ctx context.Context, s *submission.Submission, from submission.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[s.ID]
	if !ok {
		return submission.ErrNotFound
	}
	if stored.Status != from {
		return shared.NewDomainError("submission", "Transition", shared.ErrInvalidState,
			"submission was concurrently reviewed (current: "+string(stored.Status)+")")
	}
	r.items[s.ID] = *s
	return nil
}

func (r *MemSubmissionRepo) ListByIntern(ctx context.Context, internID string) ([]*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*submission.Submission
	for _, s := range r.items {
		if s.InternID == internID {
			copied := s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemSubmissionRepo) CountPendingByIntern(ctx context.Context, internID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.items {
		if s.InternID == internID && s.Status == submission.StatusPending {
			n++
		}
	}
	return n, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// ══════════════════════════════════════════════════════════════════════════════

// FakeUnitOfWork binds the in-memory repositories into a command.UnitOfWork.
// Writes go straight to the shared repositories; Commit and Rollback only
// record that they ran, which is enough to assert handler control flow.
type FakeUnitOfWork struct {
	ApplicationRepo *MemApplicationRepo
	CandidateRepo   *MemCandidateRepo
	InternRepo      *MemInternRepo
	SubmissionRepo  *MemSubmissionRepo

	mu         sync.Mutex
	Committed  bool
	RolledBack bool
}

func (u *FakeUnitOfWork) Applications() application.Repository { return u.ApplicationRepo }
func (u *FakeUnitOfWork) Candidates() candidate.Repository     { return u.CandidateRepo }
func (u *FakeUnitOfWork) Interns() intern.Repository           { return u.InternRepo }
func (u *FakeUnitOfWork) Submissions() submission.Repository   { return u.SubmissionRepo }

func (u *FakeUnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Committed = true
	return nil
}

func (u *FakeUnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.Committed {
		u.RolledBack = true
	}
	return nil
}

// FakeUoWFactory hands out units of work over one shared repository set.
type FakeUoWFactory struct {
	ApplicationRepo *MemApplicationRepo
	CandidateRepo   *MemCandidateRepo
	InternRepo      *MemInternRepo
	SubmissionRepo  *MemSubmissionRepo

	mu    sync.Mutex
	Units []*FakeUnitOfWork
}

// NewFakeUoWFactory creates a factory with fresh empty repositories.
func NewFakeUoWFactory() *FakeUoWFactory {
	return &FakeUoWFactory{
		ApplicationRepo: NewMemApplicationRepo(),
		CandidateRepo:   NewMemCandidateRepo(),
		InternRepo:      NewMemInternRepo(),
		SubmissionRepo:  NewMemSubmissionRepo(),
	}
}

func (f *FakeUoWFactory) Begin(ctx context.Context) (command.UnitOfWork, error) {
	uow := &FakeUnitOfWork{
		ApplicationRepo: f.ApplicationRepo,
		CandidateRepo:   f.CandidateRepo,
		InternRepo:      f.InternRepo,
		SubmissionRepo:  f.SubmissionRepo,
	}
	f.mu.Lock()
	f.Units = append(f.Units, uow)
	f.mu.Unlock()
	return uow, nil
}

// LastUnit returns the most recently begun unit of work.
func (f *FakeUoWFactory) LastUnit() *FakeUnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Units) == 0 {
		return nil
	}
	return f.Units[len(f.Units)-1]
}

// ══════════════════════════════════════════════════════════════════════════════
// OUTBOUND PORT DOUBLES
// ══════════════════════════════════════════════════════════════════════════════

// RecordingNotifier captures dispatched notifications.
type RecordingNotifier struct {
	mu   sync.Mutex
	Sent []SentNotification
	Fail bool
}

// SentNotification is one captured notification.
type SentNotification struct {
	Event     string
	Recipient string
	Payload   map[string]any
}

func (n *RecordingNotifier) Send(ctx context.Context, eventName, recipient string, payload map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return context.DeadlineExceeded
	}
	n.Sent = append(n.Sent, SentNotification{Event: eventName, Recipient: recipient, Payload: payload})
	return nil
}

// ByEvent returns captured notifications with the given event name.
func (n *RecordingNotifier) ByEvent(event string) []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []SentNotification
	for _, s := range n.Sent {
		if s.Event == event {
			out = append(out, s)
		}
	}
	return out
}

// RecordingPublisher captures published domain events.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []shared.Event
}

func (p *RecordingPublisher) Publish(event shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

// Types returns the event types in publication order.
func (p *RecordingPublisher) Types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type())
	}
	return out
}

// MockAccountIssuer is a testify mock for command.AccountIssuer.
type MockAccountIssuer struct {
	mock.Mock
}

func (m *MockAccountIssuer) CreateAccount(ctx context.Context, email, role string) (*command.IssuedAccount, error) {
	args := m.Called(ctx, email, role)
	if acc := args.Get(0); acc != nil {
		return acc.(*command.IssuedAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

// SeqIDGenerator yields deterministic sequential identifiers.
type SeqIDGenerator struct {
	mu     sync.Mutex
	Prefix string
	next   int
}

func (g *SeqIDGenerator) GenerateID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return prefix + "-" + itoa(g.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
