package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hiring-blueprint/decision/assessment"
	apperrors "hiring-blueprint/pkg/errors"
)

// MemoryStore is an in-process Store used when no database is configured
// and in tests. It applies the same reconciliation as the SQL upsert.
type MemoryStore struct {
	mu          sync.RWMutex
	progress    map[string]Progress
	assessments map[uuid.UUID]*Assessment
	now         func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		progress:    make(map[string]Progress),
		assessments: make(map[uuid.UUID]*Assessment),
		now:         time.Now,
	}
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) SaveProgress(_ context.Context, p Progress) (Progress, error) {
	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		return Progress{}, apperrors.NewInvalidRequestError("email is required", nil)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = m.now().UTC()
	}
	if p.Responses == nil {
		p.Responses = assessment.Responses{}
	}
	p.Responses = p.Responses.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	var stored *Progress
	if cur, ok := m.progress[p.Email]; ok {
		stored = &cur
	}
	winner, accepted := Reconcile(stored, p)
	if !accepted {
		return Progress{}, apperrors.NewStaleProgressError(p.Email)
	}
	m.progress[p.Email] = winner
	return winner, nil
}

func (m *MemoryStore) GetProgress(_ context.Context, email string) (*Progress, error) {
	email = NormalizeEmail(email)
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[email]
	if !ok {
		return nil, apperrors.NewProgressNotFoundError(email)
	}
	p.Responses = p.Responses.Clone()
	return &p, nil
}

func (m *MemoryStore) SaveAssessment(_ context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now().UTC()
	}
	cp := *a
	cp.Email = NormalizeEmail(a.Email)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[a.ID] = &cp
	return nil
}

func (m *MemoryStore) GetAssessment(_ context.Context, id uuid.UUID) (*Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
