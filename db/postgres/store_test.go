package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-blueprint/decision/assessment"
	"hiring-blueprint/decision/policy"
	apperrors "hiring-blueprint/pkg/errors"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestReconcile(t *testing.T) {
	older := Progress{Email: "a@b.c", CurrentStep: 3, UpdatedAt: t0}
	newer := Progress{Email: "a@b.c", CurrentStep: 5, UpdatedAt: t0.Add(time.Minute)}

	got, ok := Reconcile(nil, older)
	assert.True(t, ok)
	assert.Equal(t, older, got)

	got, ok = Reconcile(&older, newer)
	assert.True(t, ok)
	assert.Equal(t, 5, got.CurrentStep)

	got, ok = Reconcile(&newer, older)
	assert.False(t, ok)
	assert.Equal(t, 5, got.CurrentStep)

	tie := older
	tie.CurrentStep = 4
	got, ok = Reconcile(&older, tie)
	assert.True(t, ok)
	assert.Equal(t, 4, got.CurrentStep)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "sam@example.com", NormalizeEmail("  Sam@Example.COM "))
}

func TestMemoryStore_ProgressLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.SaveProgress(ctx, Progress{Email: "Sam@Example.com", CurrentStep: 4, UpdatedAt: t0.Add(time.Hour)})
	require.NoError(t, err)

	_, err = s.SaveProgress(ctx, Progress{Email: "sam@example.com", CurrentStep: 2, UpdatedAt: t0})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStaleProgress, apperrors.Code(err))

	got, err := s.GetProgress(ctx, "SAM@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStep)
	assert.NotNil(t, got.Responses)
}

func TestMemoryStore_ProgressErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetProgress(ctx, "nobody@example.com")
	assert.Equal(t, apperrors.ErrCodeProgressNotFound, apperrors.Code(err))

	_, err = s.SaveProgress(ctx, Progress{Email: "  "})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.Code(err))
}

func TestMemoryStore_StampsAndIsolates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.now = func() time.Time { return t0 }

	r := assessment.Responses{assessment.QCategory: "Other"}
	saved, err := s.SaveProgress(ctx, Progress{Email: "a@b.c", Responses: r})
	require.NoError(t, err)
	assert.Equal(t, t0, saved.UpdatedAt)

	r[assessment.QCategory] = "changed"
	got, err := s.GetProgress(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "Other", got.Responses.String(assessment.QCategory))
}

func TestMemoryStore_ConcurrentWritesKeepNewest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			_, _ = s.SaveProgress(ctx, Progress{Email: "a@b.c", CurrentStep: step, UpdatedAt: t0.Add(time.Duration(step) * time.Second)})
		}(i)
	}
	wg.Wait()

	got, err := s.GetProgress(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 49, got.CurrentStep)
}

func TestMemoryStore_Assessments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r := assessment.Responses{
		assessment.QCategory:     "SaaS / B2B Tool",
		assessment.QCoreFeatures: []any{"user_auth"},
		assessment.QContact:      map[string]any{"email": "Lead@Example.com", "project_name": "Ledger"},
	}
	rep := assessment.NewEngine(policy.Default()).Evaluate(r)
	a, err := NewAssessment(r, rep)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "lead@example.com", a.Email)
	assert.Equal(t, rep.Estimate.BudgetMin, a.BudgetMin)
	assert.NotEmpty(t, a.Report)

	require.NoError(t, s.SaveAssessment(ctx, a))
	got, err := s.GetAssessment(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ledger", got.ProjectName)
	assert.Equal(t, string(rep.Result.Route), got.Route)

	missing, err := s.GetAssessment(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
