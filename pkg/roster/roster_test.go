package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// mockSource implements Source for testing
type mockSource struct {
	employees []model.Employee
	err       error
	calls     int
}

func (m *mockSource) GetEmployees(ctx context.Context, department string) ([]model.Employee, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.employees, nil
}

var (
	from = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to   = from.AddDate(0, 0, 7)
)

func TestActiveEmployees_NilCacheReadsSource(t *testing.T) {
	source := &mockSource{employees: []model.Employee{{ID: "alice"}, {ID: "bob"}}}
	provider := New(source, nil, time.Minute, zap.NewNop())

	employees, err := provider.ActiveEmployees(context.Background(), from, to, "")
	require.NoError(t, err)
	assert.Len(t, employees, 2)
	assert.Equal(t, 1, source.calls)

	// Every read goes to the source when caching is disabled
	_, err = provider.ActiveEmployees(context.Background(), from, to, "")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestActiveEmployees_SourceErrorPropagates(t *testing.T) {
	source := &mockSource{err: errors.New("connection refused")}
	provider := New(source, nil, time.Minute, zap.NewNop())

	_, err := provider.ActiveEmployees(context.Background(), from, to, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch roster")
}

func TestInvalidate_NilCacheIsNoop(t *testing.T) {
	provider := New(&mockSource{}, nil, time.Minute, zap.NewNop())
	provider.Invalidate(context.Background(), from, to, "warehouse")
}

func TestCacheKey_IncludesRangeAndDepartment(t *testing.T) {
	key := cacheKey(from, to, "warehouse")
	assert.Equal(t, "shiftwise:roster:warehouse:2026-03-02:2026-03-09", key)

	assert.NotEqual(t, key, cacheKey(from, to, ""))
	assert.NotEqual(t, key, cacheKey(from.AddDate(0, 0, 7), to.AddDate(0, 0, 7), "warehouse"))
}
