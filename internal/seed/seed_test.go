package seed

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formulabase/formulactl/internal/formula"
	"github.com/formulabase/formulactl/internal/lg"
)

func TestCatalogIsValid(t *testing.T) {
	formulas := Catalog()
	assert.Len(t, formulas, 15)

	seen := make(map[string]bool)
	for i := range formulas {
		f := formulas[i]
		f.Normalize()
		assert.NoError(t, f.Validate(), "formula %s", f.FormulaID)
		assert.False(t, seen[f.FormulaID], "duplicate formula_id %s", f.FormulaID)
		seen[f.FormulaID] = true
	}
}

func TestCatalogCategories(t *testing.T) {
	counts := make(map[string]int)
	for _, f := range Catalog() {
		counts[f.Category]++
	}
	assert.Equal(t, map[string]int{
		"mechanics":   3,
		"waves":       3,
		"plasma":      3,
		"geometry":    3,
		"mathematics": 3,
	}, counts)
}

// fakeStore records migration calls without a server.
type fakeStore struct {
	created    []string
	createErr  map[string]error
	deleteErr  error
	categories []string
}

func (s *fakeStore) Create(_ context.Context, f *formula.Formula) error {
	if err := s.createErr[f.FormulaID]; err != nil {
		return err
	}
	s.created = append(s.created, f.FormulaID)
	return nil
}

func (s *fakeStore) DeleteAll(context.Context) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	return 2, nil
}

func (s *fakeStore) Count(_ context.Context, category string) (int64, error) {
	if category == "" {
		return int64(len(s.created)), nil
	}
	return 0, nil
}

func (s *fakeStore) Categories(context.Context) ([]string, error) {
	return s.categories, nil
}

func TestRunInsertsWholeCatalog(t *testing.T) {
	store := &fakeStore{categories: []string{"mechanics", "waves"}}
	var out bytes.Buffer

	report, err := Run(context.Background(), store, &out, lg.Discard)

	assert.NoError(t, err)
	assert.Equal(t, 15, report.Inserted)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, int64(2), report.Deleted)
	assert.Len(t, store.created, 15)
	assert.Contains(t, out.String(), "Migration complete")
}

func TestRunCountsPerItemFailures(t *testing.T) {
	store := &fakeStore{
		createErr: map[string]error{"momentum": errors.New("boom")},
	}
	var out bytes.Buffer

	report, err := Run(context.Background(), store, &out, lg.Discard)

	assert.NoError(t, err)
	assert.Equal(t, 14, report.Inserted)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, out.String(), "Failed to insert momentum")
}

func TestRunFailsWhenClearFails(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("no connection")}
	var out bytes.Buffer

	report, err := Run(context.Background(), store, &out, lg.Discard)

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Empty(t, store.created)
}
