package domain_test

import (
	"os"
	"testing"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDepartmentsMatchSeedMigration(t *testing.T) {
	raw, err := os.ReadFile("../../../migrations/000002_seed_departments.up.sql")
	require.NoError(t, err)
	seed := string(raw)

	seen := map[string]bool{}
	for _, d := range domain.DefaultDepartments() {
		assert.False(t, seen[d.DepartmentID], "duplicate department %s", d.DepartmentID)
		seen[d.DepartmentID] = true
		assert.Contains(t, seed, "'"+d.DepartmentID+"'")
		assert.Contains(t, seed, "'"+d.Name+"'")
	}
}
