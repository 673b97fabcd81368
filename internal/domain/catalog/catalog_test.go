package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLists_Sizes(t *testing.T) {
	require.Len(t, Departments(), 34)
	require.Len(t, AcademicLevels(), 10)
}

func TestMembership(t *testing.T) {
	assert.True(t, IsDepartment("CUNDINAMARCA"))
	assert.True(t, IsDepartment("OTRO"))
	assert.True(t, IsDepartment("NARIÑO"))
	assert.False(t, IsDepartment("cundinamarca"), "membership is case-sensitive")
	assert.False(t, IsDepartment("FLORIDA"))

	assert.True(t, IsAcademicLevel("Pregrado"))
	assert.True(t, IsAcademicLevel("Técnico"))
	assert.False(t, IsAcademicLevel("pregrado"))
	assert.False(t, IsAcademicLevel("PhD"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := Departments()
	d[0] = "MUTATED"
	assert.Equal(t, "AMAZONAS", Departments()[0])

	a := AcademicLevels()
	a[0] = "MUTATED"
	assert.Equal(t, "Bachiller", AcademicLevels()[0])
}
