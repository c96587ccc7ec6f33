package entity_test

import (
	"testing"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{entity.RoleAdmin, entity.RoleBodeguero, entity.RoleTecnico, entity.RoleCajero} {
		assert.True(t, entity.IsValidRole(r), r)
	}
	assert.False(t, entity.IsValidRole(""))
	assert.False(t, entity.IsValidRole("Admin"))
	assert.False(t, entity.IsValidRole("superuser"))
}
