package identity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	roles := []Role{RoleGuest, RoleUser, RoleAdmin, RoleSuperadmin}

	// The grant rule is rank(actual) >= rank(required) over the fixed table.
	for i, actual := range roles {
		for j, required := range roles {
			t.Run(fmt.Sprintf("%s_requires_%s", actual, required), func(t *testing.T) {
				assert.Equal(t, i >= j, Allows(actual, required))
			})
		}
	}
}

func TestUnknownRoleDefaults(t *testing.T) {
	t.Run("UnknownActualIsGuest", func(t *testing.T) {
		assert.Equal(t, 0, Rank(Role("operator")))
		assert.False(t, Allows(Role("operator"), RoleUser))
		assert.True(t, Allows(Role("operator"), RoleGuest))
	})

	t.Run("UnknownRequiredIsUser", func(t *testing.T) {
		assert.Equal(t, 1, RequiredRank(Role("maintainer")))
		assert.True(t, Allows(RoleUser, Role("maintainer")))
		assert.False(t, Allows(RoleGuest, Role("maintainer")))
	})
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleGuest, ParseRole(""))
	assert.Equal(t, RoleGuest, ParseRole("root"))
}
