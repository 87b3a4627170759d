package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policy = `
roles:
  employee:
    allow:
      - {obj: identity.me, act: read}
  company:
    inherits: [employee]
    allow:
      - {obj: company.profile, act: "*"}
  admin:
    allow:
      - {obj: "*", act: "*"}
`

func TestLoad(t *testing.T) {
	t.Parallel()

	e, err := Load([]byte(policy))
	require.NoError(t, err)

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{"employee", "identity.me", "read", true},
		{"employee", "company.profile", "read", false},
		{"company", "company.profile", "write", true},
		{"company", "identity.me", "read", true},
		{"company", "staffing.request", "write", false},
		{"admin", "staffing.request", "write", true},
		{"guest", "identity.me", "read", false},
	}

	for _, tt := range tests {
		ok, err := e.Enforce(tt.sub, tt.obj, tt.act)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "%s %s %s", tt.sub, tt.obj, tt.act)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Load([]byte("roles: {}"))
	assert.ErrorIs(t, err, ErrNoRoles)

	_, err = Load([]byte("roles:\n  a:\n    inherits: [b]\n"))
	assert.ErrorContains(t, err, `inherits unknown role "b"`)

	_, err = Load([]byte("roles:\n  a:\n    allow:\n      - {obj: x}\n"))
	assert.Error(t, err)

	_, err = Load([]byte("roles: ["))
	assert.Error(t, err)
}
