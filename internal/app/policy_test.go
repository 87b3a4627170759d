package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/talentflow/internal/pkg/config"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
)

func TestShippedPolicy(t *testing.T) {
	t.Parallel()

	e, err := rbac.LoadFile("../../config/policy.yaml")
	require.NoError(t, err)

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{"employee", "identity.me", "read", true},
		{"employee", "company.profile", "read", false},
		{"employee", "content", "read", false},
		{"company", "identity.me", "read", true},
		{"company", "company.profile", "read", true},
		{"company", "company.profile", "write", true},
		{"company", "company.requests", "write", true},
		{"company", "staffing.assign", "write", false},
		{"admin", "identity.me", "read", true},
		{"admin", "staffing.admins", "read", true},
		{"admin", "staffing.assign", "write", true},
		{"admin", "staffing.admins", "write", false},
		{"admin", "content", "read", true},
		{"admin", "content", "write", true},
		{"admin", "company.requests", "write", false},
	}

	for _, tt := range tests {
		ok, err := e.Enforce(tt.sub, tt.obj, tt.act)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "%s %s %s", tt.sub, tt.obj, tt.act)
	}
}

func TestShippedConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewViper("../../config/config.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	for _, name := range []string{"identity", "registration", "company", "staffing", "content", "notification"} {
		assert.True(t, cfg.GetBool("modules."+name+".enabled"), name)
	}

	assert.Equal(t, "memory", cfg.GetString("messaging.driver"))
	assert.Equal(t, "memory", cfg.GetString("storage.driver"))
	assert.Equal(t, "./config/policy.yaml", cfg.GetString("rbac.policy_path"))
	assert.Positive(t, cfg.GetMinute("session.ttl_minutes"))
}
