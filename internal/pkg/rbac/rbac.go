// Package rbac authorizes requests by account type with casbin.
//
// Policies are static per deployment and read from a YAML document:
//
//	roles:
//	  admin:
//	    inherits: [company]
//	    allow:
//	      - {obj: staffing.request, act: write}
//
// A wildcard "*" matches any object or action.
package rbac

import (
	"errors"
	"fmt"
	"os"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"gopkg.in/yaml.v3"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// ErrNoRoles is returned when a policy document defines no role.
var ErrNoRoles = errors.New("rbac: policy defines no roles")

// Enforcer decides whether a subject may perform act on obj.
type Enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

// Rule grants act on obj.
type Rule struct {
	Obj string `yaml:"obj"`
	Act string `yaml:"act"`
}

// Role is a named set of rules.
type Role struct {
	Inherits []string `yaml:"inherits"`
	Allow    []Rule   `yaml:"allow"`
}

// Policy is the YAML policy document.
type Policy struct {
	Roles map[string]Role `yaml:"roles"`
}

// LoadFile reads a policy document from path.
func LoadFile(path string) (*casbin.Enforcer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Load(data)
}

// Load builds an enforcer from a YAML policy document.
func Load(data []byte) (*casbin.Enforcer, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("rbac: decode policy: %w", err)
	}

	return New(p)
}

// New builds an enforcer holding p.
func New(p Policy) (*casbin.Enforcer, error) {
	if len(p.Roles) == 0 {
		return nil, ErrNoRoles
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for name, role := range p.Roles {
		// every subject is its own role so g(sub, sub) holds
		if _, err := e.AddGroupingPolicy(name, name); err != nil {
			return nil, err
		}

		for _, parent := range role.Inherits {
			if _, ok := p.Roles[parent]; !ok {
				return nil, fmt.Errorf("rbac: role %q inherits unknown role %q", name, parent)
			}
			if _, err := e.AddGroupingPolicy(name, parent); err != nil {
				return nil, err
			}
		}

		for _, r := range role.Allow {
			if r.Obj == "" || r.Act == "" {
				return nil, fmt.Errorf("rbac: role %q has a rule without obj or act", name)
			}
			if _, err := e.AddPolicy(name, r.Obj, r.Act); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}
