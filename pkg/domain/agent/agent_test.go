package agent

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles() {
		parsed, err := ParseRole(string(r))
		if err != nil || parsed != r {
			t.Errorf("ParseRole(%s) = (%s, %v)", r, parsed, err)
		}
	}
	for _, bad := range []string{"", "Lead", "qa", "dev-ops"} {
		if _, err := ParseRole(bad); err == nil {
			t.Errorf("ParseRole(%q) should fail", bad)
		}
	}
}

func TestRoleUnmarshalJSON(t *testing.T) {
	var r Role
	if err := json.Unmarshal([]byte(`"security"`), &r); err != nil || r != RoleSecurity {
		t.Errorf("Unmarshal = (%s, %v)", r, err)
	}
	if err := json.Unmarshal([]byte(`"manager"`), &r); err == nil {
		t.Error("Unmarshal should reject unknown roles")
	}
}

func TestDefaultCapabilities(t *testing.T) {
	lead := DefaultCapabilities(RoleLead)
	if !lead.CanEdit || !lead.CanComment || !lead.CanApprove {
		t.Errorf("lead capabilities = %+v, want all granted", lead)
	}

	for _, r := range AllRoles() {
		if r == RoleLead {
			continue
		}
		caps := DefaultCapabilities(r)
		if caps.CanEdit || caps.CanApprove || !caps.CanComment {
			t.Errorf("%s capabilities = %+v, want comment only", r, caps)
		}
	}
}
