package role_test

import (
	"testing"

	"github.com/negocio360/platform/business/types/role"
)

func TestOrdering(t *testing.T) {
	ordered := []role.Role{role.Employee, role.Manager, role.Admin, role.Owner}

	for i, lower := range ordered {
		for _, higher := range ordered[i+1:] {
			if !higher.Outranks(lower) {
				t.Errorf("expected %s to outrank %s", higher, lower)
			}
			if lower.Outranks(higher) {
				t.Errorf("did not expect %s to outrank %s", lower, higher)
			}
		}

		if lower.Outranks(lower) {
			t.Errorf("did not expect %s to outrank itself", lower)
		}
		if !lower.AtLeast(lower) {
			t.Errorf("expected %s to be at least itself", lower)
		}
	}
}

func TestCanGrant(t *testing.T) {
	tests := []struct {
		name   string
		actor  role.Role
		target role.Role
		want   bool
	}{
		{"owner grants admin", role.Owner, role.Admin, true},
		{"owner grants employee", role.Owner, role.Employee, true},
		{"owner cannot grant owner", role.Owner, role.Owner, false},
		{"admin grants manager", role.Admin, role.Manager, true},
		{"admin grants employee", role.Admin, role.Employee, true},
		{"admin cannot grant admin", role.Admin, role.Admin, false},
		{"admin cannot grant owner", role.Admin, role.Owner, false},
		{"manager grants employee", role.Manager, role.Employee, true},
		{"manager cannot grant manager", role.Manager, role.Manager, false},
		{"employee cannot grant employee", role.Employee, role.Employee, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanGrant(tt.target); got != tt.want {
				t.Errorf("CanGrant(%s -> %s) = %v, want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	for _, v := range []string{"OWNER", "ADMIN", "MANAGER", "EMPLOYEE"} {
		r, err := role.Parse(v)
		if err != nil {
			t.Fatalf("Parse(%q): %v", v, err)
		}
		if r.String() != v {
			t.Errorf("Parse(%q).String() = %q", v, r.String())
		}
	}

	if _, err := role.Parse("SUPERUSER"); err == nil {
		t.Error("expected error for unknown role")
	}
}
