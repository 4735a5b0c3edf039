package memberdb

import (
	"bytes"

	"github.com/negocio360/platform/business/domain/memberbus"
)

// applyFilter appends to an existing WHERE clause scoped by tenant.
func applyFilter(filter memberbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	if filter.Role != nil {
		data["role"] = filter.Role.String()
		buf.WriteString(" AND m.role = :role")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		buf.WriteString(" AND m.status = :status")
	}

	if filter.Email != nil {
		data["email"] = "%" + *filter.Email + "%"
		buf.WriteString(" AND m.email LIKE :email")
	}
}
