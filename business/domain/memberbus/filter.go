package memberbus

import (
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	Role   *role.Role
	Status *memberstatus.Status
	Email  *string
}
