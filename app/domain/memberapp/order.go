package memberapp

import (
	"github.com/negocio360/platform/business/domain/memberbus"
)

var orderByFields = map[string]string{
	"joined_at": memberbus.OrderByJoinedAt,
	"role":      memberbus.OrderByRole,
	"email":     memberbus.OrderByEmail,
}
