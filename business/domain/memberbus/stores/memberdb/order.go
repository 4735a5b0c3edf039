package memberdb

import (
	"fmt"

	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/sdk/order"
)

var orderByFields = map[string]string{
	memberbus.OrderByJoinedAt: "m.joined_at",
	memberbus.OrderByRole:     "m.role",
	memberbus.OrderByEmail:    "m.email",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
