package memberbus

import "github.com/negocio360/platform/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByJoinedAt, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByJoinedAt = "joined_at"
	OrderByRole     = "role"
	OrderByEmail    = "email"
)
