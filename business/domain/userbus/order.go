package userbus

import "github.com/negocio360/platform/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID    = "user_id"
	OrderByName  = "name"
	OrderByEmail = "email"
)
