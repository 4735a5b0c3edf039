package memberapp

import (
	"net/http"

	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
)

func parseFilter(r *http.Request) (memberbus.QueryFilter, error) {
	values := r.URL.Query()

	var filter memberbus.QueryFilter

	if v := values.Get("role"); v != "" {
		rl, err := role.Parse(v)
		if err != nil {
			return memberbus.QueryFilter{}, err
		}
		filter.Role = &rl
	}

	if v := values.Get("status"); v != "" {
		status, err := memberstatus.Parse(v)
		if err != nil {
			return memberbus.QueryFilter{}, err
		}
		filter.Status = &status
	}

	if v := values.Get("email"); v != "" {
		filter.Email = &v
	}

	return filter, nil
}
