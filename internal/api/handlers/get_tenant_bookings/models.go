package get_tenant_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from, to (RFC 3339), status, resourceId (через запятую), includeInactive
func ToServiceRequest(tenantID int64, query url.Values) (*models.GetTenantBookingsRequest, error) {
	req := &models.GetTenantBookingsRequest{
		TenantID:        tenantID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if s := query.Get("from"); s != "" {
		from, err := handlers.ParseTime("from", s, nil)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := handlers.ParseTime("to", s, nil)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("resourceId"); s != "" {
		for _, part := range strings.Split(s, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid resourceId value: %q", part)
			}
			req.ResourceIDs = append(req.ResourceIDs, id)
		}
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
