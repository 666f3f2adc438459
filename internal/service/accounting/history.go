package accounting

import (
	"strings"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
)

// FilterRequests applies the leave history filters, keeping the input order.
func FilterRequests(requests []leave.Request, filter leave.RequestFilter) []leave.Request {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]leave.Request, 0, len(requests))
	for _, r := range requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Month != nil {
			y, m, _ := r.StartDate.Date()
			fy, fm, _ := filter.Month.Date()
			if y != fy || m != fm {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Reason), search) &&
			!strings.Contains(string(r.Category), search) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// RequestStats counts requests per status and the days taken by approved ones.
func RequestStats(requests []leave.Request) leave.RequestStats {
	stats := leave.RequestStats{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case leave.RequestStatusApproved:
			stats.Approved++
			stats.ApprovedDays += r.Days
		case leave.RequestStatusPending:
			stats.Pending++
		case leave.RequestStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
