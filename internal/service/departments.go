package service

import (
	"fmt"
	"strings"

	"booking-assistant/api"
	"booking-assistant/pkg/response"
)

// ResolveDepartment maps a caller's visit reason to a department by keyword.
// The first department without keywords is the fallback; with no departments
// configured the default calendar is used.
func (s *Service) ResolveDepartment(reason string) api.Department {
	dep := s.matchDepartment(reason)
	return api.Department{Name: dep.Name, CalendarID: dep.CalendarID}
}

func (s *Service) matchDepartment(reason string) Department {
	lower := strings.ToLower(reason)

	for _, d := range s.departments {
		for _, kw := range d.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return d
			}
		}
	}

	return s.fallbackDepartment()
}

func (s *Service) fallbackDepartment() Department {
	for _, d := range s.departments {
		if len(d.Keywords) == 0 {
			return d
		}
	}
	return Department{CalendarID: s.defaultCalendarID}
}

// department picks the calendar for a request: an explicit department name
// wins over a visit reason; neither means the fallback.
func (s *Service) department(name, reason string) (Department, error) {
	const op = "service.department"

	if name != "" {
		for _, d := range s.departments {
			if strings.EqualFold(d.Name, name) {
				return d, nil
			}
		}
		return Department{}, fmt.Errorf("%s: unknown department %q: %w", op, name, response.ErrNotFound)
	}

	if reason != "" {
		return s.matchDepartment(reason), nil
	}

	return s.fallbackDepartment(), nil
}
