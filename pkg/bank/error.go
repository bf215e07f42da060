package bank

import "fmt"

// ServiceError is returned for any non-2xx response from the memory service.
// It carries the status code and the raw response body so callers can
// surface the service's own words. The client never retries; tolerance is
// layered by callers.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("memory service returned status %d: %s", e.StatusCode, e.Body)
}
