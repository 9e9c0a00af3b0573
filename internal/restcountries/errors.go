package restcountries

import "fmt"

// FetchError reports a failed fetch of the country list: a transport failure,
// a non-2xx status, or a body that is not a JSON array. Callers treat every
// kind the same way, as "no data".
type FetchError struct {
	URL        string
	StatusCode int
	// Body holds the first few KB of an error response, if any.
	Body string
	Err  error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "fetch failed"
	}
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("fetch %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
