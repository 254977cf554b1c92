package remote

// Response is what the transport hands back for a completed request.
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPClient performs a GET and reports the outcome through completion.
// The completion can be invoked on any goroutine; callers dispatch to their
// own context if they need to.
type HTTPClient interface {
	Get(url string, completion func(*Response, error))
}
