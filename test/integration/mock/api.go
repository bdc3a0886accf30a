package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// defaultIndex stores the response served when no call-specific response is set.
const defaultIndex = -1

// recordedRequest is one call received by the mock.
type recordedRequest struct {
	body    map[string]any
	headers map[string]string
	queries map[string]string
}

// cannedResponse is what the mock answers for a route.
type cannedResponse struct {
	status int
	body   map[string]any
}

// ApiMock stands in for an outbound HTTP API such as Resend. Routes are keyed by
// method and path; a "*" path segment matches any value.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]recordedRequest
	responses map[string]map[int]cannedResponse
}

// NewApiServer creates an unstarted mock.
func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]recordedRequest{},
		responses: map[string]map[int]cannedResponse{},
	}
}

// Start begins serving on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the running server.
func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

// SetResponse sets the answer for the index-th call to a route, or for every call
// without a specific answer when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = cannedResponse{status: status, body: response}
}

// GetRequestBody returns the decoded JSON body of the index-th call to a route.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	if req, ok := a.request(method, path, index); ok {
		return req.body
	}
	return nil
}

// GetRequestHeaders returns the first value of every header of the index-th call.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	if req, ok := a.request(method, path, index); ok {
		return req.headers
	}
	return nil
}

// GetRequestQueries returns the first value of every query parameter of the index-th call.
func (a *ApiMock) GetRequestQueries(method, path string, index int) map[string]string {
	if req, ok := a.request(method, path, index); ok {
		return req.queries
	}
	return nil
}

// ClearResponses forgets recorded calls and canned answers of every route under method+path.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prefix := method + path
	for key := range a.requests {
		if strings.HasPrefix(key, prefix) {
			delete(a.requests, key)
		}
	}
	for key := range a.responses {
		if strings.HasPrefix(key, prefix) {
			delete(a.responses, key)
		}
	}
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	recorded := recordedRequest{
		body:    body,
		headers: firstValues(r.Header),
		queries: firstValues(r.URL.Query()),
	}

	a.mu.Lock()
	key := r.Method + r.URL.Path
	index := len(a.requests[key])
	a.requests[key] = append(a.requests[key], recorded)
	response := a.responseFor(r.Method, r.URL.Path, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_ = json.NewEncoder(w).Encode(response.body)
}

// responseFor must be called with the lock held.
func (a *ApiMock) responseFor(method, path string, index int) cannedResponse {
	for key, byIndex := range a.responses {
		if !routeMatches(key, method, path) {
			continue
		}
		if response, ok := byIndex[index]; ok {
			return withDefaults(response)
		}
		if response, ok := byIndex[defaultIndex]; ok {
			return withDefaults(response)
		}
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

func (a *ApiMock) request(method, path string, index int) (recordedRequest, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	calls := a.requests[method+path]
	if index < 0 || index >= len(calls) {
		return recordedRequest{}, false
	}
	return calls[index], true
}

func withDefaults(response cannedResponse) cannedResponse {
	if response.status == 0 {
		response.status = http.StatusOK
	}
	if response.body == nil {
		response.body = map[string]any{}
	}
	return response
}

func routeMatches(key, method, path string) bool {
	if !strings.HasPrefix(key, method) {
		return false
	}
	pattern := strings.TrimPrefix(key, method)
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}

func firstValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		if len(value) > 0 {
			out[key] = value[0]
		}
	}
	return out
}
