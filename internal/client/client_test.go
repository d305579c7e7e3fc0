package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/devilmonastery/warehouse/internal/config"
)

// fakeTokenStore is an in-memory TokenStore for tests
type fakeTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	setErr  error
}

func (f *fakeTokenStore) GetAccessToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, nil
}

func (f *fakeTokenStore) GetRefreshToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh, nil
}

func (f *fakeTokenStore) SetAccessToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.access = token
	return nil
}

func (f *fakeTokenStore) SetSession(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = access, refresh
	return nil
}

func (f *fakeTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = "", ""
	return nil
}

// recordedRequest captures what the fake backend saw
type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Header        http.Header
	Body          string
}

// fakeBackend serves /api/products/ and /api/auth/refresh/ with pluggable behaviour
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	refreshN int32

	products func(w http.ResponseWriter, r *http.Request)
	refresh  func(w http.ResponseWriter, r *http.Request)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Header:        r.Header.Clone(),
		Body:          string(body),
	})
	b.mu.Unlock()

	switch r.URL.Path {
	case "/api/auth/refresh/":
		atomic.AddInt32(&b.refreshN, 1)
		if b.refresh == nil {
			http.Error(w, `{"detail":"no refresh configured"}`, http.StatusUnauthorized)
			return
		}
		b.refresh(w, r)
	case "/api/products/":
		b.products(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) requestsTo(path string) []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedRequest
	for _, r := range b.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (b *fakeBackend) refreshCalls() int {
	return int(atomic.LoadInt32(&b.refreshN))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func newTestClient(t *testing.T, backend http.Handler, store TokenStore, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API:         config.APIConfig{URL: srv.URL + "/api"},
		Environment: config.EnvDevelopment,
		Endpoints:   config.DefaultEndpoints(),
		Session:     config.SessionConfig{CoalesceRefresh: true},
	}
	c, err := NewClient(cfg, store, opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_RequiresTokenStore(t *testing.T) {
	_, err := NewClient(&config.Config{}, nil)
	if !errors.Is(err, ErrNoTokenStore) {
		t.Errorf("NewClient(nil store) error = %v, want ErrNoTokenStore", err)
	}
	if _, err := NewClient(nil, &fakeTokenStore{}); err == nil {
		t.Error("NewClient(nil config) error = nil, want error")
	}
}

func TestRequest_Headers(t *testing.T) {
	tests := []struct {
		name      string
		access    string
		headers   map[string]string
		wantAuth  string
		wantCType string
	}{
		{
			name:      "no token sends no authorization header",
			wantAuth:  "",
			wantCType: "application/json",
		},
		{
			name:      "token sent as bearer",
			access:    "tok1",
			wantAuth:  "Bearer tok1",
			wantCType: "application/json",
		},
		{
			name:      "caller headers override computed ones",
			access:    "tok1",
			headers:   map[string]string{"authorization": "Token custom", "Content-Type": "text/plain"},
			wantAuth:  "Token custom",
			wantCType: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{products: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `[]`)
			}}
			c := newTestClient(t, backend, &fakeTokenStore{access: tt.access})

			if _, err := c.Request(context.Background(), "/products/", RequestOptions{Headers: tt.headers}); err != nil {
				t.Fatalf("Request() error = %v", err)
			}

			reqs := backend.requestsTo("/api/products/")
			if len(reqs) != 1 {
				t.Fatalf("got %d requests, want 1", len(reqs))
			}
			if reqs[0].Authorization != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", reqs[0].Authorization, tt.wantAuth)
			}
			if _, present := reqs[0].Header["Authorization"]; tt.wantAuth == "" && present {
				t.Error("Authorization header present, want absent")
			}
			if reqs[0].ContentType != tt.wantCType {
				t.Errorf("Content-Type = %q, want %q", reqs[0].ContentType, tt.wantCType)
			}
		})
	}
}

func TestRequest_RefreshAndRetry(t *testing.T) {
	backend := &fakeBackend{
		products: func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "Bearer tok2" {
				writeJSON(w, http.StatusOK, `{"results":[{"product_id":1}]}`)
				return
			}
			writeJSON(w, http.StatusUnauthorized, `{"detail":"token expired"}`)
		},
		refresh: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
		},
	}
	store := &fakeTokenStore{access: "tok1", refresh: "ref1"}
	c := newTestClient(t, backend, store)

	raw, err := c.Request(context.Background(), "/products/", RequestOptions{})
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if string(raw) != `{"results":[{"product_id":1}]}` {
		t.Errorf("Request() = %s", raw)
	}

	if got := backend.refreshCalls(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	reqs := backend.requestsTo("/api/products/")
	if len(reqs) != 2 {
		t.Fatalf("product requests = %d, want 2", len(reqs))
	}
	if reqs[0].Authorization != "Bearer tok1" || reqs[1].Authorization != "Bearer tok2" {
		t.Errorf("authorization sequence = %q, %q", reqs[0].Authorization, reqs[1].Authorization)
	}

	refreshReq := backend.requestsTo("/api/auth/refresh/")[0]
	if refreshReq.Method != http.MethodPost || refreshReq.Body != `{"refresh":"ref1"}` {
		t.Errorf("refresh request = %s %s", refreshReq.Method, refreshReq.Body)
	}
	if refreshReq.Authorization != "" {
		t.Errorf("refresh request carried Authorization %q", refreshReq.Authorization)
	}

	if store.access != "tok2" || store.refresh != "ref1" {
		t.Errorf("store = (%q, %q), want (tok2, ref1)", store.access, store.refresh)
	}
}

func TestRequest_RetryResultIsFinal(t *testing.T) {
	tests := []struct {
		name       string
		retryCode  int
		retryBody  string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "retry also unauthorized",
			retryCode:  http.StatusUnauthorized,
			retryBody:  `{"detail":"still rejected"}`,
			wantStatus: http.StatusUnauthorized,
			wantDetail: "still rejected",
		},
		{
			name:       "retry forbidden",
			retryCode:  http.StatusForbidden,
			retryBody:  `{"detail":"not allowed"}`,
			wantStatus: http.StatusForbidden,
			wantDetail: "not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{
				products: func(w http.ResponseWriter, r *http.Request) {
					if r.Header.Get("Authorization") == "Bearer tok2" {
						writeJSON(w, tt.retryCode, tt.retryBody)
						return
					}
					writeJSON(w, http.StatusUnauthorized, `{"detail":"token expired"}`)
				},
				refresh: func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
				},
			}
			c := newTestClient(t, backend, &fakeTokenStore{access: "tok1", refresh: "ref1"})

			_, err := c.Request(context.Background(), "/products/", RequestOptions{})
			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("Request() error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message() != tt.wantDetail {
				t.Errorf("APIError = %d %q, want %d %q", apiErr.StatusCode, apiErr.Message(), tt.wantStatus, tt.wantDetail)
			}
			if got := backend.refreshCalls(); got != 1 {
				t.Errorf("refresh calls = %d, want 1", got)
			}
			if got := len(backend.requestsTo("/api/products/")); got != 2 {
				t.Errorf("product requests = %d, want 2", got)
			}
		})
	}
}

func TestRequest_RefreshFailureReturnsOriginal401(t *testing.T) {
	tests := []struct {
		name             string
		store            *fakeTokenStore
		refresh          func(w http.ResponseWriter, r *http.Request)
		wantRefreshCalls int
	}{
		{
			name:             "no refresh token stored",
			store:            &fakeTokenStore{access: "tok1"},
			wantRefreshCalls: 0,
		},
		{
			name:  "refresh endpoint rejects",
			store: &fakeTokenStore{access: "tok1", refresh: "ref1"},
			refresh: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"detail":"Token is invalid or expired","code":"token_not_valid"}`)
			},
			wantRefreshCalls: 1,
		},
		{
			name:  "refresh response without access token",
			store: &fakeTokenStore{access: "tok1", refresh: "ref1"},
			refresh: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{}`)
			},
			wantRefreshCalls: 1,
		},
		{
			name:  "refresh succeeds but cannot be persisted",
			store: &fakeTokenStore{access: "tok1", refresh: "ref1", setErr: errors.New("disk full")},
			refresh: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
			},
			wantRefreshCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{
				products: func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusUnauthorized, `{"detail":"original 401"}`)
				},
				refresh: tt.refresh,
			}
			refreshBefore := tt.store.refresh
			c := newTestClient(t, backend, tt.store)

			_, err := c.Request(context.Background(), "/products/", RequestOptions{})
			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("Request() error = %v, want *APIError", err)
			}
			if !apiErr.IsUnauthorized() || apiErr.Message() != "original 401" {
				t.Errorf("APIError = %d %q, want original 401", apiErr.StatusCode, apiErr.Message())
			}
			if got := backend.refreshCalls(); got != tt.wantRefreshCalls {
				t.Errorf("refresh calls = %d, want %d", got, tt.wantRefreshCalls)
			}
			if got := len(backend.requestsTo("/api/products/")); got != 1 {
				t.Errorf("product requests = %d, want 1", got)
			}
			if tt.store.refresh != refreshBefore {
				t.Errorf("refresh token changed to %q, must never be cleared by a failed refresh", tt.store.refresh)
			}
		})
	}
}

func TestRequest_UnauthorizedWithoutTokenDoesNotRefresh(t *testing.T) {
	backend := &fakeBackend{
		products: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`)
		},
		refresh: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
		},
	}
	c := newTestClient(t, backend, &fakeTokenStore{refresh: "ref1"})

	_, err := c.Request(context.Background(), "/products/", RequestOptions{})
	if apiErr, ok := AsAPIError(err); !ok || !apiErr.IsUnauthorized() {
		t.Fatalf("Request() error = %v, want 401 APIError", err)
	}
	if got := backend.refreshCalls(); got != 0 {
		t.Errorf("refresh calls = %d, want 0", got)
	}
}

func TestRequest_BodyResentOnRetry(t *testing.T) {
	backend := &fakeBackend{
		products: func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "Bearer tok2" {
				writeJSON(w, http.StatusCreated, `{"product_id":7}`)
				return
			}
			writeJSON(w, http.StatusUnauthorized, `{}`)
		},
		refresh: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
		},
	}
	c := newTestClient(t, backend, &fakeTokenStore{access: "tok1", refresh: "ref1"})

	var out struct {
		ProductID int `json:"product_id"`
	}
	payload := map[string]any{"product_code": "P-1", "product_name": "Hammer"}
	if err := c.Do(context.Background(), http.MethodPost, "/products/", payload, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out.ProductID != 7 {
		t.Errorf("ProductID = %d, want 7", out.ProductID)
	}

	reqs := backend.requestsTo("/api/products/")
	if len(reqs) != 2 {
		t.Fatalf("product requests = %d, want 2", len(reqs))
	}
	if reqs[0].Body != reqs[1].Body || reqs[0].Method != reqs[1].Method {
		t.Errorf("retry differs: %s %q vs %s %q", reqs[0].Method, reqs[0].Body, reqs[1].Method, reqs[1].Body)
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(reqs[0].Body), &sent); err != nil || sent["product_name"] != "Hammer" {
		t.Errorf("sent body = %q", reqs[0].Body)
	}
}

func TestRequest_SuccessBodies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "json object", status: http.StatusOK, body: `{"total_products":3}`, want: `{"total_products":3}`},
		{name: "json array", status: http.StatusOK, body: ` [1,2] `, want: `[1,2]`},
		{name: "no content", status: http.StatusNoContent, body: ``, want: `{}`},
		{name: "not json", status: http.StatusOK, body: `<html>ok</html>`, want: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{products: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}}
			c := newTestClient(t, backend, &fakeTokenStore{})

			raw, err := c.Request(context.Background(), "/products/", RequestOptions{})
			if err != nil {
				t.Fatalf("Request() error = %v", err)
			}
			if string(raw) != tt.want {
				t.Errorf("Request() = %s, want %s", raw, tt.want)
			}
		})
	}
}

func TestRequest_FailureBodies(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantFields map[string]string
		wantMsg    string
	}{
		{
			name:       "validation errors",
			status:     http.StatusBadRequest,
			body:       `{"email":["Only Gmail addresses are allowed."],"password":["Too short."]}`,
			wantFields: map[string]string{"email": "Only Gmail addresses are allowed.", "password": "Too short."},
		},
		{
			name:    "server error with message",
			status:  http.StatusInternalServerError,
			body:    `{"error":"division by zero"}`,
			wantMsg: "division by zero",
		},
		{
			name:   "unparseable body",
			status: http.StatusBadGateway,
			body:   `<html>Bad Gateway</html>`,
		},
		{
			name:   "non-object json",
			status: http.StatusBadRequest,
			body:   `["oops"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{products: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}}
			c := newTestClient(t, backend, &fakeTokenStore{})

			_, err := c.Request(context.Background(), "/products/", RequestOptions{Method: http.MethodPost, Body: `{}`})
			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("Request() error = %v, want *APIError", err)
			}
			if IsNetworkError(err) {
				t.Error("HTTP status failure classified as network error")
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Body == nil {
				t.Fatal("Body = nil, want empty map at least")
			}
			if string(apiErr.Raw) != tt.body {
				t.Errorf("Raw = %q, want %q", apiErr.Raw, tt.body)
			}
			for field, want := range tt.wantFields {
				if got, _ := apiErr.FieldError(field); got != want {
					t.Errorf("FieldError(%q) = %q, want %q", field, got, want)
				}
			}
			if tt.wantFields == nil && len(apiErr.FieldErrors()) != 0 {
				t.Errorf("FieldErrors() = %v, want none", apiErr.FieldErrors())
			}
			if apiErr.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", apiErr.Message(), tt.wantMsg)
			}
		})
	}
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := &config.Config{API: config.APIConfig{URL: url}, Endpoints: config.DefaultEndpoints()}
	c, err := NewClient(cfg, &fakeTokenStore{access: "tok1", refresh: "ref1"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = c.Request(context.Background(), "/products/", RequestOptions{})
	if !IsNetworkError(err) {
		t.Fatalf("Request() error = %v, want NetworkError", err)
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("network failure classified as APIError")
	}
}

func TestRequest_ContextCancelled(t *testing.T) {
	backend := &fakeBackend{products: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	}}
	c := newTestClient(t, backend, &fakeTokenStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Request(ctx, "/products/", RequestOptions{})
	if !IsNetworkError(err) || !errors.Is(err, context.Canceled) {
		t.Errorf("Request() error = %v, want NetworkError wrapping context.Canceled", err)
	}
}

func TestRequest_ConcurrentRefreshIsCoalesced(t *testing.T) {
	const workers = 8
	var unauthorized int32

	backend := &fakeBackend{
		products: func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "Bearer tok2" {
				writeJSON(w, http.StatusOK, `{}`)
				return
			}
			atomic.AddInt32(&unauthorized, 1)
			writeJSON(w, http.StatusUnauthorized, `{}`)
		},
		refresh: func(w http.ResponseWriter, r *http.Request) {
			deadline := time.Now().Add(2 * time.Second)
			for atomic.LoadInt32(&unauthorized) < workers && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			time.Sleep(50 * time.Millisecond)
			writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
		},
	}
	c := newTestClient(t, backend, &fakeTokenStore{access: "tok1", refresh: "ref1"})

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Request(context.Background(), "/products/", RequestOptions{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Request() error = %v", err)
		}
	}
	if got := backend.refreshCalls(); got != 1 {
		t.Errorf("refresh calls = %d, want 1 shared refresh", got)
	}
}

func TestRequest_CoalescedRefreshSurvivesFirstCallerCancel(t *testing.T) {
	var unauthorized int32
	refreshStarted := make(chan struct{})
	release := make(chan struct{})
	var startOnce, releaseOnce sync.Once
	releaseRefresh := func() { releaseOnce.Do(func() { close(release) }) }
	t.Cleanup(releaseRefresh)

	backend := &fakeBackend{
		products: func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "Bearer new" {
				writeJSON(w, http.StatusOK, `{}`)
				return
			}
			atomic.AddInt32(&unauthorized, 1)
			writeJSON(w, http.StatusUnauthorized, `{"detail":"expired"}`)
		},
		refresh: func(w http.ResponseWriter, r *http.Request) {
			startOnce.Do(func() { close(refreshStarted) })
			<-release
			writeJSON(w, http.StatusOK, `{"access":"new"}`)
		},
	}
	store := &fakeTokenStore{access: "old", refresh: "ref"}
	c := newTestClient(t, backend, store)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := c.Request(ctxA, "/products/", RequestOptions{})
		errA <- err
	}()
	<-refreshStarted

	errB := make(chan error, 1)
	go func() {
		_, err := c.Request(context.Background(), "/products/", RequestOptions{})
		errB <- err
	}()

	// Let B get its 401 and join the refresh that A started
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&unauthorized) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		if err == nil {
			t.Error("request A error = nil, want its original 401 after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("request A did not return after its context was cancelled")
	}

	releaseRefresh()
	if err := <-errB; err != nil {
		t.Errorf("request B error = %v, want success with the shared refresh", err)
	}
	if access, _ := store.GetAccessToken(); access != "new" {
		t.Errorf("stored access = %q, want new", access)
	}
	if got := backend.refreshCalls(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
}

func TestRefresh_NoRefreshTokenMakesNoCall(t *testing.T) {
	backend := &fakeBackend{refresh: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"access":"tok2"}`)
	}}
	c := newTestClient(t, backend, &fakeTokenStore{access: "tok1"}, WithRefreshCoalescing(false))

	if c.Refresh(context.Background()) {
		t.Error("Refresh() = true, want false")
	}
	if got := backend.refreshCalls(); got != 0 {
		t.Errorf("refresh calls = %d, want 0", got)
	}
}

func TestRefresh_RotatedRefreshTokenIsNotPersisted(t *testing.T) {
	backend := &fakeBackend{refresh: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"access":"tok2","refresh":"ref2"}`)
	}}
	store := &fakeTokenStore{access: "tok1", refresh: "ref1"}
	c := newTestClient(t, backend, store)

	if !c.Refresh(context.Background()) {
		t.Fatal("Refresh() = false, want true")
	}
	if store.access != "tok2" || store.refresh != "ref1" {
		t.Errorf("store = (%q, %q), want (tok2, ref1)", store.access, store.refresh)
	}
}
