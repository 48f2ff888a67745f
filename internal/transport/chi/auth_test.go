package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// userEcho writes the resolved user id as the response body.
func userEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strconv.FormatInt(id, 10)))
	})
}

func serve(h http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, http.NoBody)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_EmptyTokens_Anonymous(t *testing.T) {
	for _, tokens := range []map[string]int64{nil, {"": 7}} {
		rr := serve(BearerAuthMiddleware(tokens)(userEcho()), "/records/search", "")

		if rr.Code != http.StatusOK {
			t.Fatalf("empty tokens: got %d, want %d", rr.Code, http.StatusOK)
		}
		if rr.Body.String() != "0" {
			t.Errorf("user id: got %s, want 0", rr.Body.String())
		}
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	rr := serve(BearerAuthMiddleware(map[string]int64{"secret": 1})(userEcho()), "/records/search", "")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeUnauthorized {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
	}
}

func TestAuthMiddleware_BasicScheme_401(t *testing.T) {
	rr := serve(BearerAuthMiddleware(map[string]int64{"secret": 1})(userEcho()), "/records/search", "Basic dXNlcjpwYXNz")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken_401(t *testing.T) {
	rr := serve(BearerAuthMiddleware(map[string]int64{"secret": 1})(userEcho()), "/records/search", "Bearer wrong")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_TokenResolvesUser(t *testing.T) {
	h := BearerAuthMiddleware(map[string]int64{"alice": 11, "bob": 12})(userEcho())

	for token, want := range map[string]string{"alice": "11", "bob": "12"} {
		rr := serve(h, "/records/search", "Bearer "+token)
		if rr.Code != http.StatusOK {
			t.Fatalf("token %s: got %d, want %d", token, rr.Code, http.StatusOK)
		}
		if rr.Body.String() != want {
			t.Errorf("token %s: user %s, want %s", token, rr.Body.String(), want)
		}
	}
}

func TestAuthMiddleware_ExemptPaths(t *testing.T) {
	h := BearerAuthMiddleware(map[string]int64{"secret": 1})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/metrics"} {
		rr := serve(h, path, "")
		if rr.Code != http.StatusOK {
			t.Errorf("exempt path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}
