package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/domain/entity"
	authhttp "newsportal/internal/handler/http/auth"
	authservice "newsportal/internal/service/auth"
)

type stubAdmins struct {
	admins map[string]*entity.AdminUser
}

func (s *stubAdmins) GetByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	return s.admins[email], nil
}
func (s *stubAdmins) Count(_ context.Context) (int64, error) { return int64(len(s.admins)), nil }
func (s *stubAdmins) Create(_ context.Context, a *entity.AdminUser) error {
	s.admins[a.Email] = a
	return nil
}

func testService(t *testing.T) *authservice.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword err=%v", err)
	}
	return &authservice.Service{Admins: &stubAdmins{admins: map[string]*entity.AdminUser{
		"admin@example.com": {
			ID: 1, Email: "admin@example.com", Name: "Admin", PasswordHash: string(hash),
		},
	}}}
}

func login(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTokenHandler_IssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler := authhttp.TokenHandler(testService(t), authhttp.NewLoginLimiter(100, 100))

	rec := login(t, handler, `{"email":"admin@example.com","password":"secret-pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
}

func TestTokenHandler_InvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler := authhttp.TokenHandler(testService(t), authhttp.NewLoginLimiter(100, 100))

	rec := login(t, handler, `{"email":"admin@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
}

func TestTokenHandler_MalformedBody(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler := authhttp.TokenHandler(testService(t), authhttp.NewLoginLimiter(100, 100))

	rec := login(t, handler, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestTokenHandler_RateLimited(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	// One attempt per IP, no refill worth mentioning within the test.
	handler := authhttp.TokenHandler(testService(t), authhttp.NewLoginLimiter(0.001, 1))

	if rec := login(t, handler, `{"email":"admin@example.com","password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt status=%d", rec.Code)
	}
	rec := login(t, handler, `{"email":"admin@example.com","password":"secret-pw"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt status=%d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
}
