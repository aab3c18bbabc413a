package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgledger/personnel-api/internal/core/domain"
	"github.com/orgledger/personnel-api/internal/core/service"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/infrastructure/db/memory"
	"github.com/orgledger/personnel-api/internal/infrastructure/security"
)

type testServer struct {
	e    *echo.Echo
	repo *memory.PrincipalRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zerolog.Nop()
	repo := memory.NewPrincipalRepository()
	seq := memory.NewSequence()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewJWTIssuer("test-secret", "personnel-api", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTIssuer: %v", err)
	}
	v := validation.New()

	e := NewRouter(Deps{
		Auth:         service.NewAuthService(repo, hasher, tokens, v, log),
		Registration: service.NewRegistrationService(repo, service.NewBusinessIDAllocator(seq, repo, log), hasher, v, log),
		Principals:   service.NewPrincipalService(repo, hasher, v, log),
		OrgUnits:     service.NewOrgUnitService(memory.NewOrgUnitRepository(), v, log),
		Validator:    v,
		Log:          log,
	})
	return &testServer{e: e, repo: repo}
}

// seedEmployee stores an employee directly, bypassing the sequence so the
// first registered employee still receives EMP-000001.
func (s *testServer) seedEmployee(t *testing.T, email, password string, role domain.Role) {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if _, err := s.repo.Create(context.Background(), &domain.Principal{
		Kind:         domain.KindEmployee,
		FullName:     "Seeded " + string(role),
		Email:        email,
		Role:         role,
		PasswordHash: string(digest),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func (s *testServer) login(t *testing.T, path, email, password string) string {
	t.Helper()
	rec, resp := s.do(t, http.MethodPost, path, "", `{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %v", rec.Code, resp)
	}
	data := resp["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token")
	}
	return token
}

const employeeBody = `{
	"fullName": "Ayesha Khan",
	"fatherName": "Imran Khan",
	"email": "ayesha@example.com",
	"mobileNo": "03001234567",
	"cnic": "1234567890123",
	"dob": "1990-03-14",
	"gender": "Female",
	"branch": "branch-1",
	"address": "12 Mall Road",
	"department": "dept-1",
	"city": "city-1",
	"role": "staff",
	"password": "password1"
}`

func TestRouter_EmployeeEndToEnd(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	adminToken := s.login(t, "/api/v1/employee/emp-login", "admin@example.com", "adminpass")

	rec, resp := s.do(t, http.MethodPost, "/api/v1/employee/emp-registration", adminToken, employeeBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %v", rec.Code, resp)
	}
	created := resp["data"].(map[string]any)
	if created["business_id"] != "EMP-000001" {
		t.Fatalf("unexpected business id: %v", created["business_id"])
	}
	for _, leaked := range []string{"password", "password_hash", "PasswordHash"} {
		if _, ok := created[leaked]; ok {
			t.Fatalf("response leaks %s", leaked)
		}
	}

	rec, resp = s.do(t, http.MethodPost, "/api/v1/employee/emp-registration", adminToken, employeeBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", rec.Code)
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "already exists") {
		t.Fatalf("duplicate message: %q", msg)
	}

	staffToken := s.login(t, "/api/v1/employee/emp-login", "ayesha@example.com", "password1")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/employee/emp-registration", staffToken, employeeBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("staff on admin route: expected 401, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/seeker/all-seekers", staffToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("staff on seeker list: expected 200, got %d", rec.Code)
	}
}

func TestRouter_GateStatusCodes(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	adminToken := s.login(t, "/api/v1/employee/emp-login", "admin@example.com", "adminpass")

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusForbidden},
		{"malformed token", "not-a-token", http.StatusBadRequest},
		{"valid admin", adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := s.do(t, http.MethodGet, "/api/v1/employee/all-employees", tt.token, "")
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %v", tt.want, rec.Code, resp)
			}
		})
	}

	// An employee token does not open user routes.
	rec, _ := s.do(t, http.MethodGet, "/api/v1/user/all-users", adminToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-kind token: expected 403, got %d", rec.Code)
	}
}

func TestRouter_LoginFailuresAreUniform(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)

	unknown, unknownResp := s.do(t, http.MethodPost, "/api/v1/employee/emp-login", "", `{"email":"nobody@example.com","password":"adminpass"}`)
	wrong, wrongResp := s.do(t, http.MethodPost, "/api/v1/employee/emp-login", "", `{"email":"admin@example.com","password":"badpass1"}`)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrong.Code)
	}
	if unknownResp["error"] != wrongResp["error"] {
		t.Fatalf("messages differ: %v vs %v", unknownResp["error"], wrongResp["error"])
	}

	rec, _ := s.do(t, http.MethodPost, "/api/v1/employee/emp-login", "", `{"email":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty login: expected 400, got %d", rec.Code)
	}
}

func TestRouter_UserLifecycle(t *testing.T) {
	s := newTestServer(t)

	body := `{"fullName":"Bilal Ahmed","fatherName":"Ahmed Ali","email":"bilal@example.com","mobile":"03001234567",
		"dob":"1992-07-01","gender":"male","role":"admin","address":"7 Canal View","city":"city-1","password":"supersecret"}`
	rec, resp := s.do(t, http.MethodPost, "/api/v1/user/user-signup", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %v", rec.Code, resp)
	}
	id := resp["data"].(map[string]any)["id"].(string)

	token := s.login(t, "/api/v1/user/user-login", "bilal@example.com", "supersecret")

	rec, resp = s.do(t, http.MethodGet, "/api/v1/user/all-users?page=1&limit=5", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %v", rec.Code, resp)
	}
	if total := resp["data"].(map[string]any)["total"].(float64); total != 1 {
		t.Fatalf("list total: %v", total)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/user/all-users?limit=500", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized limit: expected 400, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/user/all-users?page=9223372036854775807&limit=100", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("huge page: expected 400, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/user/single-user", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing cnic: expected 400, got %d", rec.Code)
	}

	rec, resp = s.do(t, http.MethodPut, "/api/v1/user/"+id, token, `{"city":"city-2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %v", rec.Code, resp)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/user/"+id, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	// The token now names a deleted principal.
	rec, _ = s.do(t, http.MethodDelete, "/api/v1/user/"+id, token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("deleted principal: expected 403, got %d", rec.Code)
	}
}

func TestRouter_DeleteMissingIsNotFound(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	token := s.login(t, "/api/v1/employee/emp-login", "admin@example.com", "adminpass")

	rec, _ := s.do(t, http.MethodDelete, "/api/v1/seeker/665f1c2e9b1d4a0012345678", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_PasswordReset(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	token := s.login(t, "/api/v1/employee/emp-login", "admin@example.com", "adminpass")

	body := strings.Replace(employeeBody, `"password": "password1"`, `"password": ""`, 1)
	if rec, resp := s.do(t, http.MethodPost, "/api/v1/employee/emp-registration", token, body); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %v", rec.Code, resp)
	}

	rec, _ := s.do(t, http.MethodPut, "/api/v1/employee/single-emp", token, `{"cnic":"1234567890123","password":"brand-new-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", rec.Code)
	}
	s.login(t, "/api/v1/employee/emp-login", "ayesha@example.com", "brand-new-pass")
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health", "/health/ready"} {
		rec, _ := s.do(t, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_OrgUnits(t *testing.T) {
	s := newTestServer(t)
	s.seedEmployee(t, "admin@example.com", "adminpass", domain.RoleAdmin)
	s.seedEmployee(t, "staff@example.com", "staffpass", domain.RoleStaff)
	adminToken := s.login(t, "/api/v1/employee/emp-login", "admin@example.com", "adminpass")
	staffToken := s.login(t, "/api/v1/employee/emp-login", "staff@example.com", "staffpass")

	rec, _ := s.do(t, http.MethodGet, "/api/v1/city/all-cities", "", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("no token: expected 403, got %d", rec.Code)
	}

	cityBody := `{"city":"Lahore","country":"Pakistan"}`
	rec, _ = s.do(t, http.MethodPost, "/api/v1/city/add-city", staffToken, cityBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("staff add-city: expected 401, got %d", rec.Code)
	}
	rec, resp := s.do(t, http.MethodPost, "/api/v1/city/add-city", adminToken, cityBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add-city: expected 201, got %d: %v", rec.Code, resp)
	}
	cityID := resp["data"].(map[string]any)["id"].(string)

	rec, resp = s.do(t, http.MethodPost, "/api/v1/branch/add-branch", adminToken,
		`{"title":"Gulberg","address":"Main Boulevard 12","city":"`+cityID+`","contact":"0421234567"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid branch: expected 400, got %d", rec.Code)
	}
	if msg := resp["error"].(string); !strings.Contains(msg, "contact") || !strings.Contains(msg, "email") {
		t.Fatalf("unexpected message: %q", msg)
	}

	rec, resp = s.do(t, http.MethodPost, "/api/v1/branch/add-branch", adminToken,
		`{"title":"Gulberg","address":"Main Boulevard 12","city":"`+cityID+`","contact":"04212345678","email":"gulberg@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add-branch: expected 201, got %d: %v", rec.Code, resp)
	}
	branch := resp["data"].(map[string]any)
	branchID := branch["id"].(string)
	if branch["city"] != cityID || branch["createdBy"] == nil {
		t.Fatalf("unexpected branch: %v", branch)
	}

	rec, resp = s.do(t, http.MethodPut, "/api/v1/branch/update-branch/"+branchID, adminToken, `{"title":"Gulberg III"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update-branch: expected 200, got %d: %v", rec.Code, resp)
	}
	updated := resp["data"].(map[string]any)
	if updated["title"] != "Gulberg III" {
		t.Fatalf("title not updated: %v", updated)
	}
	if history := updated["updates"].([]any); len(history) != 1 {
		t.Fatalf("expected one history entry, got %v", history)
	}

	rec, resp = s.do(t, http.MethodGet, "/api/v1/branch/branch-count", staffToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("branch-count: expected 200, got %d", rec.Code)
	}
	if n := resp["data"].(map[string]any)["branchCount"].(float64); n != 1 {
		t.Fatalf("branchCount = %v", n)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/city/single-city/"+cityID, staffToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("single-city: expected 200, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/branch/delete-branch/"+branchID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete-branch: expected 200, got %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodDelete, "/api/v1/branch/delete-branch/"+branchID, adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodGet, "/api/v1/department/single-department/not-an-id", staffToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing department: expected 404, got %d", rec.Code)
	}
}
