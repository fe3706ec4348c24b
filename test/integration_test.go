package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/handler"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
	"github.com/pesio-ai/be-plt-directory/internal/service"
	tokenpkg "github.com/pesio-ai/be-plt-directory/pkg/token"
)

// Runs against a live database prepared by scripts/bootstrap.go. Set
// DIRECTORY_TEST_DATABASE_URL to enable.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbURL := os.Getenv("DIRECTORY_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("DIRECTORY_TEST_DATABASE_URL not set")
	}

	dbPool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(dbPool.Close)

	log := zerolog.Nop()

	privateKeyPEM, publicKeyPEM, err := tokenpkg.GenerateKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate token keys: %v", err)
	}

	tokenManager, err := tokenpkg.NewManager(privateKeyPEM, publicKeyPEM, service.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}

	userRepo := repository.NewUserRepository(dbPool, log)
	tokenRepo := repository.NewTokenRepository(dbPool, log)
	companyRepo := repository.NewCompanyRepository(dbPool, log)
	employeeRepo := repository.NewEmployeeRepository(dbPool, log)

	authService := service.NewAuthService(userRepo, tokenRepo, tokenManager, log)
	companyService := service.NewCompanyService(companyRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)

	httpHandler := handler.NewHTTPHandler(authService, companyService, employeeService, log)

	srv := httptest.NewServer(httpHandler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return resp.StatusCode, decoded
}

func loginAs(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	status, body := call(t, srv, http.MethodGet, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("Login as %s failed with status %d: %v", email, status, body)
	}

	token, ok := body["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("Login returned no access token: %v", body)
	}
	return token
}

func TestLoginFlow(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("successful login with admin user", func(t *testing.T) {
		status, body := call(t, srv, http.MethodGet, "/login", "", map[string]string{
			"email":    "admin@test.com",
			"password": "Admin123!",
		})
		if status != http.StatusOK {
			t.Fatalf("Login status = %d, want 200", status)
		}
		if body["access_token"] == "" {
			t.Error("Login returned empty access token")
		}
		if body["expires_in"] == nil {
			t.Error("Login returned no expiry")
		}
	})

	t.Run("failed login with invalid password", func(t *testing.T) {
		status, _ := call(t, srv, http.MethodGet, "/login", "", map[string]string{
			"email":    "admin@test.com",
			"password": "WrongPassword",
		})
		if status != http.StatusUnauthorized {
			t.Errorf("Login status = %d, want 401", status)
		}
	})

	t.Run("failed login with non-existent user", func(t *testing.T) {
		status, _ := call(t, srv, http.MethodGet, "/login", "", map[string]string{
			"email":    "nonexistent@test.com",
			"password": "SomePassword",
		})
		if status != http.StatusUnauthorized {
			t.Errorf("Login status = %d, want 401", status)
		}
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := setupTestServer(t)
	token := loginAs(t, srv, "admin@test.com", "Admin123!")

	status, _ := call(t, srv, http.MethodGet, "/company", token, nil)
	if status != http.StatusOK {
		t.Fatalf("List companies status = %d, want 200", status)
	}

	status, _ = call(t, srv, http.MethodPost, "/logout", token, nil)
	if status != http.StatusOK {
		t.Fatalf("Logout status = %d, want 200", status)
	}

	status, _ = call(t, srv, http.MethodGet, "/company", token, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Revoked token status = %d, want 401", status)
	}
}

func TestMemberIsForbidden(t *testing.T) {
	srv := setupTestServer(t)
	token := loginAs(t, srv, "member@test.com", "Member123!")

	status, body := call(t, srv, http.MethodGet, "/company", token, nil)
	if status != http.StatusForbidden {
		t.Errorf("Member list status = %d, want 403: %v", status, body)
	}
}

func TestCompanyEmployeeLifecycle(t *testing.T) {
	srv := setupTestServer(t)
	token := loginAs(t, srv, "admin@test.com", "Admin123!")

	status, body := call(t, srv, http.MethodPost, "/company", token, map[string]any{
		"name":    "Acme Integration",
		"email":   "info@acme.example",
		"website": "https://acme.example",
	})
	if status != http.StatusCreated {
		t.Fatalf("Create company status = %d: %v", status, body)
	}
	companyID := int64(body["id"].(float64))

	status, body = call(t, srv, http.MethodPost, "/employee", token, map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"companyId": companyID,
		"email":     "jane@acme.example",
	})
	if status != http.StatusCreated {
		t.Fatalf("Create employee status = %d: %v", status, body)
	}
	employeeID := int64(body["id"].(float64))

	company, ok := body["company"].(map[string]any)
	if !ok || company["name"] != "Acme Integration" {
		t.Errorf("Created employee should resolve its company, got %v", body["company"])
	}

	status, body = call(t, srv, http.MethodDelete, fmt.Sprintf("/company/%d", companyID), token, nil)
	if status != http.StatusConflict {
		t.Errorf("Delete referenced company status = %d, want 409: %v", status, body)
	}

	status, body = call(t, srv, http.MethodPut, fmt.Sprintf("/employee/%d", employeeID), token, map[string]any{
		"lastName": "Smith",
	})
	if status != http.StatusOK {
		t.Fatalf("Update employee status = %d: %v", status, body)
	}
	if body["lastName"] != "Smith" {
		t.Errorf("lastName = %v, want Smith", body["lastName"])
	}
	if body["firstName"] != "Jane" {
		t.Errorf("firstName = %v, want Jane (absent field must keep its value)", body["firstName"])
	}

	status, body = call(t, srv, http.MethodDelete, fmt.Sprintf("/employee/%d", employeeID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("Delete employee status = %d: %v", status, body)
	}
	if body["data"] != "Employee deleted successfully" {
		t.Errorf("Delete employee ack = %v", body["data"])
	}

	status, body = call(t, srv, http.MethodDelete, fmt.Sprintf("/company/%d", companyID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("Delete company status = %d: %v", status, body)
	}
	if body["data"] != "Company deleted successfully" {
		t.Errorf("Delete company ack = %v", body["data"])
	}

	status, _ = call(t, srv, http.MethodGet, fmt.Sprintf("/company/%d", companyID), token, nil)
	if status != http.StatusNotFound {
		t.Errorf("Get deleted company status = %d, want 404", status)
	}
}
