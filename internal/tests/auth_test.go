package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taxiq/internal/domain"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 7. REGISTRATION, LOGIN AND TOKENS
// ──────────────────────────────────────────────

func newAuthFixture() (*service.AuthService, *MockCustomerRepository, *MockDriverRepository) {
	customerRepo := NewMockCustomerRepository()
	driverRepo := NewMockDriverRepository()
	svc := service.NewAuthService(customerRepo, driverRepo, "test-secret", time.Hour,
		"admin@example.com", "admin-pass")
	return svc, customerRepo, driverRepo
}

func TestRegisterCustomer_HashesPasswordAndLowercasesEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	customer, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerRequest{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "s3cret",
		Phone:    "555-0101",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if customer.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", customer.Email)
	}
	if customer.PasswordHash == "s3cret" {
		t.Error("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("s3cret")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegisterCustomer_DuplicateEmail_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	req := service.RegisterCustomerRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Phone:    "555-0101",
	}
	if _, err := svc.RegisterCustomer(context.Background(), req); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := svc.RegisterCustomer(context.Background(), req)
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestRegisterCustomer_MissingFields_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	_, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	if !errors.Is(err, service.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestRegisterDriver_StartsOffline(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	driver, err := svc.RegisterDriver(context.Background(), service.RegisterDriverRequest{
		Username:     "bob",
		Email:        "bob@example.com",
		Password:     "s3cret",
		Phone:        "555-0102",
		VehicleModel: "Toyota Prius",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.Status != domain.DriverStatusOffline {
		t.Errorf("expected new driver OFFLINE, got %s", driver.Status)
	}
}

func TestLoginCustomer_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	customer, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Phone:    "555-0101",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.LoginCustomer(context.Background(), "ALICE@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.SubjectID != customer.ID {
		t.Errorf("expected subject %q, got %q", customer.ID, result.SubjectID)
	}
	if result.Role != domain.RoleCustomer {
		t.Errorf("expected customer role, got %s", result.Role)
	}

	claims, err := svc.Validate(result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SubjectID != customer.ID || claims.Role != domain.RoleCustomer {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestLoginCustomer_WrongPassword_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	if _, err := svc.RegisterCustomer(context.Background(), service.RegisterCustomerRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Phone:    "555-0101",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.LoginCustomer(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginCustomer_UnknownEmail_SameErrorAsBadPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	_, err := svc.LoginCustomer(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginCustomer_BlockedAccount_Rejected(t *testing.T) {
	t.Parallel()

	svc, customerRepo, _ := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	customerRepo.AddCustomer(&domain.Customer{
		ID:           "cust-1",
		Email:        "mallory@example.com",
		PasswordHash: string(hash),
		Blocked:      true,
	})

	_, err = svc.LoginCustomer(context.Background(), "mallory@example.com", "s3cret")
	if !errors.Is(err, service.ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
}

func TestLoginAdmin_IssuesAdminToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	result, err := svc.LoginAdmin("Admin@Example.com", "admin-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", result.Role)
	}

	claims, err := svc.Validate(result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected admin claims, got %+v", claims)
	}
}

func TestLoginAdmin_WrongCredentials_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "admin@example.com", password: "wrong"},
		{name: "wrong email", email: "other@example.com", password: "admin-pass"},
		{name: "both empty", email: "", password: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LoginAdmin(tc.email, tc.password)
			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginAdmin_DisabledWithoutCredentials(t *testing.T) {
	t.Parallel()

	svc := service.NewAuthService(NewMockCustomerRepository(), NewMockDriverRepository(),
		"test-secret", time.Hour, "", "")

	_, err := svc.LoginAdmin("", "")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials when admin is unconfigured, got %v", err)
	}
}

func TestValidate_TamperedToken_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()
	other := service.NewAuthService(NewMockCustomerRepository(), NewMockDriverRepository(),
		"other-secret", time.Hour, "", "")

	result, err := other.IssueToken("cust-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Validate(result.Token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
	if _, err := svc.Validate("not-a-token"); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestValidate_ExpiredToken_Rejected(t *testing.T) {
	t.Parallel()

	expired := service.NewAuthService(NewMockCustomerRepository(), NewMockDriverRepository(),
		"test-secret", -time.Minute, "", "")

	result, err := expired.IssueToken("cust-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := expired.Validate(result.Token); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
