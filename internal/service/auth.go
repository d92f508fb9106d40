package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// ErrInvalidToken is returned for malformed, mis-signed or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a bearer token.
type Claims struct {
	SubjectID string
	Role      domain.Role
}

// adminSubject is the principal ID carried by admin tokens. The admin is a
// configured principal, not a row in either account table.
const adminSubject = "admin"

// AuthService issues and validates bearer tokens and handles account
// registration and login for customers, drivers and the configured admin.
type AuthService struct {
	customerRepo  repository.CustomerRepository
	driverRepo    repository.DriverRepository
	secret        []byte
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
}

// NewAuthService creates a new AuthService. Empty admin credentials disable
// admin login entirely.
func NewAuthService(
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	secret string,
	tokenTTL time.Duration,
	adminEmail string,
	adminPassword string,
) *AuthService {
	return &AuthService{
		customerRepo:  customerRepo,
		driverRepo:    driverRepo,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		adminEmail:    strings.ToLower(adminEmail),
		adminPassword: adminPassword,
	}
}

// RegisterCustomerRequest contains the parameters for customer registration.
type RegisterCustomerRequest struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// RegisterCustomer creates a customer account with a hashed password.
func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*domain.Customer, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		JoinedAt:     time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// RegisterDriverRequest contains the parameters for driver registration.
type RegisterDriverRequest struct {
	Username     string
	Email        string
	Password     string
	Phone        string
	VehicleModel string
}

// RegisterDriver creates a driver account. New drivers start OFFLINE until
// they flip themselves AVAILABLE.
func (s *AuthService) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.VehicleModel == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	driver := &domain.Driver{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		VehicleModel: req.VehicleModel,
		Status:       domain.DriverStatusOffline,
		JoinedAt:     time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	SubjectID string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// LoginCustomer checks credentials and issues a customer token.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (*LoginResult, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if customer.Blocked {
		return nil, ErrAccountBlocked
	}

	return s.issue(customer.ID, domain.RoleCustomer)
}

// LoginDriver checks credentials and issues a driver token.
func (s *AuthService) LoginDriver(ctx context.Context, email, password string) (*LoginResult, error) {
	driver, err := s.driverRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if driver.Status == domain.DriverStatusBlocked {
		return nil, ErrAccountBlocked
	}

	return s.issue(driver.ID, domain.RoleDriver)
}

// LoginAdmin checks the configured admin credentials and issues an admin
// token. Comparison is constant-time so the email and password cannot be
// probed separately.
func (s *AuthService) LoginAdmin(email, password string) (*LoginResult, error) {
	if s.adminEmail == "" || s.adminPassword == "" {
		return nil, ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(s.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	return s.issue(adminSubject, domain.RoleAdmin)
}

// IssueToken signs a token for an arbitrary principal. Used by tests.
func (s *AuthService) IssueToken(subjectID string, role domain.Role) (*LoginResult, error) {
	return s.issue(subjectID, role)
}

func (s *AuthService) issue(subjectID string, role domain.Role) (*LoginResult, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subjectID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		SubjectID: subjectID,
		Role:      role,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate parses and verifies a bearer token string.
func (s *AuthService) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	roleStr, _ := mc["role"].(string)

	role, ok := domain.ParseRole(roleStr)
	if sub == "" || !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{SubjectID: sub, Role: role}, nil
}
