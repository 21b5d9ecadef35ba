package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/repository"
)

// AuthResult carries a fresh token with the account and whichever profile
// its role owns.
type AuthResult struct {
	Token       string
	Account     *model.Account
	Supplier    *model.SupplierProfile
	Supermarket *model.SupermarketProfile
}

type AuthService struct {
	accounts     repository.AccountRepository
	suppliers    repository.SupplierRepository
	supermarkets repository.SupermarketRepository
	jwtSecret    []byte
	jwtExpiry    time.Duration
	log          *zap.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	suppliers repository.SupplierRepository,
	supermarkets repository.SupermarketRepository,
	jwtSecret string, jwtExpiry time.Duration, log *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts, suppliers: suppliers, supermarkets: supermarkets,
		jwtSecret: []byte(jwtSecret), jwtExpiry: jwtExpiry, log: log,
	}
}

// Register creates the account and its role's profile together.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*AuthResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := model.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if username == "" || email == "" || req.Password == "" {
		return nil, invalid("username, email and password are required")
	}
	if !role.Valid() {
		return nil, invalid("role must be supplier or supermarket")
	}

	exists, err := s.accounts.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check account: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{Username: username, Email: email, PasswordHash: string(hashed), Role: role}
	location := registrationLocation(req.Location.Coordinates())
	result := &AuthResult{Account: account}
	switch role {
	case model.RoleSupplier:
		result.Supplier = &model.SupplierProfile{
			Name: strings.TrimSpace(req.Name), Contact: strings.TrimSpace(req.Contact), Location: location,
		}
	case model.RoleSupermarket:
		result.Supermarket = &model.SupermarketProfile{
			Name: optionalName(req.Name), Phone: strings.TrimSpace(req.Phone), Location: location,
		}
	}

	err = s.accounts.Register(ctx, account, result.Supplier, result.Supermarket)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}

	if result.Token, err = s.generateToken(account); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.log.Info("account registered", zap.String("account_id", account.ID.String()), zap.String("role", string(role)))
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result := &AuthResult{Account: account}
	switch account.Role {
	case model.RoleSupplier:
		if result.Supplier, err = s.suppliers.GetByAccountID(ctx, account.ID); err != nil {
			return nil, fmt.Errorf("get supplier: %w", err)
		}
	case model.RoleSupermarket:
		if result.Supermarket, err = s.supermarkets.GetByAccountID(ctx, account.ID); err != nil {
			return nil, fmt.Errorf("get supermarket: %w", err)
		}
	}

	if result.Token, err = s.generateToken(account); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return result, nil
}

func (s *AuthService) Me(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *AuthService) generateToken(account *model.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID.String(),
		"role":     string(account.Role),
		"username": account.Username,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// registrationLocation fills in the address of a numeric location.
func registrationLocation(loc *model.Location) *model.Location {
	if loc == nil {
		return nil
	}
	out := *loc
	if strings.TrimSpace(out.Address) == "" {
		out.Address = "Unknown"
	}
	return &out
}

func optionalName(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}
