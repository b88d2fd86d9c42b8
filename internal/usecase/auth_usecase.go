package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = apperror.Wrap(apperror.KindUnauthenticated, "invalid employee code or password", nil)

// AuthUsecase issues the bearer tokens the API trusts as identity assertions.
type AuthUsecase struct {
	repo   repository.EmployeeRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthUsecase(repo repository.EmployeeRepository, secret []byte, ttl time.Duration) *AuthUsecase {
	return &AuthUsecase{repo: repo, secret: secret, ttl: ttl}
}

func (u *AuthUsecase) Login(ctx context.Context, code, password string) (string, *model.Employee, error) {
	// 1. Find the employee by code
	employee, err := u.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, errBadCredentials
		}
		return "", nil, fmt.Errorf("find employee by code: %w", err)
	}
	if !employee.IsActive {
		return "", nil, errBadCredentials
	}

	// 2. Compare password against the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return "", nil, errBadCredentials
	}

	// 3. Sign the token
	token, err := u.IssueToken(employee, time.Now())
	if err != nil {
		return "", nil, err
	}
	return token, employee, nil
}

func (u *AuthUsecase) IssueToken(employee *model.Employee, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       employee.ID,
		"employee_code": employee.EmployeeCode,
		"role":          employee.Role,
		"iat":           now.Unix(),
		"exp":           now.Add(u.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (u *AuthUsecase) Profile(ctx context.Context, employeeID uint) (*model.Employee, error) {
	return LookupEmployee(ctx, u.repo, employeeID)
}

// HashPassword is shared with the seeder.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
