package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

const minPasswordLen = 6

type AuthUC struct {
	Accounts domain.AccountRepo
}

// Login verifies credentials. An unknown username and a wrong password both
// surface as ErrInvalidCredentials.
func (uc *AuthUC) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	acc, err := uc.Accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return acc, nil
}

// ChangePassword validates everything before touching the store. The caller
// invalidates the session on success.
func (uc *AuthUC) ChangePassword(ctx context.Context, accountID uint, oldPw, newPw, confirm string) error {
	acc, err := uc.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(oldPw)) != nil {
		return domain.ErrWrongPassword
	}
	if newPw != confirm {
		return domain.ErrPasswordMismatch
	}
	if len(newPw) < minPasswordLen {
		return domain.ErrPasswordTooShort
	}
	hash, err := HashPassword(newPw)
	if err != nil {
		return err
	}
	acc.Password = hash
	return uc.Accounts.Save(ctx, acc)
}

func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
