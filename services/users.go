package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BAttainment/forms"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/res"
	"go.uber.org/zap"
)

var errBadCredentials = errors.New("invalid email or password")

type UsersService struct {
	users repositories.UserRepository
	auth  *AuthService
}

func NewUsersService(users repositories.UserRepository, auth *AuthService) *UsersService {
	return &UsersService{
		users: users,
		auth:  auth,
	}
}

func (u *UsersService) token(user *models.User) (string, *res.ErrorRes) {
	token, err := u.auth.CreateToken(user)
	if err != nil {
		zap.L().Error("sign token", zap.Error(err))
		return "", res.Internal(err)
	}
	return token, nil
}

func (u *UsersService) Signup(ctx context.Context, form *forms.SignupForm) (string, *models.User, *res.ErrorRes) {
	user, err := models.NewModelUser(form.Email, form.Password)
	if err != nil {
		return "", nil, res.Internal(err)
	}
	if _, err := u.users.Create(ctx, &user); err != nil {
		if repositories.IsDuplicate(err) {
			return "", nil, res.NewErrorRes(http.StatusConflict, "email already registered")
		}
		return "", nil, storageError(err, "user")
	}
	token, errRes := u.token(&user)
	if errRes != nil {
		return "", nil, errRes
	}
	return token, &user, nil
}

func (u *UsersService) Login(ctx context.Context, form *forms.LoginForm) (string, *models.User, *res.ErrorRes) {
	user, err := u.users.GetByEmail(ctx, form.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return "", nil, &res.ErrorRes{Err: errBadCredentials, StatusCode: http.StatusUnauthorized}
		}
		return "", nil, storageError(err, "user")
	}
	if !user.CheckPassword(form.Password) {
		return "", nil, &res.ErrorRes{Err: errBadCredentials, StatusCode: http.StatusUnauthorized}
	}
	token, errRes := u.token(user)
	if errRes != nil {
		return "", nil, errRes
	}
	return token, user, nil
}

func (u *UsersService) GetUser(ctx context.Context, idUser string) (*models.User, *res.ErrorRes) {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	user, err := u.users.GetByID(ctx, idObjUser)
	if err != nil {
		return nil, storageError(err, "user")
	}
	return user, nil
}

// Users only see their own account
func (u *UsersService) GetUserByEmail(ctx context.Context, claims *Claims, email string) (*models.User, *res.ErrorRes) {
	if models.NormalizeEmail(email) != models.NormalizeEmail(claims.Email) {
		return nil, res.NewErrorRes(http.StatusNotFound, "user not found")
	}
	return u.GetUser(ctx, claims.ID)
}

func (u *UsersService) GetCotypes(ctx context.Context, idUser string) ([]string, *res.ErrorRes) {
	user, errRes := u.GetUser(ctx, idUser)
	if errRes != nil {
		return nil, errRes
	}
	if user.Cotypes == nil {
		return []string{}, nil
	}
	return user.Cotypes, nil
}

func (u *UsersService) AddCotype(ctx context.Context, idUser, cotype string) ([]string, *res.ErrorRes) {
	cotype = strings.TrimSpace(cotype)
	if cotype == "" {
		return nil, res.NewErrorRes(http.StatusBadRequest, "cotype can not be empty")
	}
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return nil, errRes
	}
	if err := u.users.AddCotype(ctx, idObjUser, cotype); err != nil {
		return nil, storageError(err, "user")
	}
	return u.GetCotypes(ctx, idUser)
}

func (u *UsersService) DeleteCotype(ctx context.Context, idUser, cotype string) *res.ErrorRes {
	idObjUser, errRes := parseID(idUser, "user")
	if errRes != nil {
		return errRes
	}
	if err := u.users.RemoveCotype(ctx, idObjUser, cotype); err != nil {
		return storageError(err, "cotype")
	}
	return nil
}
