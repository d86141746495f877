package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAdminLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(env *testEnv)
		wantStatus int
		wantResp   models.AdminLoginResponse
	}{
		{
			name: "correct password",
			body: models.AdminLoginRequest{Password: "secret"},
			setup: func(env *testEnv) {
				env.auth.EXPECT().AdminLogin(gomock.Any(), "secret").
					Return(models.Token{SignedString: "jwt", Role: models.RoleAdmin}, nil)
			},
			wantStatus: http.StatusOK,
			wantResp:   models.AdminLoginResponse{Success: true, Token: "jwt"},
		},
		{
			name: "wrong password",
			body: models.AdminLoginRequest{Password: "nope"},
			setup: func(env *testEnv) {
				env.auth.EXPECT().AdminLogin(gomock.Any(), "nope").
					Return(models.Token{}, service.ErrWrongAdminPassword)
			},
			wantStatus: http.StatusUnauthorized,
			wantResp:   models.AdminLoginResponse{Success: false, Message: "invalid password"},
		},
		{
			name:       "invalid json",
			body:       "{",
			setup:      func(env *testEnv) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			rec := env.do(http.MethodPost, "/api/admin/login", "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusBadRequest {
				assert.Equal(t, tt.wantResp, decodeBody[models.AdminLoginResponse](t, rec))
			}
		})
	}
}

func TestPINLogin_ByPIN(t *testing.T) {
	env := newTestEnv(t)
	user := models.User{ID: 3, Name: "Ana"}

	env.users.EXPECT().LoginByPIN(gomock.Any(), "4321").Return(user, nil)
	env.auth.EXPECT().CreateUserToken(gomock.Any(), user).
		Return(models.Token{SignedString: "user-jwt", UserID: 3, Role: models.RoleUser}, nil)

	rec := env.do(http.MethodPost, "/api/users/login", "", models.PINLoginRequest{PIN: "4321"})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.PINLoginResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "user-jwt", resp.Token)
	if assert.NotNil(t, resp.User) {
		assert.Equal(t, int64(3), resp.User.ID)
	}
	if assert.NotNil(t, resp.MustResetPIN) {
		assert.False(t, *resp.MustResetPIN)
	}
}

func TestPINLogin_DefaultPINWithUserID(t *testing.T) {
	env := newTestEnv(t)
	userID := int64(5)
	user := models.User{ID: 5, Name: "Bruno", MustResetPIN: true}

	env.users.EXPECT().Authenticate(gomock.Any(), userID, models.DefaultPIN).Return(user, nil)
	env.auth.EXPECT().CreateUserToken(gomock.Any(), user).Return(models.Token{SignedString: "t"}, nil)

	rec := env.do(http.MethodPost, "/api/users/login", "", models.PINLoginRequest{PIN: models.DefaultPIN, UserID: &userID})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.PINLoginResponse](t, rec)
	if assert.NotNil(t, resp.MustResetPIN) {
		assert.True(t, *resp.MustResetPIN)
	}
}

func TestPINLogin_WrongPIN(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().LoginByPIN(gomock.Any(), "9999").Return(models.User{}, service.ErrWrongPIN)

	rec := env.do(http.MethodPost, "/api/users/login", "", models.PINLoginRequest{PIN: "9999"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeBody[models.PINLoginResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.User)
	assert.Empty(t, resp.Token)
	assert.NotEmpty(t, resp.Message)
}

func TestPINLogin_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.users.EXPECT().LoginByPIN(gomock.Any(), "1111").Return(models.User{}, errors.New("db down"))

	rec := env.do(http.MethodPost, "/api/users/login", "", models.PINLoginRequest{PIN: "1111"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrInternalResponse.Error(), decodeBody[models.ErrorResponse](t, rec).Message)
}
