package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant-api/mocks"
	"restaurant-api/models"
	"restaurant-api/validators"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type stubTokens struct{}

func (stubTokens) GenerateToken(u *models.User) (string, error) {
	return "token-for-" + u.Email, nil
}

func newAuthService(t *testing.T) (*AuthService, *mocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks.NewMockMailer(ctrl)
	return NewAuthService(newTestDB(t), stubTokens{}, m, "Casa Test", "http://front.test"), m
}

func register(t *testing.T, s *AuthService, email string) *AuthResult {
	t.Helper()
	res, err := s.Register(context.Background(), validators.RegisterRequest{
		Name: "Ana", Email: email, Password: "secret1", Role: models.RoleWaiter,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return res
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newAuthService(t)
	ctx := context.Background()

	res := register(t, s, "ana@example.com")
	if res.Token != "token-for-ana@example.com" || !res.User.IsActive {
		t.Fatalf("unexpected register result %+v", res)
	}
	if res.User.PasswordHash == "secret1" {
		t.Fatal("password stored in clear text")
	}

	_, err := s.Register(ctx, validators.RegisterRequest{Name: "Other", Email: "ana@example.com", Password: "secret1", Role: models.RoleCook})
	assertKind(t, err, KindConflict)

	if _, err := s.Login(ctx, validators.LoginRequest{Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	_, err = s.Login(ctx, validators.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assertKind(t, err, KindUnauthorized)
	_, err = s.Login(ctx, validators.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assertKind(t, err, KindUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	s, _ := newAuthService(t)
	res := register(t, s, "ana@example.com")
	if err := s.db.Model(res.User).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}
	_, err := s.Login(context.Background(), validators.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	assertKind(t, err, KindForbidden)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	s, m := newAuthService(t)
	m.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	if err := s.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
}

func TestForgotPassword_MailFailureStillStoresToken(t *testing.T) {
	s, m := newAuthService(t)
	res := register(t, s, "ana@example.com")

	var sentBody string
	m.EXPECT().Send(gomock.Any(), "ana@example.com", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, html string) error {
			sentBody = html
			return errors.New("smtp unavailable")
		})

	if err := s.ForgotPassword(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("mail failure must not surface, got %v", err)
	}

	var user models.User
	if err := s.db.First(&user, res.User.ID).Error; err != nil {
		t.Fatal(err)
	}
	if user.ResetPasswordToken == nil || len(*user.ResetPasswordToken) != 64 {
		t.Fatalf("expected stored 64 char token, got %v", user.ResetPasswordToken)
	}
	if user.ResetPasswordExpires == nil || time.Until(*user.ResetPasswordExpires) <= 0 {
		t.Fatalf("expected future expiry, got %v", user.ResetPasswordExpires)
	}
	if !strings.Contains(sentBody, "http://front.test/reset-password?token="+*user.ResetPasswordToken) {
		t.Fatal("reset link missing from email body")
	}
}

func TestResetPassword(t *testing.T) {
	s, m := newAuthService(t)
	ctx := context.Background()
	res := register(t, s, "ana@example.com")
	m.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if err := s.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatal(err)
	}
	var user models.User
	if err := s.db.First(&user, res.User.ID).Error; err != nil {
		t.Fatal(err)
	}
	token := *user.ResetPasswordToken

	assertKind(t, s.ResetPassword(ctx, validators.ResetPasswordRequest{Token: strings.Repeat("0", 64), Password: "newpass"}), KindInvalid)

	if err := s.ResetPassword(ctx, validators.ResetPasswordRequest{Token: token, Password: "newpass"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := s.db.First(&user, res.User.ID).Error; err != nil {
		t.Fatal(err)
	}
	if user.ResetPasswordToken != nil || user.ResetPasswordExpires != nil {
		t.Fatal("expected reset token to be cleared")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")) != nil {
		t.Fatal("password was not updated")
	}

	// tokens are single use
	assertKind(t, s.ResetPassword(ctx, validators.ResetPasswordRequest{Token: token, Password: "again1"}), KindInvalid)
}

func TestResetPassword_Expired(t *testing.T) {
	s, m := newAuthService(t)
	ctx := context.Background()
	register(t, s, "ana@example.com")
	m.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	s.now = func() time.Time { return time.Now().Add(-2 * PasswordResetValidity) }
	if err := s.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatal(err)
	}
	s.now = time.Now

	var user models.User
	if err := s.db.Where("email = ?", "ana@example.com").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	err := s.ResetPassword(ctx, validators.ResetPasswordRequest{Token: *user.ResetPasswordToken, Password: "newpass"})
	assertKind(t, err, KindInvalid)
}
