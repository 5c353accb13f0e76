package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"agriaccount/internal/core/apperror"
)

type memUserRepo struct {
	nextID int64
	users  map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func (m *memUserRepo) Create(ctx context.Context, user *User) error {
	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.users[user.Username] = &copied
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("user", id)
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return apperror.NewNotFound("user", id)
}

func newTestService(repo *memUserRepo) *Service {
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwtService, DefaultServiceConfig())
}

func seedUser(t *testing.T, repo *memUserRepo, username, password string, active bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "accountant",
		IsActive:     active,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newTestService(repo)
		seedUser(t, repo, "asha", "correct horse", true)

		result, err := svc.Login(ctx, "asha", "correct horse")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.Token == "" {
			t.Error("empty token")
		}
		if result.User.Username != "asha" {
			t.Errorf("User = %q", result.User.Username)
		}

		claims, err := NewJWTService(DefaultJWTConfig("test-secret")).ValidateToken(result.Token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.Username != "asha" || claims.Role != "accountant" {
			t.Errorf("claims = %+v", claims)
		}
	})

	// Wrong password, unknown username and deactivated account must be
	// indistinguishable to the caller.
	t.Run("failures are uniform", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newTestService(repo)
		seedUser(t, repo, "asha", "correct horse", true)
		seedUser(t, repo, "gone", "whatever12", false)

		for _, tt := range []struct {
			name               string
			username, password string
		}{
			{"wrong password", "asha", "nope"},
			{"unknown user", "nobody", "nope"},
			{"inactive user", "gone", "whatever12"},
		} {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Login(ctx, tt.username, tt.password)
				appErr, ok := apperror.AsAppError(err)
				if !ok || appErr.Code != apperror.CodeUnauthorized {
					t.Fatalf("error = %v, want UNAUTHORIZED", err)
				}
				if appErr.Message != "invalid credentials" {
					t.Errorf("message = %q, want invalid credentials", appErr.Message)
				}
			})
		}
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active user with a hashed password", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newTestService(repo)

		user, err := svc.Register(ctx, "ravi", "longenough", "Ravi Kumar", "clerk")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if !user.IsActive {
			t.Error("IsActive = false")
		}
		if user.PasswordHash == "longenough" || user.PasswordHash == "" {
			t.Error("password stored unhashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")); err != nil {
			t.Errorf("hash does not verify: %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		svc := newTestService(newMemUserRepo())
		_, err := svc.Register(ctx, "ravi", "short", "", "")
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeValidation {
			t.Fatalf("error = %v, want VALIDATION_ERROR", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newTestService(repo)
		seedUser(t, repo, "asha", "correct horse", true)

		_, err := svc.Register(ctx, "asha", "longenough", "", "")
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeConflict {
			t.Fatalf("error = %v, want CONFLICT", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := newTestService(repo)
	user := seedUser(t, repo, "asha", "correct horse", true)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "wrong", "nextpassword")
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeUnauthorized {
			t.Fatalf("error = %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("short replacement", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "correct horse", "tiny")
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeValidation {
			t.Fatalf("error = %v, want VALIDATION_ERROR", err)
		}
	})

	t.Run("success rotates the hash", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, user.ID, "correct horse", "next password"); err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if _, err := svc.Login(ctx, "asha", "next password"); err != nil {
			t.Errorf("login with new password: %v", err)
		}
		if _, err := svc.Login(ctx, "asha", "correct horse"); err == nil {
			t.Error("old password still accepted")
		}
	})
}
