package services

import (
	"testing"

	"github.com/moolahfactory/moolah/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Alice@Example.com", "password123", false)
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password must be stored hashed")
		}
		if !user.IsActive {
			t.Error("new user should be active")
		}
		if user.IsAdmin {
			t.Error("user should not be admin")
		}
		if user.Points != 0 {
			t.Errorf("new user should start with 0 points, got %d", user.Points)
		}
	})

	t.Run("admin_flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("admin@example.com", "password123", true)
		testutil.AssertNoError(t, err)
		if !user.IsAdmin {
			t.Error("expected admin user")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("alice@example.com", "password123", false)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateUser("ALICE@example.com", "different456", false)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateUser("alice@example.com", "", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUserWithEmail(t, db, "bob@example.com")

		got, err := svc.GetUserByEmail("BOB@example.com")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("inactive_user_hidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUserWithEmail(t, db, "gone@example.com")
		testutil.AssertNoError(t, db.Model(user).Update("is_active", false).Error)

		_, err := svc.GetUserByEmail("gone@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("carol@example.com", "s3cretpass", false)
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "s3cretpass") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrongpass") {
		t.Error("expected wrong password to fail")
	}
}
