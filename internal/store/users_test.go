package store_test

import (
	"context"
	"errors"
	"testing"

	"bingo-server/internal/store"
	"bingo-server/internal/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := st.CreateUser(ctx, "One", "One@Example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	u, err := st.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Name != "One" {
		t.Fatalf("name = %q", u.Name)
	}
	if u.Email != "one@example.com" {
		t.Fatalf("email = %q, want lowercased", u.Email)
	}

	byEmail, err := st.GetUserByEmail(ctx, "ONE@example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != id {
		t.Fatalf("lookup by email returned %q, want %q", byEmail.ID, id)
	}
}

func TestGetUserNotFound(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	if _, err := st.GetUser(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, "One", "dup@example.com"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := st.CreateUser(ctx, "Two", "dup@example.com"); err == nil {
		t.Fatal("duplicate email accepted")
	}
}
