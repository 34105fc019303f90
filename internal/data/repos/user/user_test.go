package user

import (
	"context"
	"testing"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{{
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "hashed",
		FirstName: "Alice",
		LastName:  "Smith",
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created) != 1 || created[0].ID.String() == "" {
		t.Fatalf("expected one created user with id, got %+v", created)
	}

	byEmail, err := repo.GetByEmails(ctx, tx, []string{"alice@example.com"})
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Username != "alice" {
		t.Fatalf("unexpected lookup result: %+v", byEmail)
	}

	exists, err := repo.EmailExists(ctx, tx, "alice@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected email to exist")
	}

	exists, err = repo.UsernameExists(ctx, tx, "nobody")
	if err != nil {
		t.Fatalf("username exists: %v", err)
	}
	if exists {
		t.Fatalf("expected username to be free")
	}
}

func TestUserRepo_DuplicateEmailIsUniqueViolation(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	seed := func(username string) error {
		_, err := repo.Create(ctx, tx, []*types.User{{
			Email:     "dup@example.com",
			Username:  username,
			Password:  "hashed",
			FirstName: "D",
			LastName:  "Up",
		}})
		return err
	}

	if err := seed("first"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := seed("second")
	if err == nil {
		t.Fatalf("expected unique violation on duplicate email")
	}
	if !repos.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestUserRepo_ListPaginates(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	for _, name := range []string{"pg1", "pg2", "pg3"} {
		if _, err := repo.Create(ctx, tx, []*types.User{{
			Email:     name + "@example.com",
			Username:  name,
			Password:  "hashed",
			FirstName: "P",
			LastName:  "G",
		}}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	page, total, err := repo.List(ctx, tx, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total < 3 {
		t.Fatalf("expected total >= 3, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
}
