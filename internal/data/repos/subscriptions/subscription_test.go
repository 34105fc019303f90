package subscriptions

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func seedUser(t *testing.T, tx *gorm.DB, name string) *types.User {
	t.Helper()
	u := &types.User{
		Email:     name + "@example.com",
		Username:  name,
		Password:  "hashed",
		FirstName: "Sub",
		LastName:  "Tester",
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func TestSubscriptionRepo_AddRemoveExists(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewSubscriptionRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	follower := seedUser(t, tx, "follower")
	author := seedUser(t, tx, "author")

	if err := repo.Add(ctx, tx, &types.Subscription{UserID: follower.ID, AuthorID: author.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := repo.Add(ctx, tx, &types.Subscription{UserID: follower.ID, AuthorID: author.ID})
	if err == nil || !repos.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation on duplicate subscription, got %v", err)
	}

	ok, err := repo.Exists(ctx, tx, follower.ID, author.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Fatalf("expected subscription to exist")
	}

	n, err := repo.Remove(ctx, tx, follower.ID, author.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 affected row, got %d", n)
	}
}

func TestSubscriptionRepo_ListAuthorIDsKeepsInsertionOrder(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewSubscriptionRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	follower := seedUser(t, tx, "reader")
	a := seedUser(t, tx, "firstauthor")
	b := seedUser(t, tx, "secondauthor")

	for _, author := range []*types.User{a, b} {
		if err := repo.Add(ctx, tx, &types.Subscription{UserID: follower.ID, AuthorID: author.ID}); err != nil {
			t.Fatalf("add %s: %v", author.Username, err)
		}
	}

	ids, total, err := repo.ListAuthorIDsByUser(ctx, tx, follower.ID, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(ids) != 2 {
		t.Fatalf("expected 2 subscriptions, got total=%d len=%d", total, len(ids))
	}
}
