package storage

import (
	"context"
	"testing"

	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/testutil"
)

func TestGormStore(t *testing.T) {
	ctx := context.Background()

	t.Run("absent_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewGormStore(db)

		_, ok, err := s.Get(ctx, "balance")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected key to be absent")
		}
	})

	t.Run("upsert_overwrites", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewGormStore(db)

		testutil.AssertNoError(t, s.SetMany(ctx, map[string]string{"balance": "100", "currency": "USD"}))
		testutil.AssertNoError(t, s.SetMany(ctx, map[string]string{"balance": "95"}))

		v, ok, err := s.Get(ctx, "balance")
		testutil.AssertNoError(t, err)
		if !ok || v != "95" {
			t.Errorf("expected balance 95, got %q (present=%v)", v, ok)
		}

		var count int64
		db.Model(&models.KVEntry{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 rows, got %d", count)
		}
	})

	t.Run("empty_set_many_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewGormStore(db)

		testutil.AssertNoError(t, s.SetMany(ctx, nil))
	})

	t.Run("delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewGormStore(db)

		testutil.AssertNoError(t, s.SetMany(ctx, map[string]string{"initialBalance": "500"}))
		testutil.AssertNoError(t, s.Delete(ctx, "initialBalance"))

		_, ok, err := s.Get(ctx, "initialBalance")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("closed_db_returns_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		s := NewGormStore(db)
		sqlDB, err := db.DB()
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, sqlDB.Close())

		if _, _, err := s.Get(ctx, "balance"); err == nil {
			t.Error("expected error from closed database")
		}
		if err := s.SetMany(ctx, map[string]string{"balance": "1"}); err == nil {
			t.Error("expected error from closed database")
		}
	})
}
