package gormstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/db"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/gormstore"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store/storetest"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	gdb, err := db.Connect("sqlite", ":memory:")
	require.NoError(t, err)

	s := gormstore.New(gdb)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, newTestStore)
}
