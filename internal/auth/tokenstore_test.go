package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *DBStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s := NewDBStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestTokenStores(t *testing.T) {
	stores := map[string]func(t *testing.T) TokenStore{
		"memory": func(*testing.T) TokenStore { return NewMemoryStore() },
		"sqlite": func(t *testing.T) TokenStore { return newSQLiteStore(t) },
	}
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			_, err := s.Get(ctx)
			assert.ErrorIs(t, err, ErrNoToken)

			assert.Error(t, s.Set(ctx, Tokens{Refresh: "r"}), "access is mandatory")

			require.NoError(t, s.Set(ctx, Tokens{Access: "a1", Refresh: "r1"}))
			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, Tokens{Access: "a1", Refresh: "r1"}, got)

			require.NoError(t, s.Set(ctx, Tokens{Access: "a2"}))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, Tokens{Access: "a2"}, got)

			require.NoError(t, s.Clear(ctx))
			_, err = s.Get(ctx)
			assert.ErrorIs(t, err, ErrNoToken)
		})
	}
}
