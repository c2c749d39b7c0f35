package repositories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGormStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := ConnectDatabase(dsn)
	require.NoError(t, err)

	testStore(t, NewGormStore(db))
}
