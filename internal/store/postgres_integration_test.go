package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestPostgres(t *testing.T) *Postgres {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := ConnectPostgres(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	return p
}

func TestIntegration_PostgresCRUD(t *testing.T) {
	p := setupTestPostgres(t)
	defer p.Close()
	ctx := context.Background()

	key := "test-" + uuid.NewString()
	defer p.Delete(ctx, key)

	require.NoError(t, p.Put(ctx, key, record("First")))
	require.NoError(t, p.Put(ctx, key, record("Second")))

	got, err := p.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Second", got.BasicInfo.Name)

	require.NoError(t, p.Delete(ctx, key))
	got, err = p.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConnectPostgres_RequiresURL(t *testing.T) {
	_, err := ConnectPostgres(context.Background(), "")
	assert.Error(t, err)
}
