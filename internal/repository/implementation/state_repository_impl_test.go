package implementation

import (
	"context"
	"os"
	"testing"

	"paraphrase-be/internal/model"
	"paraphrase-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key         string
		wantSession string
		wantRecord  string
	}{
		{key: "paraphrase:abc:paraphrase-form-visibility", wantSession: "abc", wantRecord: "paraphrase-form-visibility"},
		{key: "paraphrase-form-collapsed", wantSession: "", wantRecord: "paraphrase-form-collapsed"},
		{key: "paraphrase:dangling", wantSession: "", wantRecord: "paraphrase:dangling"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			session, record := splitKey(tt.key)
			assert.Equal(t, tt.wantSession, session)
			assert.Equal(t, tt.wantRecord, record)
		})
	}
}

func TestStateRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WizardState{}))

	ctx := context.Background()
	r := NewStateRepository(db)
	key := "paraphrase:" + uuid.NewString() + ":paraphrase-form-visibility"
	t.Cleanup(func() { _ = r.Delete(ctx, key) })

	require.NoError(t, r.Set(ctx, key, []byte(`{"context":true}`)))
	require.NoError(t, r.Set(ctx, key, []byte(`{"context":true,"system":true}`)))

	got, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"context":true,"system":true}`, string(got))

	require.NoError(t, r.Delete(ctx, key))
	_, ok, err = r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
