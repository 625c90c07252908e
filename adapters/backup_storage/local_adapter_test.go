package backup_storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func TestLocalAdapter_UploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalAdapter(root)
	ctx := context.Background()

	dst, err := store.Upload(ctx, strings.NewReader("dump-bytes"), "backups/database", "backup-1.dump")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "backups", "database", "backup-1.dump"), dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "dump-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "backups/database/backup-1.dump"))
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is not an error.
	assert.NoError(t, store.Delete(ctx, "backups/database/backup-1.dump"))
}

func TestNewCloudinaryAdapter_RequiresCloudName(t *testing.T) {
	_, err := NewCloudinaryAdapter(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}
