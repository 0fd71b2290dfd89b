package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("name: pipeline\nowner: ${env.TASKRES_OWNER}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), payload, 0o644))
	t.Setenv("TASKRES_OWNER", "dev")

	service := New(afs.New(), dir)

	var target struct {
		Name  string `yaml:"name"`
		Owner string `yaml:"owner"`
	}
	require.NoError(t, service.Load(context.Background(), "manifest", &target))
	assert.Equal(t, "pipeline", target.Name)
	assert.Equal(t, "dev", target.Owner, "env references expand before decoding")

	err := service.Load(context.Background(), "missing", &target)
	assert.Error(t, err)
}
