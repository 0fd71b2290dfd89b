package taskres_test

import (
	"context"
	"embed"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/taskres"
	"github.com/viant/taskres/access"
	"github.com/viant/taskres/mem"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
	"github.com/viant/taskres/task"
	"github.com/viant/x"
)

//go:embed testdata/*
var embedFS embed.FS

type Counter struct {
	Value int
}

type Widget struct {
	Size int
}

func TestService_EndToEnd(t *testing.T) {
	srv, err := taskres.New()
	require.NoError(t, err)
	ctx := context.Background()

	aCounter, err := resource.Construct(srv.Resources(), func(c *Counter) {
		c.Value = 42
	})
	require.NoError(t, err)

	increment, err := srv.NewTask(func(c *Counter) {
		c.Value++
	}, task.WithName("increment"))
	require.NoError(t, err)
	assert.True(t, permission.CanRead[Counter](increment.Permission()))
	assert.True(t, permission.CanWrite[Counter](increment.Permission()))

	require.NoError(t, increment.Exec(ctx, srv.Resources()))
	assert.Equal(t, 43, aCounter.Value)

	var observed int
	report, err := srv.NewTask(func(c access.View[Counter]) {
		observed = c.Ptr().Value
	}, task.WithName("report"))
	require.NoError(t, err)
	assert.True(t, permission.CanRead[Counter](report.Permission()))
	assert.False(t, permission.CanWrite[Counter](report.Permission()))

	assert.True(t, srv.Conflicts(increment, report))
	assert.True(t, srv.Conflicts(report, increment))

	require.NoError(t, report.Exec(ctx, srv.Resources()))
	assert.Equal(t, 43, observed)

	assert.Same(t, increment, srv.Tasks().Lookup("increment"))
	assert.NoError(t, srv.Close())
}

func TestService_Manifest(t *testing.T) {
	srv, err := taskres.New(
		taskres.WithMetaFsOptions(&embedFS),
		taskres.WithMetaBaseURL("embed:///testdata"),
		taskres.WithExtensionTypes(x.NewType(reflect.TypeOf(Counter{}), x.WithName("Counter"))),
	)
	require.NoError(t, err)
	ctx := context.Background()

	manifest, err := srv.LoadManifest(ctx, "pipeline.yaml")
	require.NoError(t, err)
	assert.Equal(t, "pipeline", manifest.Name)

	descriptors, err := srv.Apply(manifest)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, 42, resource.Get[Counter](srv.Resources()).Value)

	increment, err := descriptors[0].Bind(func(c *Counter) { c.Value++ })
	require.NoError(t, err)
	require.NoError(t, increment.Exec(ctx, srv.Resources()))
	assert.Equal(t, 43, resource.Get[Counter](srv.Resources()).Value)

	// declared signatures and derived ones live in one space
	bound, err := srv.NewTask(func(c *Counter) {})
	require.NoError(t, err)
	assert.True(t, descriptors[1].Permission().ConflictsWith(bound.Permission()))
}

func TestService_StrictResolution(t *testing.T) {
	srv, err := taskres.New(taskres.WithStrictResolution(true))
	require.NoError(t, err)

	fn, err := srv.NewTask(func(w *Widget) {})
	require.NoError(t, err)
	assert.ErrorIs(t, fn.Exec(context.Background(), srv.Resources()), task.ErrUnresolved)

	_, err = resource.Store(srv.Resources(), Widget{Size: 1})
	require.NoError(t, err)
	assert.NoError(t, fn.Exec(context.Background(), srv.Resources()))
}

func TestService_MemoryBudget(t *testing.T) {
	srv, err := taskres.New(taskres.WithConfig(&taskres.Config{
		Permission: taskres.PermissionConfig{Capacity: 128},
		Memory:     taskres.MemoryConfig{Budget: int64(reflect.TypeOf(Counter{}).Size())},
	}))
	require.NoError(t, err)

	_, err = resource.Store(srv.Resources(), Counter{Value: 1})
	require.NoError(t, err)
	_, err = resource.Store(srv.Resources(), Counter{Value: 2})
	assert.ErrorIs(t, err, mem.ErrExhausted)
}

func TestService_InvalidConfig(t *testing.T) {
	_, err := taskres.New(taskres.WithConfig(&taskres.Config{}))
	assert.Error(t, err, "zero capacity is rejected at construction")

	_, err = taskres.New(taskres.WithConfig(&taskres.Config{
		Permission: taskres.PermissionConfig{Capacity: 8},
		Memory:     taskres.MemoryConfig{Budget: -1},
	}))
	assert.Error(t, err)
}

func TestService_TracingInitError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "trace.out")
	_, err := taskres.New(taskres.WithTracing("taskres", "0.0.1", missing))
	assert.Error(t, err, "unwritable trace output surfaces at construction")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, taskres.DefaultConfig().Validate())
	assert.Error(t, (&taskres.Config{}).Validate())
	assert.Error(t, (&taskres.Config{
		Permission: taskres.PermissionConfig{Capacity: 8},
		Memory:     taskres.MemoryConfig{Budget: -1},
	}).Validate())
}
