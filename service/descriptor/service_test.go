package descriptor_test

import (
	"context"
	"embed"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/taskres/access"
	"github.com/viant/taskres/extension"
	"github.com/viant/taskres/permission"
	"github.com/viant/taskres/resource"
	"github.com/viant/taskres/service/descriptor"
	"github.com/viant/taskres/service/meta"
	"github.com/viant/x"
)

//go:embed testdata/*
var embedFS embed.FS

type Counter struct {
	Value int
}

type Stats struct {
	Hits int
}

func newService() *descriptor.Service {
	types := extension.NewTypes()
	types.Register(x.NewType(reflect.TypeOf(Counter{}), x.WithName("Counter")))
	types.Register(x.NewType(reflect.TypeOf(Stats{}), x.WithName("Stats")))
	return descriptor.New(
		descriptor.WithMetaService(meta.New(afs.New(), "embed:///testdata", &embedFS)),
		descriptor.WithTypes(types),
		descriptor.WithSpace(permission.NewSpace()),
	)
}

func TestService_Load(t *testing.T) {
	service := newService()
	manifest, err := service.Load(context.Background(), "pipeline")
	require.NoError(t, err)

	assert.Equal(t, "pipeline", manifest.Name)
	require.Len(t, manifest.Resources, 2)
	assert.Equal(t, "Counter", manifest.Resources[0].Type)
	require.Len(t, manifest.Tasks, 2)
}

func TestService_ApplyResources(t *testing.T) {
	service := newService()
	manifest, err := service.Load(context.Background(), "pipeline.yaml")
	require.NoError(t, err)

	registry := resource.New(nil)
	require.NoError(t, service.ApplyResources(manifest, registry))

	counter := resource.Get[Counter](registry)
	require.NotNil(t, counter)
	assert.Equal(t, 42, counter.Value)

	stats := resource.Get[Stats](registry)
	require.NotNil(t, stats, "resource without value materialises as zero value")
	assert.Equal(t, 0, stats.Hits)
}

func TestService_Descriptors(t *testing.T) {
	service := newService()
	manifest, err := service.Load(context.Background(), "pipeline")
	require.NoError(t, err)

	descriptors, err := service.Descriptors(manifest)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	increment, report := descriptors[0], descriptors[1]
	assert.Equal(t, "increment", increment.Name())
	assert.True(t, permission.CanWrite[Counter](increment.Permission()))
	assert.True(t, permission.CanRead[Counter](increment.Permission()), "declared write implies read")

	assert.True(t, permission.CanRead[Counter](report.Permission()))
	assert.False(t, permission.CanWrite[Counter](report.Permission()))
	assert.True(t, permission.CanWrite[Stats](report.Permission()))

	assert.True(t, increment.Permission().ConflictsWith(report.Permission()))
}

func TestDescriptor_Bind(t *testing.T) {
	service := newService()
	manifest, err := service.Load(context.Background(), "pipeline")
	require.NoError(t, err)
	registry := resource.New(nil)
	require.NoError(t, service.ApplyResources(manifest, registry))

	descriptors, err := service.Descriptors(manifest)
	require.NoError(t, err)

	fn, err := descriptors[0].Bind(func(c *Counter) {
		c.Value++
	})
	require.NoError(t, err)
	assert.Equal(t, "increment", fn.Name())
	require.NoError(t, fn.Exec(context.Background(), registry))
	assert.Equal(t, 43, resource.Get[Counter](registry).Value)

	// report declares Counter read-only; a mutating callable is rejected
	_, err = descriptors[1].Bind(func(c *Counter, s *Stats) {})
	assert.Error(t, err)

	// a reader within the declaration binds fine
	_, err = descriptors[1].Bind(func(c access.View[Counter], s *Stats) {})
	assert.NoError(t, err)
}

func TestService_UnknownType(t *testing.T) {
	service := descriptor.New(
		descriptor.WithMetaService(meta.New(afs.New(), "embed:///testdata", &embedFS)),
	)
	manifest, err := service.Load(context.Background(), "pipeline")
	require.NoError(t, err)

	registry := resource.New(nil)
	assert.Error(t, service.ApplyResources(manifest, registry))
	_, err = service.Descriptors(manifest)
	assert.Error(t, err)
}
