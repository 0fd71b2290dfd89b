package extension

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/taskres/task"
	"github.com/viant/x"
)

type counter struct {
	value int
}

func TestTypes_Lookup(t *testing.T) {
	types := NewTypes()
	types.Register(x.NewType(reflect.TypeOf(counter{}), x.WithName("Counter")))

	aType := types.Lookup("Counter")
	require.NotNil(t, aType)
	assert.Equal(t, reflect.TypeOf(counter{}), aType.Type)
}

func TestTasks_RegisterAndLookup(t *testing.T) {
	tasks := NewTasks(x.NewType(reflect.TypeOf(counter{}), x.WithName("Counter")))

	fn, err := task.New(func(c *counter) {}, task.WithName("increment"))
	require.NoError(t, err)
	tasks.Register(fn)

	assert.Same(t, fn, tasks.Lookup("increment"))
	assert.Nil(t, tasks.Lookup("missing"))
	assert.Equal(t, []string{"increment"}, tasks.Names())
	require.NotNil(t, tasks.Types().Lookup("Counter"))
}
