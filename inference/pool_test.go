package inference

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewPool_NilSourcePanics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { NewPool(nil) })
}

func TestPool_ConstructsOncePerModel(t *testing.T) {
	t.Parallel()
	var reads atomic.Int64
	pool := NewPool(func() (string, error) {
		reads.Add(1)
		return "secret", nil
	})

	first, err := pool.Client("bigscience/bloom")
	require.NoError(t, err)
	second, err := pool.Client("bigscience/bloom")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), reads.Load(), "token read at most once per model")

	other, err := pool.Client("bigscience/bloomz-7b1")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, "bigscience/bloomz-7b1", other.Model())
}

func TestPool_EmptyModelUsesDefault(t *testing.T) {
	t.Parallel()
	pool := NewPool(func() (string, error) { return "secret", nil })

	cl, err := pool.Client("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cl.Model())

	byName, err := pool.Client(DefaultModel)
	require.NoError(t, err)
	assert.Same(t, cl, byName)
}

func TestPool_ConcurrentCallersShareConstruction(t *testing.T) {
	t.Parallel()
	var reads atomic.Int64
	pool := NewPool(func() (string, error) {
		reads.Add(1)
		return "secret", nil
	})

	clients := make([]*Client, 8)
	var g errgroup.Group
	for i := range clients {
		g.Go(func() error {
			cl, err := pool.Client("bigscience/bloom")
			clients[i] = cl
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, cl := range clients {
		assert.Same(t, clients[0], cl)
	}
	assert.Equal(t, int64(1), reads.Load())
}

func TestPool_SourceErrorNotCached(t *testing.T) {
	t.Parallel()
	errNoToken := errors.New("no token yet")
	fail := true
	pool := NewPool(func() (string, error) {
		if fail {
			return "", errNoToken
		}
		return "secret", nil
	})

	_, err := pool.Client("bigscience/bloom")
	require.ErrorIs(t, err, errNoToken)

	fail = false
	cl, err := pool.Client("bigscience/bloom")
	require.NoError(t, err)
	assert.NotNil(t, cl)
}
