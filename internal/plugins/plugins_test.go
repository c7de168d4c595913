package plugins

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOrder(t *testing.T) {
	var order []string
	r := NewRegistry()
	for _, name := range []string{"store", "fs", "notification"} {
		n := name
		r.Register(Func{
			PluginName: n,
			InitFn: func(context.Context) error {
				order = append(order, n)
				return nil
			},
		})
	}

	require.NoError(t, r.Init(context.Background()))
	assert.Equal(t, []string{"store", "fs", "notification"}, order)
	assert.Equal(t, []string{"store", "fs", "notification"}, r.Names())
}

func TestInitAbortsOnError(t *testing.T) {
	var order []string
	r := NewRegistry()
	r.Register(Func{PluginName: "first", InitFn: func(context.Context) error {
		order = append(order, "first")
		return nil
	}})
	r.Register(Func{PluginName: "broken", InitFn: func(context.Context) error {
		return errors.New("no disk")
	}})
	r.Register(Func{PluginName: "never", InitFn: func(context.Context) error {
		order = append(order, "never")
		return nil
	}})

	err := r.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin broken")
	assert.Equal(t, []string{"first"}, order)
}

func TestCloseReverseOrder(t *testing.T) {
	var closed []string
	r := NewRegistry()
	for _, name := range []string{"a", "b", "c"} {
		n := name
		r.Register(Func{
			PluginName: n,
			CloseFn: func() error {
				closed = append(closed, n)
				return nil
			},
		})
	}

	require.NoError(t, r.Init(context.Background()))
	r.Close()
	assert.Equal(t, []string{"c", "b", "a"}, closed)
}

func TestCloseOnlyInitialized(t *testing.T) {
	var closed []string
	r := NewRegistry()
	r.Register(Func{PluginName: "ok", CloseFn: func() error {
		closed = append(closed, "ok")
		return nil
	}})
	r.Register(Func{PluginName: "broken", InitFn: func(context.Context) error {
		return errors.New("boom")
	}, CloseFn: func() error {
		closed = append(closed, "broken")
		return nil
	}})

	require.Error(t, r.Init(context.Background()))
	r.Close()
	assert.Equal(t, []string{"ok"}, closed)
}

func TestCloseErrorIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register(Func{PluginName: "grumpy", CloseFn: func() error {
		return errors.New("will not close")
	}})
	require.NoError(t, r.Init(context.Background()))
	r.Close()
}
