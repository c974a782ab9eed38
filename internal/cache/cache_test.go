package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_, found, err := m.Get(ctx, "paris|2024-06-21")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "paris|2024-06-21", []byte(`{"location":{}}`), 0))

	got, found, err := m.Get(ctx, "paris|2024-06-21")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"location":{}}`, string(got))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "memory", m.Type())
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_DeleteFlush(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a"))
	_, found, _ := m.Get(ctx, "a")
	assert.False(t, found)

	require.NoError(t, m.Flush(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestClientOptions(t *testing.T) {
	opt, err := ClientOptions("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = ClientOptions("redis://cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache:6380"}, opt.InitAddress)
	assert.Equal(t, 2, opt.SelectDB)

	_, err = ClientOptions("")
	assert.Error(t, err)
}

func TestValkeyKeyPrefix(t *testing.T) {
	v := NewValkey(nil, "")
	assert.Equal(t, "conditions:paris|", v.key("paris|"))
	assert.Equal(t, "valkey", v.Type())
}
