package theme

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fixed bool

func (f fixed) Dark() bool                  { return bool(f) }
func (f fixed) Subscribe(func(bool)) func() { return func() {} }

func TestParseAndName(t *testing.T) {
	tests := []struct {
		in       string
		dark, ok bool
	}{
		{"dark", true, true},
		{" Light\n", false, true},
		{"DARK", true, true},
		{"", false, false},
		{"dim", false, false},
	}
	for _, tt := range tests {
		dark, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, "%q", tt.in)
		assert.Equal(t, tt.dark, dark, "%q", tt.in)
	}
	for _, dark := range []bool{true, false} {
		got, ok := Parse(Name(dark))
		assert.True(t, ok)
		assert.Equal(t, dark, got)
	}
}

func TestToggle(t *testing.T) {
	defer goleak.VerifyNone(t)

	tg := NewToggle(true)
	var calls []bool
	unsubscribe := tg.Subscribe(func(dark bool) { calls = append(calls, dark) })
	assert.Equal(t, 1, tg.Subscribers())

	require.NoError(t, tg.Set(true))
	assert.Empty(t, calls, "no notification without a change")

	require.NoError(t, Flip(tg))
	assert.False(t, tg.Dark())
	assert.Equal(t, []bool{false}, calls)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, tg.Subscribers())
	require.NoError(t, tg.Set(true))
	assert.Equal(t, []bool{false}, calls)
}

func TestFlipReadOnly(t *testing.T) {
	assert.ErrorIs(t, Flip(fixed(true)), ErrReadOnly)
}

func TestObserver(t *testing.T) {
	tg := NewToggle(false)
	var changes []bool
	o := Observe(tg, func(dark bool) { changes = append(changes, dark) })
	assert.False(t, o.Dark(), "sampled at start")
	assert.Equal(t, 1, tg.Subscribers())

	require.NoError(t, tg.Set(true))
	assert.True(t, o.Dark())
	assert.Equal(t, []bool{true}, changes)

	o.Stop()
	o.Stop()
	assert.Equal(t, 0, tg.Subscribers())
	require.NoError(t, tg.Set(false))
	assert.True(t, o.Dark(), "stopped observer keeps its last value")
	assert.Equal(t, []bool{true}, changes)

	readOnly := Observe(fixed(true), nil)
	assert.True(t, readOnly.Dark())
	readOnly.Stop()
}

func TestFileFlagWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "theme")
	f, err := OpenFile(path, true, 0, nil)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, f.Dark(), "missing file reads as fallback")
	assert.Equal(t, path, f.Path())

	var last atomic.Int32
	last.Store(-1)
	unsubscribe := f.Subscribe(func(dark bool) {
		if dark {
			last.Store(1)
		} else {
			last.Store(0)
		}
	})
	defer unsubscribe()

	require.NoError(t, os.WriteFile(path, []byte("light\n"), 0o644))
	require.Eventually(t, func() bool { return !f.Dark() }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), last.Load())

	require.NoError(t, f.Set(true))
	assert.True(t, f.Dark(), "Set is visible immediately")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", string(data))

	require.NoError(t, os.WriteFile(path, []byte("light"), 0o644))
	require.Eventually(t, func() bool { return !f.Dark() }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("sepia"), 0o644))
	require.Eventually(t, func() bool { return f.Dark() }, 5*time.Second, 10*time.Millisecond, "unrecognised value reads as fallback")

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}

func TestFileFlagPolling(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "theme")
	require.NoError(t, os.WriteFile(path, []byte("light"), 0o644))

	f, err := openFile(path, false, 10*time.Millisecond, nil, false)
	require.NoError(t, err)
	assert.True(t, f.Polling())
	assert.False(t, f.Dark())

	o := Observe(f, nil)
	require.NoError(t, os.WriteFile(path, []byte("dark"), 0o644))
	require.Eventually(t, o.Dark, 5*time.Second, 5*time.Millisecond)

	o.Stop()
	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool { return !f.Dark() }, 5*time.Second, 5*time.Millisecond)
	assert.True(t, o.Dark(), "stopped observer no longer follows")
	require.NoError(t, f.Close())
}
