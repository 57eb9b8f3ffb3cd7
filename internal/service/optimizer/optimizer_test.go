package optimizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// call records one invocation observed by the fake runner.
type call struct {
	name string
	args []string
}

// fakeRunner scripts per-command results and records every invocation.
type fakeRunner struct {
	calls []call
	// fail maps a command prefix ("upx --best") to the error it should return.
	fail map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})

	for prefix, err := range f.fail {
		if strings.HasPrefix(name+" "+strings.Join(args, " "), prefix) {
			return err
		}
	}

	return nil
}

// TestOptimize_StripThenCompress verifies strip runs first and the first
// strategy is used when it succeeds.
func TestOptimize_StripThenCompress(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	o := New(WithRunner(runner))

	require.NoError(t, o.Optimize(context.Background(), "/layout/usr/bin/editor"))

	require.Len(t, runner.calls, 2)
	require.Equal(t, "strip", runner.calls[0].name)
	require.Equal(t, []string{"--strip-all", "/layout/usr/bin/editor"}, runner.calls[0].args)
	require.Equal(t, "upx", runner.calls[1].name)
	require.Equal(t, []string{"--best", "--lzma", "/layout/usr/bin/editor"}, runner.calls[1].args)
}

// TestOptimize_FallbackStrategy verifies the second strategy is attempted
// when maximum-effort compression fails, and the run still succeeds.
func TestOptimize_FallbackStrategy(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		fail: map[string]error{
			"upx --best --lzma": errors.New("CantPackException"),
		},
	}
	o := New(WithRunner(runner))

	require.NoError(t, o.Optimize(context.Background(), "bin"))

	require.Len(t, runner.calls, 3)
	require.Equal(t, []string{"-9", "bin"}, runner.calls[2].args)
}

// TestOptimize_ChainExhausted verifies the failure propagates when every
// strategy fails.
func TestOptimize_ChainExhausted(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("NotCompressibleException")
	runner := &fakeRunner{
		fail: map[string]error{"upx": wantErr},
	}
	o := New(WithRunner(runner))

	err := o.Optimize(context.Background(), "bin")
	require.Error(t, err)
	require.ErrorIs(t, err, wantErr)
}

// TestOptimize_StripFailureIsFatal verifies strip errors abort before any
// compression attempt.
func TestOptimize_StripFailureIsFatal(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		fail: map[string]error{"strip": errors.New("not an ELF")},
	}
	o := New(WithRunner(runner))

	err := o.Optimize(context.Background(), "bin")
	require.Error(t, err)
	require.Len(t, runner.calls, 1)
}

// TestWithStrategies verifies a custom chain replaces the default one.
func TestWithStrategies(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	o := New(WithRunner(runner), WithStrategies([]Strategy{
		{Name: "fast", Args: []string{"-1"}},
	}))

	require.NoError(t, o.Optimize(context.Background(), "bin"))
	require.Len(t, runner.calls, 2)
	require.Equal(t, []string{"-1", "bin"}, runner.calls[1].args)
}
