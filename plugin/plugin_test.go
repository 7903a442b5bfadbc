package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/capturemesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ core.Plugin = (*Base)(nil)
	_ core.Plugin = (*Funcs)(nil)
)

func TestBase_Defaults(t *testing.T) {
	ctx := context.Background()
	b := &Base{}

	assert.Equal(t, "plugin", b.Name())
	require.NoError(t, b.OnBeforeAll(ctx))
	require.NoError(t, b.OnBeforeTest(ctx, nil))
	require.NoError(t, b.OnBeforeResetDevice(ctx))
	require.NoError(t, b.OnResetDevice(ctx))
	require.NoError(t, b.OnRelaunchApp(ctx, core.RunContext{}))
	require.NoError(t, b.OnAfterTest(ctx, nil))
	require.NoError(t, b.OnAfterAll(ctx))
	require.NoError(t, b.OnTerminate(ctx))
}

func TestBase_Name(t *testing.T) {
	b := &Base{PluginName: "screenshot"}
	assert.Equal(t, "screenshot", b.Name())
}

func TestFuncs_DispatchesSetHooks(t *testing.T) {
	ctx := context.Background()
	var beforeTests, relaunches int

	f := &Funcs{
		PluginName: "probe",
		BeforeTest: func(_ context.Context, test *core.TestSummary) error {
			beforeTests++
			assert.Equal(t, "t1", test.FullName)
			return nil
		},
		RelaunchApp: func(_ context.Context, run core.RunContext) error {
			relaunches++
			assert.Equal(t, 42, run.PID)
			return nil
		},
	}

	assert.Equal(t, "probe", f.Name())
	require.NoError(t, f.OnBeforeTest(ctx, &core.TestSummary{FullName: "t1"}))
	require.NoError(t, f.OnRelaunchApp(ctx, core.RunContext{PID: 42}))
	// unset hooks are no-ops
	require.NoError(t, f.OnAfterAll(ctx))
	require.NoError(t, f.OnTerminate(ctx))

	assert.Equal(t, 1, beforeTests)
	assert.Equal(t, 1, relaunches)
}

func TestFuncs_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	f := &Funcs{AfterAll: func(context.Context) error { return boom }}

	assert.ErrorIs(t, f.OnAfterAll(context.Background()), boom)
}
