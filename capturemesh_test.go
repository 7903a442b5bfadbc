package capturemesh

import (
	"context"
	"testing"

	"github.com/hupe1980/capturemesh/config"
	"github.com/hupe1980/capturemesh/core"
	"github.com/hupe1980/capturemesh/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersFactoriesByConfig(t *testing.T) {
	factories := map[string]core.PluginFactory{
		"screenshot": func(core.ControlAPI, core.CaptureMode) core.Plugin { return &plugin.Base{PluginName: "screenshot"} },
		"video":      func(core.ControlAPI, core.CaptureMode) core.Plugin { return &plugin.Base{PluginName: "video"} },
	}

	mesh := New(factories, func(o *Options) {
		o.Config = config.Config{
			RootDir: t.TempDir(),
			Plugins: map[string]config.PluginConfig{
				"screenshot": {Mode: config.ModeAll},
				"video":      {Mode: config.ModeNone},
			},
		}
	})

	plugins := mesh.Manager().Plugins()
	require.Len(t, plugins, 1)
	assert.Equal(t, "screenshot", plugins[0].Name())
}

func TestNew_PassesConfiguredModeToFactories(t *testing.T) {
	modes := map[string]core.CaptureMode{}
	factory := func(name string) core.PluginFactory {
		return func(_ core.ControlAPI, mode core.CaptureMode) core.Plugin {
			modes[name] = mode
			return &plugin.Base{PluginName: name}
		}
	}

	New(map[string]core.PluginFactory{
		"log":        factory("log"),
		"screenshot": factory("screenshot"),
	}, func(o *Options) {
		o.Config = config.Config{
			RootDir: t.TempDir(),
			Plugins: map[string]config.PluginConfig{
				"log":        {Mode: config.ModeFailing},
				"screenshot": {Mode: config.ModeAll},
			},
		}
	})

	assert.Equal(t, core.CaptureModeFailing, modes["log"])
	assert.Equal(t, core.CaptureModeAll, modes["screenshot"])
}

func TestCaptureMesh_LifecycleDelegation(t *testing.T) {
	var order []string
	factories := map[string]core.PluginFactory{
		"probe": func(core.ControlAPI, core.CaptureMode) core.Plugin {
			return &plugin.Funcs{
				PluginName: "probe",
				BeforeAll:  func(context.Context) error { order = append(order, "beforeAll"); return nil },
				AfterAll:   func(context.Context) error { order = append(order, "afterAll"); return nil },
				Terminate:  func(context.Context) error { order = append(order, "terminate"); return nil },
			}
		},
	}

	mesh := New(factories, func(o *Options) {
		o.Config = config.Config{
			RootDir: t.TempDir(),
			Plugins: map[string]config.PluginConfig{"probe": {Mode: config.ModeFailing}},
		}
		o.RunID = "run-test"
	})
	assert.Equal(t, "run-test", mesh.RunID())

	ctx := context.Background()
	require.NoError(t, mesh.BeforeAll(ctx))
	require.NoError(t, mesh.AfterAll(ctx))
	require.NoError(t, mesh.Terminate(ctx))
	require.NoError(t, mesh.Terminate(ctx)) // idempotent

	assert.Equal(t, []string{"beforeAll", "afterAll", "terminate"}, order)
}

func TestCaptureMesh_LaunchBindsRunContext(t *testing.T) {
	mesh := New(nil, func(o *Options) {
		o.Config = config.Config{RootDir: t.TempDir()}
	})

	_, err := mesh.Manager().DeviceID()
	assert.ErrorIs(t, err, core.ErrRunContextUnavailable)

	require.NoError(t, mesh.LaunchApp(context.Background(), core.DevicePayload{DeviceID: "dev-9", BundleID: "com.example", PID: 7}))

	deviceID, err := mesh.Manager().DeviceID()
	require.NoError(t, err)
	assert.Equal(t, "dev-9", deviceID)
}
