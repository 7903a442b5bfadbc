package core

import "context"

// DeviceEvent names an event raised by the external device/test-runner that
// the manager subscribes to.
type DeviceEvent string

const (
	// DeviceEventBeforeReset fires just before the device is reset.
	DeviceEventBeforeReset DeviceEvent = "beforeResetDevice"
	// DeviceEventReset fires after the device finished resetting.
	DeviceEventReset DeviceEvent = "resetDevice"
	// DeviceEventLaunchApp fires whenever the application (re)launches,
	// carrying the identifiers that bind the run context.
	DeviceEventLaunchApp DeviceEvent = "launchApp"
)

// DevicePayload carries the identifiers attached to a device event. Only
// DeviceEventLaunchApp populates all fields; reset events carry the device id
// at most.
type DevicePayload struct {
	DeviceID string
	BundleID string
	PID      int
}

// EventSource is implemented by device/test-runner emitters. The manager
// registers one handler per event it cares about; handlers dispatch
// asynchronously and never block the emitter.
type EventSource interface {
	On(event DeviceEvent, handler func(ctx context.Context, payload DevicePayload))
}
