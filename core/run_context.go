package core

// RunContext is the device/application identity triple bound by the first
// launchApp event and replaced wholesale on every relaunch. The manager owns
// the current instance; plugins only ever see it through ControlAPI accessors
// (which validate presence) or as the immutable payload of OnRelaunchApp.
type RunContext struct {
	DeviceID string
	BundleID string
	PID      int
}
