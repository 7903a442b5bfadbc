// Package core defines the shared contracts of CaptureMesh: the Plugin
// lifecycle interface, the ControlAPI capability façade handed to plugin
// factories, artifact and idle-task types, the run context bound at app
// launch, and the device event source abstraction. Higher level packages
// (manager, plugin, artifact, naming) depend on core; core depends on
// nothing but the standard library.
package core
