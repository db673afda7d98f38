// Package hands turns hand tracking device samples into tracking-space joint poses and hand meshes,
// and manages the lifecycle of per-hand controllers.
//
// Everything here runs synchronously inside one Update call per frame.
// Device, camera rig, mapping profiles and notifications are injected interfaces.
package hands
