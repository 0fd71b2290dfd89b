// Package extension provides run-time registries that let taskres work with
// user-defined Go resource types by name - for example types referenced from
// declarative task manifests - and with named task bindings.
//
// The registries are normally populated through the public APIs of the root
// taskres package, therefore most applications do not need to import this
// package directly.
package extension
