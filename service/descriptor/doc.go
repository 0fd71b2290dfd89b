// Package descriptor provides a declarative alternative to deriving access
// signatures from callable parameter lists. A YAML manifest names resources
// with initial values and tasks with explicit access lists; the service
// materialises the resources into a registry and turns each task
// declaration into a permission, which a later Bind cross-checks against
// the bound callable's derived signature.
//
// An access entry has the form name[Type](mode) where mode is read or
// write, for example counter[Counter](write).
package descriptor
