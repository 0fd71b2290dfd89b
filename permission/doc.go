// Package permission represents a task's access signature over typed
// resources as a pair of fixed-capacity bit sets, one for reads and one for
// writes, indexed by a type identity space private to the permission domain.
// Two signatures conflict when one writes a type the other reads or writes;
// the test is three word-wise intersections, O(capacity/64).
//
// All permissions that are compared against each other must come from the
// same Space, otherwise their bit positions are unrelated.
package permission
