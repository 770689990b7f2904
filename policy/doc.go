// Package policy provides optional declarative rules deciding which syscalls a
// thread may trap into. A nil *Policy admits everything.
package policy
