// Package fuzztests houses Go fuzz harnesses that run arbitrary bytes
// through the driver and the reference tools. They guard against panics and
// check the run invariants from internal/testkit on every input.
package fuzztests
