// Package batch generates cookies for many lights in one go.
//
// Lights are processed one at a time in the order given; the capture
// mutates shared scene state, so there is no parallelism. Cancellation is
// checked between lights, never during one. A failing light is recorded in
// the report and the run moves on to the next.
package batch
