// Package pipeline runs the per-participant quality stages and drives the
// batch across participants.
//
// One participant's stages run in strict sequence: parse event messages,
// resolve phase boundaries, match the bracketing validations, compute drift,
// decide inclusion. Participants are independent of each other, so the batch
// fans them out over a bounded worker pool and collects outcomes through a
// single channel. A participant whose stages fail degrades to an exclusion
// decision; the batch always completes.
package pipeline
