// Package navigator drives one navigation session frame by frame.
//
// A Navigator owns the loaded route together with everything derived from
// it (progress tracker, guidance generator, arrow smoothers, arrival
// machine) and swaps them as a unit when a new route is loaded. Tick runs
// the per-frame pipeline for a GPS sample and returns a Frame for the
// rendering and UI collaborators.
package navigator
