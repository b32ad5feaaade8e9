// Package directions turns walking-directions responses into route steps.
//
// ParseSteps reads the standard directions JSON shape
// ({routes: [{legs: [{steps: [...]}]}]}) and keeps the first leg of the
// first route. Client fetches that document over HTTP, and Cache keeps
// recent results in memory and, optionally, on disk so that a walk can be
// replayed offline.
package directions
