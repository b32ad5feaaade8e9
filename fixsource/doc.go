// Package fixsource supplies GPS samples to the navigator.
//
// Walks are recorded and replayed as GTFS-Realtime VehiclePosition feeds:
// each entity carries one position of the walker with its timestamp. Feed
// polls a live feed over HTTP or from a file, and Replay steps through a
// recorded trace at a fixed tick.
//
// GTFS-Realtime stores coordinates as float32, which limits precision to
// roughly half a meter at mid latitudes. That is well inside GPS noise.
package fixsource
