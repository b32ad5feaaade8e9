package anchors

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/arnav/geo"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// SpawnPoint is a configured point of interest.
type SpawnPoint struct {
	Name           string
	Lat            float64
	Lon            float64
	HeightOffset   float64
	Enabled        bool
	CameraRelative bool
}

func (p SpawnPoint) metadata() Metadata {
	return Metadata{Name: p.Name, HeightOffset: p.HeightOffset, CameraRelative: p.CameraRelative}
}

// SpawnAll spawns every enabled point, nearest to (lat, lon) first, and
// returns the new IDs in spawn order.
func (r *Registry) SpawnAll(points []SpawnPoint, lat, lon float64) []string {
	type candidate struct {
		p    SpawnPoint
		dist float64
	}
	list := make([]candidate, 0, len(points))
	for _, p := range points {
		if !p.Enabled {
			continue
		}
		list = append(list, candidate{p: p, dist: geo.Haversine(lat, lon, p.Lat, p.Lon)})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].dist < list[j].dist })

	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, r.Spawn(route.Point{Lat: c.p.Lat, Lon: c.p.Lon}, c.p.metadata()))
	}
	r.logger.Info("spawned anchors", "count", len(ids))
	return ids
}

// DestinationKey identifies the destination in a ProximitySpawner.
const DestinationKey = -1

// ProximitySpawner spawns spawn points into a Registry as the walker
// approaches them and removes them again once the walker is far away.
type ProximitySpawner struct {
	reg           *Registry
	points        []SpawnPoint
	spawnWithin   float64
	despawnBeyond float64

	destination    *SpawnPoint
	onlyEnabled    bool
	spawnedByIndex map[int]string
}

// NewProximitySpawner returns a spawner over points. despawnBeyond is
// raised to spawnWithin+10 when it is not larger than spawnWithin.
func NewProximitySpawner(reg *Registry, points []SpawnPoint, spawnWithin, despawnBeyond float64) *ProximitySpawner {
	if despawnBeyond <= spawnWithin {
		despawnBeyond = spawnWithin + 10
	}
	return &ProximitySpawner{
		reg:            reg,
		points:         append([]SpawnPoint(nil), points...),
		spawnWithin:    spawnWithin,
		despawnBeyond:  despawnBeyond,
		onlyEnabled:    true,
		spawnedByIndex: map[int]string{},
	}
}

// SetDestination makes the spawner manage a destination marker as well,
// replacing any previous destination.
func (s *ProximitySpawner) SetDestination(name string, coord route.Point) {
	s.despawn(DestinationKey)
	s.destination = &SpawnPoint{Name: name, Lat: coord.Lat, Lon: coord.Lon, Enabled: true}
}

// ClearDestination removes the destination marker and stops managing it.
func (s *ProximitySpawner) ClearDestination() {
	s.despawn(DestinationKey)
	s.destination = nil
}

// Update spawns and removes anchors for the walker at (lat, lon) and
// returns how many were spawned and removed.
func (s *ProximitySpawner) Update(lat, lon float64) (spawned, removed int) {
	for i, p := range s.points {
		if s.onlyEnabled && !p.Enabled {
			if s.despawn(i) {
				removed++
			}
			continue
		}
		sp, rm := s.updateOne(i, p, lat, lon)
		spawned += sp
		removed += rm
	}
	if s.destination != nil {
		sp, rm := s.updateOne(DestinationKey, *s.destination, lat, lon)
		spawned += sp
		removed += rm
	}
	return spawned, removed
}

func (s *ProximitySpawner) updateOne(key int, p SpawnPoint, lat, lon float64) (spawned, removed int) {
	d := geo.Haversine(lat, lon, p.Lat, p.Lon)
	switch {
	case d <= s.spawnWithin:
		if _, ok := s.spawnedByIndex[key]; !ok {
			meta := p.metadata()
			if meta.Name == "" {
				meta.Name = fmt.Sprintf("Point_%d", key)
			}
			s.spawnedByIndex[key] = s.reg.Spawn(route.Point{Lat: p.Lat, Lon: p.Lon}, meta)
			s.reg.logger.Debug("proximity spawn", "key", key, "distance", d)
			return 1, 0
		}
	case d >= s.despawnBeyond:
		if s.despawn(key) {
			return 0, 1
		}
	}
	return 0, 0
}

func (s *ProximitySpawner) despawn(key int) bool {
	id, ok := s.spawnedByIndex[key]
	if !ok {
		return false
	}
	delete(s.spawnedByIndex, key)
	if err := s.reg.Remove(id); err != nil {
		s.reg.logger.Debug("proximity despawn of removed anchor", "key", key, "err", err)
		return false
	}
	s.reg.logger.Debug("proximity despawn", "key", key)
	return true
}

// Spawned returns the anchor ID for a spawn point index, if spawned.
func (s *ProximitySpawner) Spawned(key int) (string, bool) {
	id, ok := s.spawnedByIndex[key]
	return id, ok
}

// Reset forgets every spawned anchor without touching the registry; used
// after the registry has been cleared.
func (s *ProximitySpawner) Reset() {
	s.spawnedByIndex = map[int]string{}
}
