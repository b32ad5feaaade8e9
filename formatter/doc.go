// Package formatter serializes navigation state for clients.
//
// This package is organized into:
// - wrapper.go: response wrapping (timestamp, producer, frame)
// - json.go: JSON serialization of frames and state responses
// - geojson.go: GeoJSON export of the route path, steps and anchors
// - xml.go: GPX export with proper escaping
package formatter
