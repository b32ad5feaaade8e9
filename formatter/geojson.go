package formatter

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"

	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/guidance"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// SimplifyDegrees is the Douglas-Peucker tolerance used for the overview
// line, about a meter.
const SimplifyDegrees = 0.00001

// RouteGeoJSON builds a feature collection with the path as a line, one
// point per step start labelled with its maneuver, and one point per anchor.
// simplified reduces the path line for map overviews.
func RouteGeoJSON(r *route.Route, views []anchors.View, simplified bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if r == nil {
		r = &route.Route{}
	}

	if r.Path.Len() >= 2 {
		line := make(orb.LineString, 0, r.Path.Len())
		for _, p := range r.Path.Points {
			line = append(line, orb.Point{p.Lon, p.Lat})
		}
		if simplified {
			if ls, ok := simplify.DouglasPeucker(SimplifyDegrees).Simplify(line).(orb.LineString); ok {
				line = ls
			}
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "path"
		f.Properties["length_m"] = r.EndAlong()
		f.Properties["points"] = len(line)
		fc.Append(f)
	}

	for i, st := range r.Steps {
		start := st.Start
		if i < len(r.Ranges) && r.Ranges[i].StartIndex < r.Path.Len() {
			start = r.Path.Points[r.Ranges[i].StartIndex]
		}
		f := geojson.NewFeature(orb.Point{start.Lon, start.Lat})
		f.Properties["kind"] = "step"
		f.Properties["index"] = i
		f.Properties["label"] = guidance.StepLabel(st)
		f.Properties["instruction"] = guidance.StripHTML(st.InstructionHTML)
		if i < len(r.Ranges) {
			f.Properties["start_along_m"] = r.Ranges[i].StartAlong
			f.Properties["end_along_m"] = r.Ranges[i].EndAlong
		}
		fc.Append(f)
	}

	for _, v := range views {
		f := geojson.NewFeature(orb.Point{v.Lon, v.Lat})
		f.ID = v.ID
		f.Properties["kind"] = "anchor"
		f.Properties["name"] = v.Name
		f.Properties["visible"] = v.Visible
		f.Properties["camera_relative"] = v.CameraRelative
		fc.Append(f)
	}
	return fc
}

// BuildGeoJSON serializes RouteGeoJSON.
func (rb *responseBuilder) BuildGeoJSON(r *route.Route, views []anchors.View, simplified bool) ([]byte, error) {
	return RouteGeoJSON(r, views, simplified).MarshalJSON()
}
