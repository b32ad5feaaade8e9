package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/arnav/anchors"
	"github.com/theoremus-urban-solutions/arnav/guidance"
	"github.com/theoremus-urban-solutions/arnav/route"
)

// BuildGPX serializes the route as a GPX 1.1 document: the path as a track,
// step starts as route points and anchors as waypoints.
func (rb *responseBuilder) BuildGPX(name string, r *route.Route, views []anchors.View) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<gpx version="1.1" creator="arnav" xmlns="http://www.topografix.com/GPX/1/1">`)

	for _, v := range views {
		writePoint(&b, "wpt", v.Lat, v.Lon, v.Name, v.Direction)
	}

	if r != nil && len(r.Steps) > 0 {
		b.WriteString("<rte>")
		writeElement(&b, "name", name)
		for i, st := range r.Steps {
			start := st.Start
			if i < len(r.Ranges) && r.Ranges[i].StartIndex < r.Path.Len() {
				start = r.Path.Points[r.Ranges[i].StartIndex]
			}
			writePoint(&b, "rtept", start.Lat, start.Lon, guidance.StepLabel(st), guidance.StripHTML(st.InstructionHTML))
		}
		b.WriteString("</rte>")
	}

	if r != nil && r.Path.Len() > 0 {
		b.WriteString("<trk>")
		writeElement(&b, "name", name)
		b.WriteString("<trkseg>")
		for _, p := range r.Path.Points {
			writePoint(&b, "trkpt", p.Lat, p.Lon, "", "")
		}
		b.WriteString("</trkseg></trk>")
	}

	b.WriteString("</gpx>")
	return []byte(b.String())
}

func writePoint(b *strings.Builder, tag string, lat, lon float64, name, desc string) {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` lat="`)
	b.WriteString(strconv.FormatFloat(lat, 'f', 7, 64))
	b.WriteString(`" lon="`)
	b.WriteString(strconv.FormatFloat(lon, 'f', 7, 64))
	b.WriteString(`"`)
	if name == "" && desc == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	writeElement(b, "name", name)
	writeElement(b, "desc", desc)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func writeElement(b *strings.Builder, tag, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
