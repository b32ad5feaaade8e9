package fixsource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrNoSamples is returned when a feed holds no position for the walker.
var ErrNoSamples = errors.New("fixsource: no samples in feed")

// DecodeVehiclePositions decodes a VehiclePosition feed into samples for
// vehicleID, sorted by timestamp. An empty vehicleID accepts every entity.
// Entities without a position decode as Failed samples and deleted
// entities as Stopped.
func DecodeVehiclePositions(data []byte, vehicleID string) ([]Sample, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	var headerTS float64
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTS = float64(*fm.Header.Timestamp)
	}

	var out []Sample
	for _, e := range fm.Entity {
		vp := e.GetVehicle()
		if vp == nil {
			continue
		}
		if vehicleID != "" && vp.GetVehicle().GetId() != vehicleID {
			continue
		}

		s := Sample{Alt: math.NaN(), Timestamp: headerTS, Status: Running}
		if vp.Timestamp != nil {
			s.Timestamp = float64(*vp.Timestamp)
		}
		switch {
		case e.GetIsDeleted():
			s.Status = Stopped
		case vp.Position == nil:
			s.Status = Failed
		}
		if pos := vp.Position; pos != nil {
			s.Lat = float64(pos.GetLatitude())
			s.Lon = float64(pos.GetLongitude())
			if pos.Bearing != nil {
				s.Bearing = float64(*pos.Bearing)
				s.HasBearing = true
			}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

// EncodeVehiclePositions writes samples as a VehiclePosition feed, one
// entity per sample. Timestamps are truncated to whole seconds.
func EncodeVehiclePositions(vehicleID string, samples []Sample) ([]byte, error) {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
	}
	var latest uint64
	for i, s := range samples {
		ts := uint64(math.Max(0, s.Timestamp))
		if ts > latest {
			latest = ts
		}
		vp := &gtfsrtpb.VehiclePosition{
			Vehicle:   &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicleID)},
			Timestamp: proto.Uint64(ts),
		}
		if s.Status != Failed {
			vp.Position = &gtfsrtpb.Position{
				Latitude:  proto.Float32(float32(s.Lat)),
				Longitude: proto.Float32(float32(s.Lon)),
			}
			if s.HasBearing {
				vp.Position.Bearing = proto.Float32(float32(s.Bearing))
			}
		}
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id:        proto.String(fmt.Sprintf("%s-%d", vehicleID, i)),
			IsDeleted: proto.Bool(s.Status == Stopped),
			Vehicle:   vp,
		})
	}
	fm.Header.Timestamp = proto.Uint64(latest)
	return proto.Marshal(fm)
}

// Feed polls the latest sample of one walker from a live feed.
type Feed struct {
	url       string
	vehicleID string
	client    *Client

	last    Sample
	hasLast bool
}

// NewFeed creates a feed poller. url may be an http(s) URL or a file path.
func NewFeed(client *Client, url, vehicleID string) *Feed {
	return &Feed{url: url, vehicleID: vehicleID, client: client}
}

// Poll fetches the feed and returns the newest sample. Until the first
// successful poll the status is Initializing; fetch or decode errors yield
// a Failed sample along with the error.
func (f *Feed) Poll(ctx context.Context) (Sample, error) {
	data, err := f.client.Fetch(ctx, f.url)
	if err != nil {
		return f.failed(), err
	}
	samples, err := DecodeVehiclePositions(data, f.vehicleID)
	if err != nil {
		return f.failed(), err
	}
	f.last = samples[len(samples)-1]
	f.hasLast = true
	return f.last, nil
}

func (f *Feed) failed() Sample {
	if !f.hasLast {
		return Sample{Alt: math.NaN(), Status: Initializing}
	}
	s := f.last
	s.Status = Failed
	return s
}
