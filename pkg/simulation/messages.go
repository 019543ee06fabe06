package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The world actor speaks in protobuf well-known types:
//
//	UInt32Value  tick n times (Tell), then publish a snapshot
//	UInt64Value  advance n ticks even while paused (Ask), reply with stats
//	BoolValue    pause or resume ticking
//	Empty        stats request (Ask), reply with stats
//
// Stats travel as a Struct, see StatsToProto.

func NewTick(n uint32) proto.Message { return wrapperspb.UInt32(n) }

func NewAdvance(n uint64) proto.Message { return wrapperspb.UInt64(n) }

func NewPause(paused bool) proto.Message { return wrapperspb.Bool(paused) }

func NewStatsRequest() proto.Message { return &emptypb.Empty{} }

// StatsToProto packs s into a Struct.
func StatsToProto(s flock.Stats, runID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"runId":        structpb.NewStringValue(runID),
		"tick":         structpb.NewNumberValue(float64(s.Tick)),
		"population":   structpb.NewNumberValue(float64(s.Population)),
		"centroid":     vectorValue(s.Centroid),
		"meanDistance": structpb.NewNumberValue(s.MeanDistance),
		"meanSpeed":    structpb.NewNumberValue(s.MeanSpeed),
		"polarization": structpb.NewNumberValue(s.Polarization),
	}}
}

// StatsFromProto unpacks a reply built by StatsToProto.
func StatsFromProto(msg proto.Message) (flock.Stats, error) {
	st, ok := msg.(*structpb.Struct)
	if !ok {
		return flock.Stats{}, fmt.Errorf("unexpected stats reply %T", msg)
	}
	f := st.GetFields()
	centroid, err := vectorFrom(f["centroid"])
	if err != nil {
		return flock.Stats{}, err
	}
	return flock.Stats{
		Tick:         uint64(f["tick"].GetNumberValue()),
		Population:   int(f["population"].GetNumberValue()),
		Centroid:     centroid,
		MeanDistance: f["meanDistance"].GetNumberValue(),
		MeanSpeed:    f["meanSpeed"].GetNumberValue(),
		Polarization: f["polarization"].GetNumberValue(),
	}, nil
}

func vectorValue(v geometry.Vector3D) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(v.X),
		structpb.NewNumberValue(v.Y),
		structpb.NewNumberValue(v.Z),
	}})
}

func vectorFrom(v *structpb.Value) (geometry.Vector3D, error) {
	values := v.GetListValue().GetValues()
	if len(values) != 3 {
		return geometry.Vector3D{}, fmt.Errorf("vector needs 3 components, got %d", len(values))
	}
	return geometry.Vector3D{
		X: values[0].GetNumberValue(),
		Y: values[1].GetNumberValue(),
		Z: values[2].GetNumberValue(),
	}, nil
}
