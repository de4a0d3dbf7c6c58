package track

// Spec is the immutable parameter set of one track segment. The set of
// implementations is closed: Start, Straight, Arc, Crosswalk, Intersection,
// Gap, ParkingArea, TrafficIsland and Clothoid. Consumers switch over the
// concrete type and treat anything else as ErrUnknownSegment.
type Spec interface {
	Kind() Kind
	isSpec()
}

// Kind names a segment variant. Values match the XML element names.
type Kind string

const (
	KindStart         Kind = "Start"
	KindStraight      Kind = "Straight"
	KindArc           Kind = "Turn"
	KindCrosswalk     Kind = "Crosswalk"
	KindIntersection  Kind = "Intersection"
	KindGap           Kind = "Gap"
	KindParkingArea   Kind = "ParkingArea"
	KindTrafficIsland Kind = "TrafficIsland"
	KindClothoid      Kind = "Clothoid"
)

// Direction is the exit direction of an intersection or gap.
type Direction string

const (
	DirectionStraight Direction = "straight"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
)

// Start anchors the track at an absolute world pose.
type Start struct {
	X, Y      float64
	Direction float64 // degrees
}

// Straight is a straight piece of road.
type Straight struct {
	Length float64
}

// Arc is a constant-curvature turn. Angle is in degrees.
type Arc struct {
	Radius    float64
	Angle     float64
	Clockwise bool
}

// Crosswalk is a straight with zebra stripes.
type Crosswalk struct {
	Length float64
}

// Intersection is a four-way junction with a square footprint of side
// Length. The track leaves it in Direction.
type Intersection struct {
	Length    float64
	Direction Direction
}

// Gap advances like an Intersection but draws nothing.
type Gap struct {
	Length    float64
	Direction Direction
}

// SpotKind tells whether a parking spot may be used.
type SpotKind string

const (
	SpotFree    SpotKind = "free"
	SpotBlocked SpotKind = "blocked"
)

// Spot is one parking spot of a lot.
type Spot struct {
	Kind   SpotKind
	Length float64
}

// ParkingLot is a row of spots next to the lane. Start is measured along the
// segment, OpeningEndingAngle (degrees) is the angle of the diagonal edges
// that connect the lane edge to the back of the lot.
type ParkingLot struct {
	Start              float64
	Depth              float64
	OpeningEndingAngle float64
	Spots              []Spot
}

// ParkingArea is a straight with parking lots on either side.
type ParkingArea struct {
	Length    float64
	RightLots []ParkingLot
	LeftLots  []ParkingLot
}

// TrafficIsland splits the road around a raised median of IslandWidth with
// a pedestrian crossing of CrosswalkLength on both sides. The lanes move
// out over CurveSegmentLength before and back after the crossing; Curvature
// (0..1) shapes these transitions when drawn as curves.
type TrafficIsland struct {
	IslandWidth        float64
	CrosswalkLength    float64
	CurveSegmentLength float64
	Curvature          float64
}

// ClothoidDirection is the turning side of a clothoid.
type ClothoidDirection string

const (
	ClothoidLeft  ClothoidDirection = "left"
	ClothoidRight ClothoidDirection = "right"
)

// ClothoidType selects a spiral-in (closing) or spiral-out (opening) piece.
type ClothoidType string

const (
	ClothoidOpening ClothoidType = "opening"
	ClothoidClosing ClothoidType = "closing"
)

// Clothoid is a curvature-continuous transition. Angle and AngleOffset are in
// degrees.
type Clothoid struct {
	A           float64
	Angle       float64
	AngleOffset float64
	Direction   ClothoidDirection
	Type        ClothoidType
}

func (Start) Kind() Kind         { return KindStart }
func (Straight) Kind() Kind      { return KindStraight }
func (Arc) Kind() Kind           { return KindArc }
func (Crosswalk) Kind() Kind     { return KindCrosswalk }
func (Intersection) Kind() Kind  { return KindIntersection }
func (Gap) Kind() Kind           { return KindGap }
func (ParkingArea) Kind() Kind   { return KindParkingArea }
func (TrafficIsland) Kind() Kind { return KindTrafficIsland }
func (Clothoid) Kind() Kind      { return KindClothoid }

func (Start) isSpec()         {}
func (Straight) isSpec()      {}
func (Arc) isSpec()           {}
func (Crosswalk) isSpec()     {}
func (Intersection) isSpec()  {}
func (Gap) isSpec()           {}
func (ParkingArea) isSpec()   {}
func (TrafficIsland) isSpec() {}
func (Clothoid) isSpec()      {}
