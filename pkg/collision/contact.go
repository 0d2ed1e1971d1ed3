package collision

import (
	"fmt"

	"github.com/golangdaddy/parallelpark/pkg/geometry"
	"github.com/golangdaddy/parallelpark/pkg/lot"
	"github.com/oakmound/oak/v4/alg/floatgeom"
)

// Kind is what the car ran into.
type Kind int

const (
	KindObstacle Kind = iota
	KindCurb
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCurb:
		return "curb"
	default:
		return "unknown"
	}
}

// Contact describes the first overlap found during a tick.
type Contact struct {
	Kind  Kind
	Index int    // Obstacle index, -1 for the curb
	Label string // Obstacle label
	MTV   floatgeom.Point2
}

// String is the label shown by the debug overlay.
func (c Contact) String() string {
	if c.Kind == KindCurb {
		return lot.LabelCurb
	}
	return fmt.Sprintf("%s #%d (%s)", c.Kind, c.Index, c.Label)
}

// Detect tests poly against each parked car, then the curb, and returns the first
// contact. Order only decides which contact is reported.
func Detect(poly geometry.Polygon, l lot.Layout) (Contact, bool) {
	for i, o := range l.Obstacles {
		if mtv, hit := geometry.Overlap(poly, o.Polygon()); hit {
			return Contact{Kind: KindObstacle, Index: i, Label: o.Label, MTV: mtv}, true
		}
	}
	if mtv, hit := geometry.Overlap(poly, l.Curb.Polygon()); hit {
		return Contact{Kind: KindCurb, Index: -1, Label: lot.LabelCurb, MTV: mtv}, true
	}
	return Contact{}, false
}
