package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedLocation is returned when a location string is not in x_y form.
var ErrMalformedLocation = errors.New("malformed location")

// Location is a point on the road plane.
type Location struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between two locations.
func (l Location) DistanceTo(o Location) float64 {
	return math.Hypot(l.X-o.X, l.Y-o.Y)
}

// String renders the location as x_y.
func (l Location) String() string {
	return strconv.FormatFloat(l.X, 'g', -1, 64) + "_" + strconv.FormatFloat(l.Y, 'g', -1, 64)
}

// ParseLocation parses the x_y form produced by Location.String.
func ParseLocation(s string) (Location, error) {
	xs, ys, ok := strings.Cut(s, "_")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrMalformedLocation, s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: x: %v", ErrMalformedLocation, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: y: %v", ErrMalformedLocation, err)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Location{}, fmt.Errorf("%w: non-finite coordinate", ErrMalformedLocation)
	}
	return Location{X: x, Y: y}, nil
}
