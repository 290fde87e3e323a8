package arrays

import "fmt"

// Shape selects which wrapper constructor a construction maps onto.
type Shape uint8

const (
	// ShapeInit builds from an element buffer and count.
	ShapeInit Shape = iota
	// ShapeLength allocates one dimension of a given length.
	ShapeLength
	// ShapeDimensions allocates nested arrays from a list of lengths.
	ShapeDimensions

	shapeCount = int(ShapeDimensions) + 1
)

// Shapes lists every construction shape in declaration order.
var Shapes = [shapeCount]Shape{ShapeInit, ShapeLength, ShapeDimensions}

func (s Shape) String() string {
	switch s {
	case ShapeInit:
		return "initializer"
	case ShapeLength:
		return "single-dimension"
	case ShapeDimensions:
		return "multi-dimension"
	default:
		return fmt.Sprintf("Shape(%d)", s)
	}
}
