package model

// Point is a single planning-poker estimate value.
type Point int

// FibonacciPoints is the ordered set of votes a participant may cast.
var FibonacciPoints = []Point{1, 2, 3, 5, 8, 13}

func (p Point) Valid() bool {
	for _, allowed := range FibonacciPoints {
		if p == allowed {
			return true
		}
	}
	return false
}

// Participant is one identity inside a room. Vote is nil until cast.
type Participant struct {
	Name string
	Vote *Point
}
