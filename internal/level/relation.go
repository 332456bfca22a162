package level

import "fmt"

type RelationKind int

const (
	SameLevel RelationKind = iota //equal nesting depth, not necessarily siblings
	OutLevel                      //the other key is nested deeper
	InLevel                       //the other key is shallower
)

// Relation describes the depth of another key as seen from a reference key.
type Relation struct {
	Kind     RelationKind
	Distance int //always 0 for SameLevel
}

// Relate compares the nesting depth of a and b, from the perspective of a.
// Only the stripped lengths matter: "1.2" and "7.1" are SameLevel.
func Relate(a, b Key) Relation {
	lenA, lenB := len(a.Strip()), len(b.Strip())
	switch {
	case lenA < lenB:
		return Relation{Kind: OutLevel, Distance: lenB - lenA}
	case lenA > lenB:
		return Relation{Kind: InLevel, Distance: lenA - lenB}
	}
	return Relation{Kind: SameLevel}
}

// Inverse yields the relation as seen from the other side.
func (r Relation) Inverse() Relation {
	switch r.Kind {
	case OutLevel:
		return Relation{Kind: InLevel, Distance: r.Distance}
	case InLevel:
		return Relation{Kind: OutLevel, Distance: r.Distance}
	}
	return r
}

func (r Relation) String() string {
	switch r.Kind {
	case OutLevel:
		return fmt.Sprintf("OutLevel(%d)", r.Distance)
	case InLevel:
		return fmt.Sprintf("InLevel(%d)", r.Distance)
	}
	return "SameLevel"
}
