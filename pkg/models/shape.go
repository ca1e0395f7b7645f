package models

// RecordShape selects how much of a lead is written to a tabular store.
// Shapes are ordered from the richest payload to the narrowest.
type RecordShape int

const (
	// ShapeTypedStatus writes every field with status as a categorical value
	ShapeTypedStatus RecordShape = iota
	// ShapePlainStatus writes every field with status as plain text
	ShapePlainStatus
	// ShapeCore drops the payment and status business fields
	ShapeCore
	// ShapeIdentity writes only name, email and phone
	ShapeIdentity
)

// NarrowingLadder is the order in which shapes are offered to a store
var NarrowingLadder = []RecordShape{
	ShapeTypedStatus,
	ShapePlainStatus,
	ShapeCore,
	ShapeIdentity,
}

func (s RecordShape) String() string {
	switch s {
	case ShapeTypedStatus:
		return "typed-status"
	case ShapePlainStatus:
		return "plain-status"
	case ShapeCore:
		return "core"
	case ShapeIdentity:
		return "identity"
	}
	return "unknown"
}

// IncludesBusinessFields reports whether payment and status are written
func (s RecordShape) IncludesBusinessFields() bool {
	return s == ShapeTypedStatus || s == ShapePlainStatus
}

// IncludesAmount reports whether the amount and submission date are written
func (s RecordShape) IncludesAmount() bool {
	return s != ShapeIdentity
}
