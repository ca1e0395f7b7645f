package services

import (
	"context"
	"errors"
	"log"

	"lead-capture/pkg/models"
)

// Outcome classifies a single write attempt against a tabular store
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	// OutcomeRejected means the store's schema refused the payload shape
	OutcomeRejected
	// OutcomeFailed means the write failed for a reason a narrower shape cannot fix
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	}
	return "failed"
}

// Attempt records what happened to one rung of the ladder
type Attempt struct {
	Shape   models.RecordShape
	Outcome Outcome
	Err     error
}

// LadderResult holds every attempt in the order it was made
type LadderResult struct {
	Attempts []Attempt
}

// Accepted returns the shape the store accepted, if any
func (r LadderResult) Accepted() (models.RecordShape, bool) {
	if n := len(r.Attempts); n > 0 && r.Attempts[n-1].Outcome == OutcomeAccepted {
		return r.Attempts[n-1].Shape, true
	}
	return 0, false
}

// Err returns the error of the final attempt, or nil on acceptance
func (r LadderResult) Err() error {
	if n := len(r.Attempts); n > 0 {
		return r.Attempts[n-1].Err
	}
	return nil
}

// ShapeWriter writes a lead in one shape
type ShapeWriter func(ctx context.Context, shape models.RecordShape) error

// schemaRejection is implemented by client errors that can tell a schema
// validation failure apart from other API errors
type schemaRejection interface {
	SchemaRejected() bool
}

// Classify maps a write error to an attempt outcome
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeAccepted
	}
	var rejection schemaRejection
	if errors.As(err, &rejection) && rejection.SchemaRejected() {
		return OutcomeRejected
	}
	return OutcomeFailed
}

// Climb offers shapes to write in order and stops at the first acceptance or
// the first failure that is not a schema rejection
func Climb(ctx context.Context, shapes []models.RecordShape, write ShapeWriter) LadderResult {
	var result LadderResult
	for _, shape := range shapes {
		if err := ctx.Err(); err != nil {
			result.Attempts = append(result.Attempts, Attempt{Shape: shape, Outcome: OutcomeFailed, Err: err})
			break
		}

		err := write(ctx, shape)
		outcome := Classify(err)
		result.Attempts = append(result.Attempts, Attempt{Shape: shape, Outcome: outcome, Err: err})
		if outcome != OutcomeRejected {
			break
		}
		log.Printf("[Ladder] Shape %s rejected by schema, narrowing: %v", shape, err)
	}
	return result
}
