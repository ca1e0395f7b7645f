package services

import (
	"context"
	"log"
	"sync"

	"lead-capture/pkg/clients/airtable"
	"lead-capture/pkg/clients/formrelay"
	"lead-capture/pkg/clients/notion"
	"lead-capture/pkg/clients/sheets"
	"lead-capture/pkg/models"
)

// Sink is a record store that receives every lead on a best-effort basis.
// Persist never returns an error; failures are reported in the result.
type Sink interface {
	Name() string
	Persist(ctx context.Context, lead models.NormalizedLead) models.SinkResult
}

type ladderSink struct {
	name  string
	write func(ctx context.Context, lead models.NormalizedLead, shape models.RecordShape) error
}

// NewNotionSink records leads in a Notion database, narrowing on schema errors
func NewNotionSink(client notion.Client) Sink {
	return &ladderSink{name: "notion", write: client.CreateLeadPage}
}

// NewAirtableSink records leads in an Airtable table, narrowing on schema errors
func NewAirtableSink(client airtable.Client) Sink {
	return &ladderSink{name: "airtable", write: client.CreateLeadRecord}
}

func (s *ladderSink) Name() string { return s.name }

func (s *ladderSink) Persist(ctx context.Context, lead models.NormalizedLead) models.SinkResult {
	result := Climb(ctx, models.NarrowingLadder, func(ctx context.Context, shape models.RecordShape) error {
		return s.write(ctx, lead, shape)
	})

	out := models.SinkResult{Sink: s.name, Attempts: len(result.Attempts), Err: result.Err()}
	if shape, ok := result.Accepted(); ok {
		out.OK = true
		out.Shape = shape.String()
	}
	return out
}

type singleShotSink struct {
	name  string
	write func(ctx context.Context, lead models.NormalizedLead) error
}

// NewSheetsSink appends leads as spreadsheet rows
func NewSheetsSink(client sheets.Client) Sink {
	return &singleShotSink{name: "sheets", write: client.AppendLead}
}

// NewFormRelaySink forwards leads to a form relay service
func NewFormRelaySink(client formrelay.Client) Sink {
	return &singleShotSink{name: "formrelay", write: client.RelayLead}
}

func (s *singleShotSink) Name() string { return s.name }

func (s *singleShotSink) Persist(ctx context.Context, lead models.NormalizedLead) models.SinkResult {
	err := s.write(ctx, lead)
	return models.SinkResult{Sink: s.name, OK: err == nil, Attempts: 1, Err: err}
}

// PersistAll writes the lead to every sink concurrently and waits for all of them.
// A failing sink never affects the others.
func PersistAll(ctx context.Context, sinks []Sink, lead models.NormalizedLead) []models.SinkResult {
	results := make([]models.SinkResult, len(sinks))

	var wg sync.WaitGroup
	for i, sink := range sinks {
		wg.Add(1)
		go func(i int, sink Sink) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Sinks] %s panicked: %v", sink.Name(), r)
					results[i] = models.SinkResult{Sink: sink.Name(), Err: errPanic}
				}
			}()
			results[i] = sink.Persist(ctx, lead)
		}(i, sink)
	}
	wg.Wait()

	return results
}

// LogSinkResults reports the outcome of each sink
func LogSinkResults(results []models.SinkResult) {
	for _, r := range results {
		if r.OK {
			log.Printf("[Sinks] %s stored lead (shape=%s attempts=%d)", r.Sink, r.Shape, r.Attempts)
			continue
		}
		log.Printf("[Sinks] %s failed after %d attempt(s): %v", r.Sink, r.Attempts, r.Err)
	}
}
