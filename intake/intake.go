package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go-lifeline/actions"
	"go-lifeline/db"
	"go-lifeline/geocode"
	"go-lifeline/recorder"
	"go-lifeline/summarization"
	"go-lifeline/types"
)

const defaultStepTimeout = 15 * time.Second

const titleMaxLength = 100

// Orchestrator sequences one report through the pipeline: validate and store
// the disaster, then run summary enrichment and action generation. The two
// enrichment steps are independent; either may fail without affecting the
// other, and the call succeeds as long as the disaster itself was stored.
type Orchestrator struct {
	store       db.Store
	summarizer  summarization.Summarizer
	recorder    *recorder.Recorder
	geocoder    geocode.Resolver
	stepTimeout time.Duration
}

func NewOrchestrator(store db.Store, summarizer summarization.Summarizer, rec *recorder.Recorder, geocoder geocode.Resolver) *Orchestrator {
	return &Orchestrator{
		store:       store,
		summarizer:  summarizer,
		recorder:    rec,
		geocoder:    geocoder,
		stepTimeout: defaultStepTimeout,
	}
}

// Ingest runs the full pipeline for one report. A non-nil error means nothing
// was stored (validation failure or the disaster write itself failed); any
// enrichment failure is reported through Warnings on a successful result.
func (o *Orchestrator) Ingest(ctx context.Context, payload types.DisasterWebhookPayload) (types.IngestResult, error) {
	normalized, err := normalize(payload)
	if err != nil {
		return types.IngestResult{}, err
	}

	if o.geocoder != nil && normalized.Latitude == 0 && normalized.Longitude == 0 {
		o.backfillCoordinates(ctx, &normalized)
	}

	stepCtx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	disaster, err := o.store.CreateDisaster(stepCtx, normalized)
	cancel()
	if err != nil {
		return types.IngestResult{}, fmt.Errorf("%w: %v", types.ErrIntake, timeoutAware(err))
	}

	result := types.IngestResult{Disaster: disaster}

	// Summary and action generation are independent enrichment steps and run
	// concurrently; both must finish before the call returns.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		warnings []string
	)
	warn := func(step string, err error) {
		wrapped := types.EnrichmentError(step, timeoutAware(err))
		log.Printf("Ingest %s: %v", disaster.ID, wrapped)
		mu.Lock()
		warnings = append(warnings, wrapped.Error())
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, err := o.generateSummary(ctx, disaster)
		if err != nil {
			warn("summary", err)
			return
		}
		mu.Lock()
		result.Summary = &summary
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		generated, err := o.generateActions(ctx, disaster)
		if err != nil {
			warn("actions", err)
			return
		}
		mu.Lock()
		result.Actions = generated
		mu.Unlock()
	}()
	wg.Wait()

	result.Warnings = warnings
	return result, nil
}

func (o *Orchestrator) generateSummary(ctx context.Context, d types.Disaster) (types.AISummary, error) {
	if o.summarizer == nil {
		return types.AISummary{}, errors.New("no summarizer configured")
	}

	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	summary, err := o.summarizer.Summarize(ctx, d)
	if err != nil {
		return types.AISummary{}, err
	}
	return o.store.CreateSummary(ctx, summary)
}

func (o *Orchestrator) generateActions(ctx context.Context, d types.Disaster) ([]types.PriorityAction, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	candidates := actions.Generate(d, time.Now().UTC())

	persisted := make([]types.PriorityAction, 0, len(candidates))
	for _, c := range candidates {
		action, err := o.store.CreateAction(ctx, types.PriorityAction{
			DisasterID:      d.ID,
			ActionType:      c.ActionType,
			Description:     c.Description,
			PriorityScore:   c.PriorityScore,
			Status:          types.ActionPending,
			EstimatedImpact: c.EstimatedImpact,
			Deadline:        c.Deadline,
		})
		if err != nil {
			return nil, err
		}
		persisted = append(persisted, action)
	}

	if o.recorder != nil {
		if _, err := o.recorder.RecordDecision(ctx, d, persisted); err != nil {
			// the audit snapshot is best-effort; the actions are already stored
			log.Printf("Failed to record decision for disaster %s: %v", d.ID, err)
		}
	}
	return persisted, nil
}

func (o *Orchestrator) backfillCoordinates(ctx context.Context, d *types.Disaster) {
	name, _ := d.Metadata["location_name"].(string)
	if name == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	lat, lng, err := o.geocoder.Resolve(ctx, name)
	if err != nil {
		log.Printf("Geocode backfill for %q failed: %v", name, err)
		return
	}
	d.Latitude = lat
	d.Longitude = lng
}

// normalize validates the payload and builds the disaster record to store.
// Rejections happen here, before any storage write.
func normalize(p types.DisasterWebhookPayload) (types.Disaster, error) {
	if strings.TrimSpace(p.Description) == "" {
		return types.Disaster{}, types.ValidationError("description is required")
	}
	if strings.TrimSpace(p.DisasterType) == "" {
		return types.Disaster{}, types.ValidationError("disaster_type is required")
	}

	population := 0
	if p.AffectedPopulation != nil {
		population = *p.AffectedPopulation
	}
	if population < 0 {
		return types.Disaster{}, types.ValidationError("affected_population must be non-negative")
	}

	severity := types.Severity(strings.ToLower(strings.TrimSpace(p.Severity)))
	if severity == "" {
		severity = types.Medium
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = TruncateTitle(p.Description)
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return types.Disaster{
		Title:              title,
		Description:        p.Description,
		DisasterType:       p.DisasterType,
		Severity:           severity,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		AffectedPopulation: population,
		Status:             types.DisasterActive,
		Metadata:           metadata,
	}, nil
}

// TruncateTitle derives a title from a narrative, cut at 100 characters.
func TruncateTitle(narrative string) string {
	if len(narrative) > titleMaxLength {
		return narrative[:titleMaxLength] + "..."
	}
	return narrative
}

// timeoutAware maps deadline errors onto the pipeline's timeout sentinel so
// callers can tell a slow dependency from a broken one.
func timeoutAware(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", types.ErrDownstreamTimeout, err)
	}
	return err
}
