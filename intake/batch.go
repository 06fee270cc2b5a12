package intake

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-lifeline/types"
)

// PayloadFromReport converts a raw mock report into the webhook payload
// shape, folding the source provenance into metadata.
func PayloadFromReport(report types.MockDisaster) types.DisasterWebhookPayload {
	metadata := map[string]interface{}{}
	for k, v := range report.Metadata {
		metadata[k] = v
	}
	metadata["original_source"] = report.Source
	metadata["original_timestamp"] = report.Timestamp
	metadata["location_name"] = report.Location.Name

	population := report.AffectedPopulation
	return types.DisasterWebhookPayload{
		Title:              TruncateTitle(report.Message),
		Description:        report.Message,
		DisasterType:       report.DisasterType,
		Severity:           report.Severity,
		Latitude:           report.Location.Latitude,
		Longitude:          report.Location.Longitude,
		AffectedPopulation: &population,
		Metadata:           metadata,
	}
}

// IngestBatch replays reports through the orchestrator one at a time,
// sleeping delay between items. The sequencing and the delay are a
// rate-limiting contract protecting downstream dependencies, not a missing
// optimization; do not parallelize this. One item's failure is recorded and
// the batch continues. Cancellation is honored between items only: an
// in-flight ingest finishes its writes so no disaster is left without its
// actions.
func (o *Orchestrator) IngestBatch(ctx context.Context, reports []types.MockDisaster, delay time.Duration) types.BatchSummary {
	summary := types.BatchSummary{Results: []types.BatchItemResult{}}

	for i, report := range reports {
		if err := ctx.Err(); err != nil {
			log.Printf("Batch aborted after %d of %d items: %v", i, len(reports), err)
			break
		}
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		item := types.BatchItemResult{Location: report.Location.Name}

		// The item itself runs detached from the batch cancellation so an
		// aborted run never leaves a stored disaster without its actions.
		result, err := o.Ingest(context.WithoutCancel(ctx), PayloadFromReport(report))
		if err != nil {
			item.Error = err.Error()
			log.Printf("Batch item %s failed: %v", report.Location.Name, err)
		} else {
			item.Success = true
			item.DisasterID = result.Disaster.ID
		}
		summary.Results = append(summary.Results, item)
	}

	for _, item := range summary.Results {
		if item.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	summary.Total = len(summary.Results)
	if summary.Total > 0 {
		summary.SuccessRate = fmt.Sprintf("%.1f%%", float64(summary.Successful)/float64(summary.Total)*100)
	} else {
		summary.SuccessRate = "0.0%"
	}
	return summary
}
