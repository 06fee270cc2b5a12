package cronjobs

import (
	"context"
	"log"
	"time"

	"go-lifeline/db"
	"go-lifeline/notify"
	"go-lifeline/types"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 30 * time.Second

// sweepOverdueActions flags pending actions whose deadline has passed. The
// sweep is advisory: it logs and publishes a notification per overdue action
// but never mutates lifecycle state on its own.
func sweepOverdueActions(store db.Store, notifier notify.Notifier) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	pending, err := store.ListActionsByStatus(ctx, types.ActionPending)
	if err != nil {
		log.Printf("Overdue sweep: listing pending actions failed: %v", err)
		return
	}

	now := time.Now().UTC()
	overdue := 0
	for _, action := range pending {
		if action.Deadline.After(now) {
			continue
		}
		overdue++
		log.Printf("Overdue sweep: action %s (%s) for disaster %s passed its deadline %s",
			action.ID, action.ActionType, action.DisasterID, action.Deadline.Format(time.RFC3339))

		event := notify.NewEvent("priority_actions", "overdue", action)
		if err := notifier.Publish(ctx, event); err != nil {
			log.Printf("Overdue sweep: publishing overdue event for action %s failed: %v", action.ID, err)
		}
	}

	log.Printf("Overdue sweep: %d pending, %d overdue", len(pending), overdue)
}

func InitCronJobs(store db.Store, notifier notify.Notifier) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Overdue sweep: Run every 10 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("\nCronJob: Overdue Action Sweep Running")
		sweepOverdueActions(store, notifier)
	})
	if err != nil {
		log.Println("Error scheduling Overdue Action Sweep:", err)
	}

	c.Start()
}
