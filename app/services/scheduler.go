package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler. On the first day
// of each month it generates the current period's charges so billing
// stays current without an explicit bulk run.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		var lastRun string
		for range ticker.C {
			now := time.Now()

			// Trigger once, at 6:00 AM on the 1st
			if now.Day() == 1 && now.Hour() == 6 && now.Minute() == 0 {
				marker := now.Format("2006-01")
				if marker == lastRun {
					continue
				}
				lastRun = marker

				log.Println("Triggering monthly charge generation...")
				academicYear, month, err := CurrentPeriod(db)
				if err != nil {
					log.Printf("Error resolving current period: %v", err)
					continue
				}
				if _, err := GenerateAllCharges(db, academicYear, month, false); err != nil {
					log.Printf("Error generating scheduled charges: %v", err)
				}
			}
		}
	}()
}
