// services/scheduler.go
package services

import (
	"log"
	"time"

	"pelada-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLockScheduler locks stale lists in the background. Confirmations on a
// started game are rejected at write time anyway; this keeps the released
// flag honest for readers.
func (s *GameService) StartLockScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: close the list of games whose kickoff has passed
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var games []models.Game
			now := time.Now().UTC()
			err := s.DB.Where("released = ? AND game_date <= ?", true, now).
				Find(&games).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, g := range games {
				g.Released = false
				if err := s.DB.Save(&g).Error; err != nil {
					log.Printf("[Scheduler] Failed to lock game %s: %v", g.ID, err)
				} else {
					log.Printf("[Scheduler] Auto-locked game %s (kickoff %s)", g.ID, g.GameDate.Format(time.RFC3339))
				}
			}
		}),
	)
}
