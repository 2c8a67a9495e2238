package utils

import (
	"log"
	"os"
	"path/filepath"
	"soldown/config"
	"time"

	"github.com/robfig/cron/v3"
)

// StartCleanupScheduler starts the scratch sweep cron job.
// Downloads remove their own scratch directory on close; the sweep catches
// directories orphaned by a crash or a kill.
func StartCleanupScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc(config.CleanupInterval, func() {
		CleanupScratch()
	})

	c.Start()

	// Run cleanup on startup
	go CleanupScratch()

	log.Println("[Cleanup] Scheduler started")
	return c
}

// CleanupScratch removes scratch directories older than MaxScratchAge
func CleanupScratch() {
	entries, err := os.ReadDir(config.ScratchDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Cleanup] Error reading scratch directory: %v\n", err)
		}
		return
	}

	now := time.Now()
	deleted := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		age := now.Sub(info.ModTime())
		if age > config.MaxScratchAge {
			path := filepath.Join(config.ScratchDir, entry.Name())
			if err := os.RemoveAll(path); err == nil {
				deleted++
				log.Printf("[Cleanup] Deleted stale scratch dir: %s (age: %v)\n", entry.Name(), age.Round(time.Minute))
			}
		}
	}

	if deleted > 0 {
		log.Printf("[Cleanup] Finished. Deleted %d scratch dirs\n", deleted)
	}
}
