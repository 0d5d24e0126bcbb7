package server

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// janitor periodically expires idle editing sessions.
type janitor struct {
	cron     *cron.Cron
	sessions *registry
	ttl      time.Duration
}

func newJanitor(sessions *registry, ttl time.Duration) *janitor {
	return &janitor{cron: cron.New(), sessions: sessions, ttl: ttl}
}

// Start schedules the sweep. Every run closes sessions idle past the TTL.
func (j *janitor) Start() {
	_, err := j.cron.AddFunc("@every 5m", j.sweep)
	if err != nil {
		log.Printf("[janitor] failed to schedule sweep: %v", err)
		return
	}
	j.cron.Start()
	log.Printf("[janitor] started, session ttl %s", j.ttl)
}

// Stop halts the schedule; a running sweep finishes first.
func (j *janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	log.Println("[janitor] stopped")
}

func (j *janitor) sweep() {
	if n := j.sessions.ExpireIdle(j.ttl); n > 0 {
		log.Printf("[janitor] expired %d idle session(s)", n)
	}
}
