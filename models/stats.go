package models

import (
	"sync"
	"time"
)

// Outcome is the terminal result of one pipeline step for one video or hashtag.
type Outcome int

const (
	OutcomeFiltered Outcome = iota
	OutcomeNoTranscript
	OutcomeAlreadyProcessed
	OutcomeSummarized
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFiltered:
		return "filtered"
	case OutcomeNoTranscript:
		return "no_transcript"
	case OutcomeAlreadyProcessed:
		return "already_processed"
	case OutcomeSummarized:
		return "summarized"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Counters are the run statistics buckets.
type Counters struct {
	VideosFound            int `json:"videos_found"`
	VideosFiltered         int `json:"videos_filtered"`
	VideosWithoutTx        int `json:"videos_without_transcript"`
	VideosAlreadyProcessed int `json:"videos_already_processed"`
	VideosSummarized       int `json:"videos_summarized"`
	Errors                 int `json:"errors"`
}

func (c *Counters) add(o Outcome) {
	switch o {
	case OutcomeFiltered:
		c.VideosFiltered++
	case OutcomeNoTranscript:
		c.VideosWithoutTx++
	case OutcomeAlreadyProcessed:
		c.VideosAlreadyProcessed++
	case OutcomeSummarized:
		c.VideosSummarized++
	case OutcomeError:
		c.Errors++
	}
}

// RunStats accumulates counters for one invocation. Safe for concurrent use.
type RunStats struct {
	mu         sync.Mutex
	runID      string
	startedAt  time.Time
	finishedAt time.Time
	total      Counters
	byHashtag  map[string]*Counters
}

func NewRunStats(runID string, startedAt time.Time) *RunStats {
	return &RunStats{
		runID:     runID,
		startedAt: startedAt,
		byHashtag: make(map[string]*Counters),
	}
}

func (s *RunStats) Found(hashtag string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total.VideosFound += n
	s.hashtag(hashtag).VideosFound += n
}

func (s *RunStats) Record(hashtag string, o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total.add(o)
	s.hashtag(hashtag).add(o)
}

func (s *RunStats) Finish(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishedAt = at
}

func (s *RunStats) hashtag(h string) *Counters {
	c, ok := s.byHashtag[h]
	if !ok {
		c = &Counters{}
		s.byHashtag[h] = c
	}
	return c
}

// Report is an immutable snapshot of RunStats, suitable for logging and returning.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Counters
	Hashtags map[string]Counters `json:"hashtags"`
}

func (s *RunStats) Report() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	hashtags := make(map[string]Counters, len(s.byHashtag))
	for h, c := range s.byHashtag {
		hashtags[h] = *c
	}

	return Report{
		RunID:      s.runID,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
		Counters:   s.total,
		Hashtags:   hashtags,
	}
}
