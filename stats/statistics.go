// Package stats keeps in-memory request statistics for the statistics endpoint.
package stats

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	visitorWindow  = 24 * time.Hour
	popularURLsTop = 5
)

// Statistics tracks visitors and analysis requests since process start.
type Statistics struct {
	mu               sync.RWMutex
	uniqueVisitors   map[string]time.Time
	popularURLs      map[string]int
	analysisRequests int
	errorCount       int
	totalLoadTime    float64
	now              func() time.Time
}

// Snapshot is the JSON view of Statistics.
type Snapshot struct {
	UniqueVisitors24h int            `json:"uniqueVisitors24h"`
	TotalRequests     int            `json:"totalRequests"`
	ErrorRate         float64        `json:"errorRate"`
	AverageLoadTime   float64        `json:"averageLoadTime"`
	PopularURLs       map[string]int `json:"popularUrls,omitempty"`
}

// New returns empty Statistics.
func New() *Statistics {
	return &Statistics{
		uniqueVisitors: make(map[string]time.Time),
		popularURLs:    make(map[string]int),
		now:            time.Now,
	}
}

// TrackVisitor records a visit from ip.
func (s *Statistics) TrackVisitor(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uniqueVisitors[ip] = s.now()
}

// TrackAnalysis records a finished analysis of target taking loadTime.
func (s *Statistics) TrackAnalysis(target string, loadTime time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analysisRequests++
	if cleaned := cleanURL(target); cleaned != "" {
		s.popularURLs[cleaned]++
	}
	if failed {
		s.errorCount++
	}
	s.totalLoadTime += float64(loadTime.Milliseconds())
}

// Snapshot returns the current figures. Popular URLs are included only when
// detailed is set.
func (s *Statistics) Snapshot(detailed bool) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		UniqueVisitors24h: s.uniqueVisitorsLocked(),
		TotalRequests:     s.analysisRequests,
	}
	if s.analysisRequests > 0 {
		snap.ErrorRate = float64(s.errorCount) / float64(s.analysisRequests) * 100
		snap.AverageLoadTime = s.totalLoadTime / float64(s.analysisRequests)
	}
	if detailed {
		snap.PopularURLs = s.topURLsLocked(popularURLsTop)
	}
	return snap
}

// Prune drops visitors last seen outside the 24 hour window.
func (s *Statistics) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-visitorWindow)
	for ip, last := range s.uniqueVisitors {
		if last.Before(cutoff) {
			delete(s.uniqueVisitors, ip)
		}
	}
}

func (s *Statistics) uniqueVisitorsLocked() int {
	cutoff := s.now().Add(-visitorWindow)
	count := 0
	for _, last := range s.uniqueVisitors {
		if last.After(cutoff) {
			count++
		}
	}
	return count
}

func (s *Statistics) topURLsLocked(n int) map[string]int {
	urls := make([]string, 0, len(s.popularURLs))
	for u := range s.popularURLs {
		urls = append(urls, u)
	}
	sort.Slice(urls, func(i, j int) bool {
		if s.popularURLs[urls[i]] != s.popularURLs[urls[j]] {
			return s.popularURLs[urls[i]] > s.popularURLs[urls[j]]
		}
		return urls[i] < urls[j]
	})

	top := make(map[string]int, min(n, len(urls)))
	for _, u := range urls[:min(n, len(urls))] {
		top[u] = s.popularURLs[u]
	}
	return top
}

// cleanURL reduces a URL to scheme, host and path, and drops local targets.
func cleanURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Host)
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return ""
	}

	cleaned := u.Scheme + "://" + host
	if u.Path != "" && u.Path != "/" {
		cleaned += u.Path
	}
	return strings.TrimSuffix(cleaned, "/")
}
