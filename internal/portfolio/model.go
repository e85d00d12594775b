package portfolio

import "time"

// Contact submission lifecycle states.
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// Store keys. Index lists enumerate records without scanning all keys.
const (
	contactIndexKey  = "contact_submissions"
	projectListKey   = "portfolio_projects"
	projectKeyPrefix = "project_"
	visitKeyPrefix   = "visits_"
)

// ContactSubmission is a message received through the public contact form.
// Records are created once, mutated only by status updates, never deleted.
type ContactSubmission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Project carries arbitrary caller-supplied fields plus "id" and
// "updatedAt", so it stays an open JSON object rather than a fixed struct.
type Project map[string]any

// ID returns the project's id field, or "" when absent.
func (p Project) ID() string {
	id, _ := p["id"].(string)
	return id
}

// VisitRecord is a write-once audit entry for a single page visit.
type VisitRecord struct {
	ID        string `json:"id"`
	Page      string `json:"page"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
}

// DailyVisits is one day of the analytics window.
type DailyVisits struct {
	Date   string `json:"date"`
	Visits int64  `json:"visits"`
}

// Summary aggregates the analytics window.
type Summary struct {
	TotalVisits     int64   `json:"totalVisits"`
	TotalContacts   int     `json:"totalContacts"`
	AvgVisitsPerDay float64 `json:"avgVisitsPerDay"`
}

// Report is the admin analytics payload: per-day counts oldest first,
// inclusive of today, plus the summary.
type Report struct {
	Analytics []DailyVisits `json:"analytics"`
	Summary   Summary       `json:"summary"`
}

// isoTime renders t the way the stored documents expect timestamps:
// UTC, millisecond precision, trailing Z.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// dayKey is the daily counter key for t's UTC calendar date.
func dayKey(t time.Time) string {
	return visitKeyPrefix + t.UTC().Format("2006-01-02")
}
