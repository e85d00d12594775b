package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"folio/internal/kv"
)

// ReportDays is the fixed analytics window, inclusive of today.
const ReportDays = 30

// AnalyticsService records page visits and reports the rolling window.
// Now is injectable for tests and defaults to time.Now.
type AnalyticsService struct {
	Store    kv.Store
	Contacts *ContactService
	Now      func() time.Time
}

type VisitInput struct {
	Page      string
	UserAgent string
	Referrer  string
	IP        string
}

// RecordVisit persists an audit record and bumps today's counter. When the
// store supports atomic increments the bump cannot lose updates under
// concurrent visits; otherwise it falls back to the read-then-write the
// original contract allows (last writer wins).
func (s *AnalyticsService) RecordVisit(ctx context.Context, in VisitInput) error {
	now := s.now()
	if in.Page == "" {
		in.Page = "/"
	}
	if in.IP == "" {
		in.IP = "unknown"
	}

	rec := VisitRecord{
		ID:        newID("visit"),
		Page:      in.Page,
		UserAgent: in.UserAgent,
		Referrer:  in.Referrer,
		Timestamp: isoTime(now),
		IP:        in.IP,
	}
	raw, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	if err := s.Store.Set(ctx, rec.ID, raw); err != nil {
		return fmt.Errorf("store visit: %w", err)
	}

	key := dayKey(now)
	if inc, ok := s.Store.(kv.Incrementer); ok {
		_, err := inc.IncrBy(ctx, key, 1)
		return err
	}

	n, err := s.readCounter(ctx, key)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, key, []byte(strconv.FormatInt(n+1, 10)))
}

// Report resolves the last ReportDays day counters in one batch, oldest
// first, and derives the summary. Average always divides by the window
// size, not by the number of days with data.
func (s *AnalyticsService) Report(ctx context.Context) (*Report, error) {
	today := s.now().UTC()

	keys := make([]string, 0, ReportDays)
	dates := make([]string, 0, ReportDays)
	for i := ReportDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		keys = append(keys, dayKey(day))
		dates = append(dates, day.Format("2006-01-02"))
	}

	values, err := s.Store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	days := make([]DailyVisits, ReportDays)
	var total int64
	for i, raw := range values {
		var visits int64
		if raw != nil {
			visits, err = strconv.ParseInt(string(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("counter %s: %w", keys[i], err)
			}
		}
		days[i] = DailyVisits{Date: dates[i], Visits: visits}
		total += visits
	}

	contacts, err := s.Contacts.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Analytics: days,
		Summary: Summary{
			TotalVisits:     total,
			TotalContacts:   contacts,
			AvgVisitsPerDay: float64(total) / ReportDays,
		},
	}, nil
}

func (s *AnalyticsService) readCounter(ctx context.Context, key string) (int64, error) {
	raw, err := s.Store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (s *AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
