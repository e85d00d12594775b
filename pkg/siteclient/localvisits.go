package siteclient

import (
	"strconv"
	"strings"
	"time"
)

const (
	localKeyPrefix  = "portfolio_visits_"
	localRetainDays = 30
)

// Storage is the small persisted-state capability LocalVisits counts
// against: string keys to string values, browser-localStorage shaped.
// Implementations are expected to be best effort; LocalVisits never fails
// a caller over storage trouble.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Keys() []string
}

// LocalVisits keeps per-day visit counters in an injected Storage, pruned
// to a 30-day rolling window. It is the local fallback the site uses when
// the analytics beacon cannot reach the backend.
type LocalVisits struct {
	Storage Storage
	Now     func() time.Time
}

// Record increments today's counter and prunes entries older than the
// retention window.
func (l *LocalVisits) Record() {
	now := l.now()
	key := localKeyPrefix + now.UTC().Format("2006-01-02")

	n := int64(0)
	if v, ok := l.Storage.Get(key); ok {
		n, _ = strconv.ParseInt(v, 10, 64)
	}
	l.Storage.Set(key, strconv.FormatInt(n+1, 10))

	cutoff := now.UTC().AddDate(0, 0, -localRetainDays).Format("2006-01-02")
	for _, k := range l.Storage.Keys() {
		if !strings.HasPrefix(k, localKeyPrefix) {
			continue
		}
		if strings.TrimPrefix(k, localKeyPrefix) < cutoff {
			l.Storage.Remove(k)
		}
	}
}

// Summary returns the last days counters oldest first, inclusive of today,
// with absent days reported as zero.
func (l *LocalVisits) Summary(days int) ([]DailyVisits, int64) {
	today := l.now().UTC()

	out := make([]DailyVisits, 0, days)
	var total int64
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		var n int64
		if v, ok := l.Storage.Get(localKeyPrefix + date); ok {
			n, _ = strconv.ParseInt(v, 10, 64)
		}
		out = append(out, DailyVisits{Date: date, Visits: n})
		total += n
	}
	return out, total
}

func (l *LocalVisits) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
