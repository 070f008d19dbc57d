package records

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"

	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/store"
)

var (
	DefaultCacheSize            = 128
	DefaultCacheEntryExpiration = 120 * time.Second // matches the store API budget
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger

	// Listings are cached per filter to keep dashboard refreshes from
	// hammering the store. The cache is purged synchronously on every
	// append so a patient sees their submission immediately.
	lru *simplelru.LRU
	mu  sync.Mutex
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	lru, err := simplelru.NewLRU(DefaultCacheSize, nil)
	if err != nil {
		return nil, err
	}

	return &service{
		repo:   repo,
		logger: logger,
		lru:    lru,
	}, nil
}

func (s *service) Append(ctx context.Context, record Record) (*Record, error) {
	if record.CreatedTime.IsZero() {
		record.CreatedTime = time.Now()
	}

	created, err := s.repo.Append(ctx, record)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lru.Purge()
	s.mu.Unlock()

	s.logger.Infow("appended session record", "patient", created.PatientID)
	return created, nil
}

func (s *service) List(ctx context.Context, filter *Filter, page store.Pagination) ([]Record, error) {
	key := cacheKey(filter, page)
	if cached := s.getCachedEntry(key); cached != nil {
		return cached.records, nil
	}

	list, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	s.setCacheEntry(key, cacheEntry{
		records: list,
		expiry:  time.Now().Add(DefaultCacheEntryExpiration),
	})
	return list, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	list, err := s.List(ctx, nil, store.Pagination{})
	if err != nil {
		return nil, err
	}

	normalized := kpi.NormalizeAll(Raw(list))

	patients := mapset.NewSet[string]()
	var latest *time.Time
	jointSums := [kpi.JointCount]float64{}
	jointCounts := [kpi.JointCount]int{}

	for _, rec := range normalized {
		if rec.PatientID != "" {
			patients.Add(strings.ToLower(rec.PatientID))
		}
		if rec.TimestampOK && (latest == nil || rec.Timestamp.After(*latest)) {
			ts := rec.Timestamp
			latest = &ts
		}
		for i, flex := range rec.Flex {
			if flex.Available() {
				jointSums[i] += flex.Float()
				jointCounts[i]++
			}
		}
	}

	return &Stats{
		PatientCount:    patients.Cardinality(),
		RecordCount:     len(list),
		AvgFlexDegrees:  meanOfJointMeans(jointSums, jointCounts),
		LatestTimestamp: latest,
	}, nil
}

// meanOfJointMeans averages the per-joint averages, so a joint with sparse
// readings weighs the same as a fully populated one.
func meanOfJointMeans(sums [kpi.JointCount]float64, counts [kpi.JointCount]int) kpi.Value {
	var total float64
	var joints int
	for i := 0; i < kpi.JointCount; i++ {
		if counts[i] > 0 {
			total += sums[i] / float64(counts[i])
			joints++
		}
	}
	if joints == 0 {
		return kpi.Unavailable()
	}
	return kpi.NewValue(math.Round(total/float64(joints)*100) / 100)
}

type cacheEntry struct {
	records []Record
	expiry  time.Time
}

func (c cacheEntry) IsExpired() bool {
	return time.Now().After(c.expiry)
}

func cacheKey(filter *Filter, page store.Pagination) string {
	key := "all"
	if filter != nil {
		if filter.PatientID != nil {
			key = "patient:" + *filter.PatientID
		} else if filter.Search != nil {
			key = "search:" + *filter.Search
		}
	}
	if page != (store.Pagination{}) {
		key += fmt.Sprintf("|%d+%d", page.Offset, page.Limit)
	}
	return key
}

func (s *service) getCachedEntry(key string) *cacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.lru.Get(key); ok {
		entry := e.(cacheEntry)
		if entry.IsExpired() {
			s.lru.Remove(key)
			return nil
		}
		return &entry
	}

	return nil
}

func (s *service) setCacheEntry(key string, entry cacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.lru.Add(key, entry)
}
