package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

const (
	SortByName     = "name"
	SortByDate     = "date"
	SortByPriority = "priority"

	SortAsc  = "asc"
	SortDesc = "desc"

	// ProcessorUnassigned filters for subscriptions without a handler.
	ProcessorUnassigned = "unassigned"

	// FilterAll disables a status or service filter.
	FilterAll = "all"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityNormal Priority = "Normal"
)

// ListQuery shapes one pipeline read. Empty filter fields mean "no filter";
// empty sort fields fall back to the per-subject-type configured defaults.
type ListQuery struct {
	SubjectType entity.SubjectType
	Service     string
	Processor   string
	Status      string
	Search      string
	SortKey     string
	SortDir     string
}

func (q ListQuery) validate() error {
	switch q.SortKey {
	case "", SortByName, SortByDate, SortByPriority:
	default:
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidRequest, q.SortKey)
	}
	switch q.SortDir {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("%w: unknown sort direction %q", ErrInvalidRequest, q.SortDir)
	}
	if q.Status != "" && q.Status != FilterAll && !entity.Status(q.Status).Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, q.Status)
	}
	return nil
}

func filterPipeline(items []*entity.Subscription, query ListQuery) []*entity.Subscription {
	filtered := make([]*entity.Subscription, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(query.Search))

	for _, item := range items {
		if query.Service != "" && query.Service != FilterAll && !strings.EqualFold(item.ServiceName, query.Service) {
			continue
		}
		if query.Status != "" && query.Status != FilterAll && item.Status != entity.Status(query.Status) {
			continue
		}
		if !matchesProcessor(item, query.Processor) {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func matchesProcessor(item *entity.Subscription, filter string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case ProcessorUnassigned:
		return item.Unassigned()
	default:
		for _, id := range item.ProcessorIDs {
			if id == filter {
				return true
			}
		}
		return false
	}
}

func matchesSearch(item *entity.Subscription, search string) bool {
	return strings.Contains(strings.ToLower(item.SubjectName), search) ||
		strings.Contains(strings.ToLower(item.Phone), search) ||
		strings.Contains(strings.ToLower(item.Email), search)
}

func (s *PipelineService) sortPipeline(items []*entity.Subscription, query ListQuery) {
	key := query.SortKey
	dir := query.SortDir
	if key == "" {
		key = s.defaultSortKey(query.SubjectType)
	}
	if dir == "" {
		dir = s.defaultSortDir(query.SubjectType)
	}

	now := time.Now().UTC()
	var less func(a, b *entity.Subscription) bool
	switch key {
	case SortByName:
		collator := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b *entity.Subscription) bool {
			return collator.CompareString(a.SubjectName, b.SubjectName) < 0
		}
	case SortByPriority:
		less = func(a, b *entity.Subscription) bool {
			return a.AgeInDays(now) < b.AgeInDays(now)
		}
	default:
		less = func(a, b *entity.Subscription) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if dir == SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (s *PipelineService) defaultSortKey(subjectType entity.SubjectType) string {
	if subjectType == entity.SubjectCorporate {
		return s.cfg.CorporateSortKey
	}
	return s.cfg.PersonalSortKey
}

func (s *PipelineService) defaultSortDir(subjectType entity.SubjectType) string {
	if subjectType == entity.SubjectCorporate {
		return s.cfg.CorporateSortDir
	}
	return s.cfg.PersonalSortDir
}

// PriorityFor buckets a subscription's age for display. Thresholds are
// inclusive and differ per subject type: corporate pipelines tolerate more age
// before escalating than personal ones.
func PriorityFor(subjectType entity.SubjectType, ageInDays int, cfg config.PipelineConfig) Priority {
	high, medium := cfg.PersonalHighAgeDays, cfg.PersonalMediumAgeDays
	if subjectType == entity.SubjectCorporate {
		high, medium = cfg.CorporateHighAgeDays, cfg.CorporateMediumAgeDays
	}
	switch {
	case ageInDays >= high:
		return PriorityHigh
	case ageInDays >= medium:
		return PriorityMedium
	default:
		return PriorityNormal
	}
}
