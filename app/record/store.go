package record

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mehanizm/airtable"
)

// Record is the adapter-neutral shape of one row: an opaque id, a field map
// and the store-assigned creation timestamp.
type Record struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
}

// Store is the record-store boundary consumed by the repositories. The filter
// argument is a store-native filter expression (an Airtable formula for the
// production implementation); empty means no filter.
type Store interface {
	List(ctx context.Context, table, filter string) ([]Record, error)
	Get(ctx context.Context, table, id string) (Record, error)
	Create(ctx context.Context, table string, fields map[string]any) (Record, error)
	Update(ctx context.Context, table, id string, fields map[string]any) (Record, error)
	Delete(ctx context.Context, table, id string) error
}

const listPageSize = 100

// AirtableStore implements Store against the Airtable REST API. Cancellation
// is bounded by the HTTP client timeout rather than per-call contexts; the
// context parameters keep the boundary honest for other implementations.
type AirtableStore struct {
	client *airtable.Client
	baseID string
}

func NewAirtableStore(apiKey, baseID string, timeout time.Duration) *AirtableStore {
	client := airtable.NewClient(apiKey)
	client.SetCustomClient(&http.Client{Timeout: timeout})
	return &AirtableStore{client: client, baseID: baseID}
}

func (s *AirtableStore) List(_ context.Context, table, filter string) ([]Record, error) {
	tbl := s.client.GetTable(s.baseID, table)

	var result []Record
	offset := ""
	for {
		cfg := tbl.GetRecords().PageSize(listPageSize)
		if filter != "" {
			cfg = cfg.WithFilterFormula(filter)
		}
		if offset != "" {
			cfg = cfg.WithOffset(offset)
		}
		page, err := cfg.Do()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		for _, rec := range page.Records {
			result = append(result, fromAirtable(rec))
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	return result, nil
}

func (s *AirtableStore) Get(_ context.Context, table, id string) (Record, error) {
	rec, err := s.client.GetTable(s.baseID, table).GetRecord(id)
	if err != nil {
		return Record{}, fmt.Errorf("get %s/%s: %w", table, id, err)
	}
	return fromAirtable(rec), nil
}

func (s *AirtableStore) Create(_ context.Context, table string, fields map[string]any) (Record, error) {
	created, err := s.client.GetTable(s.baseID, table).AddRecords(&airtable.Records{
		Records: []*airtable.Record{{Fields: fields}},
	})
	if err != nil {
		return Record{}, fmt.Errorf("create %s: %w", table, err)
	}
	if len(created.Records) == 0 {
		return Record{}, fmt.Errorf("create %s: empty response", table)
	}
	return fromAirtable(created.Records[0]), nil
}

func (s *AirtableStore) Update(_ context.Context, table, id string, fields map[string]any) (Record, error) {
	updated, err := s.client.GetTable(s.baseID, table).UpdateRecords(&airtable.Records{
		Records: []*airtable.Record{{ID: id, Fields: fields}},
	})
	if err != nil {
		return Record{}, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	if len(updated.Records) == 0 {
		return Record{}, fmt.Errorf("update %s/%s: empty response", table, id)
	}
	return fromAirtable(updated.Records[0]), nil
}

func (s *AirtableStore) Delete(_ context.Context, table, id string) error {
	if _, err := s.client.GetTable(s.baseID, table).DeleteRecords([]string{id}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	return nil
}

func fromAirtable(rec *airtable.Record) Record {
	createdAt, _ := time.Parse(time.RFC3339, rec.CreatedTime)
	return Record{
		ID:        rec.ID,
		Fields:    rec.Fields,
		CreatedAt: createdAt,
	}
}
