package repository

import (
	"context"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

// TeamRepository reads the staff table used to populate processor filters
// and assignment choices.
type TeamRepository struct {
	store  record.Store
	tables config.TableNames
}

func NewTeamRepository(store record.Store, tables config.TableNames) *TeamRepository {
	return &TeamRepository{store: store, tables: tables}
}

func (r *TeamRepository) List(ctx context.Context) ([]*entity.Processor, error) {
	records, err := r.store.List(ctx, r.tables.Teams, "")
	if err != nil {
		return nil, err
	}

	items := make([]*entity.Processor, 0, len(records))
	for _, rec := range records {
		items = append(items, &entity.Processor{
			ID:    rec.ID,
			Name:  record.StringField(rec.Fields, "Name", "Full Name"),
			Email: record.StringField(rec.Fields, "Email", "📧 Email"),
		})
	}
	return items, nil
}
