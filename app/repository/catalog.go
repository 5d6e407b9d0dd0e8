package repository

import (
	"context"
	"strings"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

// CatalogRepository reads the service catalog tables. Master data is owned
// elsewhere; this component only resolves service names to record ids.
type CatalogRepository struct {
	store  record.Store
	tables config.TableNames
}

func NewCatalogRepository(store record.Store, tables config.TableNames) *CatalogRepository {
	return &CatalogRepository{store: store, tables: tables}
}

func (r *CatalogRepository) tableFor(subjectType entity.SubjectType) string {
	if subjectType == entity.SubjectCorporate {
		return r.tables.ServicesCorporate
	}
	return r.tables.ServicesPersonal
}

func (r *CatalogRepository) List(ctx context.Context, subjectType entity.SubjectType) ([]*entity.CatalogService, error) {
	records, err := r.store.List(ctx, r.tableFor(subjectType), "")
	if err != nil {
		return nil, err
	}

	items := make([]*entity.CatalogService, 0, len(records))
	for _, rec := range records {
		items = append(items, &entity.CatalogService{
			ID:          rec.ID,
			Name:        record.StringField(rec.Fields, "Name", "Service Name"),
			SubjectType: subjectType,
		})
	}
	return items, nil
}

// FindByName resolves a catalog service by exact name, case-insensitively.
// Returns (nil, nil) when the catalog has no such service.
func (r *CatalogRepository) FindByName(ctx context.Context, subjectType entity.SubjectType, name string) (*entity.CatalogService, error) {
	items, err := r.List(ctx, subjectType)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return nil, nil
}
