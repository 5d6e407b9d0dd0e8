package entity

// CatalogService is a row of the service catalog (master data owned by the
// external catalog tables, read-only here).
type CatalogService struct {
	ID          string
	Name        string
	SubjectType SubjectType
}

// Processor is a staff member who can be assigned to handle a subscription.
type Processor struct {
	ID    string
	Name  string
	Email string
}
