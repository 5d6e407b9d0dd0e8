package repository

import "github.com/ledgerworks/ms-go-pipelines/app/entity"

// tableSpec binds a subject type to its junction table's field layout. The
// external spreadsheet schema has drifted, so display values are resolved
// through ordered alias lists keyed by semantic role; everything above the
// repositories sees clean strings only.
type tableSpec struct {
	subjectLink    string
	serviceLink    string
	processorField string
	statusField    string
	notesField     string

	nameAliases          []string
	phoneAliases         []string
	emailAliases         []string
	clientCodeAliases    []string
	serviceNameAliases   []string
	billingAmountAliases []string
}

var personalSpec = tableSpec{
	subjectLink:       "Last Name",
	serviceLink:       "Service",
	processorField:    "Tax Preparer",
	statusField:       "Status",
	notesField:        "Notes",
	nameAliases:       []string{"Full Name"},
	phoneAliases:      []string{"📞Phone number", "Phone"},
	emailAliases:      []string{"📧 Email", "Email"},
	clientCodeAliases: []string{"Client Code"},
	serviceNameAliases: []string{
		"Service Name (from Service)",
		"Name (from Service)",
		"Service Name",
		"Service Name (from Personal Services)",
		"Name (from Personal Services)",
	},
	billingAmountAliases: []string{"Billing Amount", "Quoted Amount"},
}

var corporateSpec = tableSpec{
	subjectLink:       "Customer",
	serviceLink:       "Services",
	processorField:    "Processor",
	statusField:       "Status",
	notesField:        "Notes",
	// The customer-name lookup field really does carry two spaces.
	nameAliases:       []string{"Company Name", "Company  (from Customer)"},
	phoneAliases:      []string{"Phone (from Customer)", "Phone"},
	emailAliases:      []string{"Email (from Customer)", "Email"},
	clientCodeAliases: []string{"EIN (from Customer)", "EIN"},
	serviceNameAliases: []string{
		"Service Name",
		"Service Name (from Services)",
		"Services (from Services)",
		"Service Name (from Services Corporate)",
		"Name (from Services)",
	},
	billingAmountAliases: []string{"Billing Amount"},
}

func specFor(subjectType entity.SubjectType) tableSpec {
	if subjectType == entity.SubjectCorporate {
		return corporateSpec
	}
	return personalSpec
}
