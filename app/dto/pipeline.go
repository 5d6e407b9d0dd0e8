package dto

type SubscriptionResponse struct {
	ID            string   `json:"id"`
	SubjectType   string   `json:"subject_type"`
	SubjectID     string   `json:"subject_id"`
	ServiceID     string   `json:"service_id"`
	ServiceName   string   `json:"service_name"`
	SubjectName   string   `json:"subject_name"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	ClientCode    string   `json:"client_code,omitempty"`
	ProcessorIDs  []string `json:"processor_ids"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	BillingAmount *float64 `json:"billing_amount,omitempty"`
	CreatedAt     string   `json:"created_at"`
	AgeInDays     int      `json:"age_in_days"`
	Priority      string   `json:"priority"`
}

type ListPipelineResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type SubscriptionEnvelopeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
}

type ProcessorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ListProcessorsResponse struct {
	Processors []ProcessorResponse `json:"processors"`
}

type CompleteServiceResponse struct {
	Removed         bool   `json:"removed"`
	FollowUpCreated bool   `json:"follow_up_created"`
	LedgerEntryID   string `json:"ledger_entry_id,omitempty"`
	Warning         string `json:"warning,omitempty"`
}
