package models

// Email templates rendered by the mail service.
const (
	TemplateTransactionConfirmation = "transactions/confirmation_code"
	TemplatePocketDeletion          = "pocket/deletion_code"
)

// Notification is an email request handed to the mail service.
type Notification struct {
	Recipient string         `json:"recipient"`
	Template  string         `json:"template"`
	Context   map[string]any `json:"context"`
}
