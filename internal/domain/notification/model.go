package notification

// Channel represents a notification delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
)

// Template identifiers understood by the built-in renderer.
const (
	TemplateCustomerRegistered = "customer_registered"
	TemplateOrderPlaced        = "order_placed"
)

const (
	// DispositionInline marks an attachment referenced by content-id from the HTML body.
	DispositionInline = "inline"

	// DefaultContentType is used for attachments sent without a content type.
	DefaultContentType = "application/octet-stream"
)

// Request is a provider-agnostic "send notification" command.
type Request struct {
	Channel     Channel      `json:"channel" binding:"required,oneof=email"`
	To          string       `json:"to"`
	From        string       `json:"from,omitempty"`
	Template    string       `json:"template" binding:"required"`
	Locale      string       `json:"locale,omitempty"`
	Data        Data         `json:"data,omitempty"`
	Content     *Content     `json:"content,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Content is pre-rendered message content.
type Content struct {
	Subject string `json:"subject,omitempty"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Attachment is a base64-encoded file sent with a message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content"`
	Disposition string `json:"disposition,omitempty"`
	ID          string `json:"id,omitempty"`
}

// Inline reports whether the attachment is embedded in the HTML body.
func (a Attachment) Inline() bool {
	return a.Disposition == DispositionInline
}

// Result is the outcome of a successful send. ID is empty when the
// provider response carries no message identifier.
type Result struct {
	ID string `json:"id,omitempty"`
}

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// Message is the normalized email built from a Request, ready to be
// mapped onto a provider's wire format.
type Message struct {
	From        Address
	To          Address
	ReplyTo     *Address
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
	Inline      []Attachment
}
