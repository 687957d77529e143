package mailjet

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StatusError is the per-message status Mailjet reports for a rejected message.
const StatusError = "error"

// SendRequest is the body of POST /v3.1/send.
type SendRequest struct {
	Messages []Message `json:"Messages"`
}

// Recipient is an address with an optional display name.
type Recipient struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

// Message is one outbound email.
type Message struct {
	From               Recipient           `json:"From"`
	To                 []Recipient         `json:"To"`
	ReplyTo            *Recipient          `json:"ReplyTo,omitempty"`
	Subject            string              `json:"Subject"`
	HTMLPart           string              `json:"HTMLPart,omitempty"`
	TextPart           string              `json:"TextPart,omitempty"`
	Attachments        []Attachment        `json:"Attachments,omitempty"`
	InlinedAttachments []InlinedAttachment `json:"InlinedAttachments,omitempty"`
}

// Attachment is a base64-encoded file.
type Attachment struct {
	ContentType   string `json:"ContentType"`
	Filename      string `json:"Filename"`
	Base64Content string `json:"Base64Content"`
}

// InlinedAttachment is referenced from HTMLPart as cid:ContentID.
type InlinedAttachment struct {
	Attachment
	ContentID string `json:"ContentID"`
}

// SendResponse is the body of a send reply.
type SendResponse struct {
	Messages []MessageResult `json:"Messages"`
}

// MessageResult reports the outcome of one message.
type MessageResult struct {
	Status string            `json:"Status"`
	To     []RecipientResult `json:"To,omitempty"`
	Errors Errors            `json:"Errors,omitempty"`
}

// RecipientResult carries the identifiers assigned to one recipient.
// MessageID is kept raw so an unexpected shape does not fail the whole reply.
type RecipientResult struct {
	Email       string          `json:"Email"`
	MessageUUID string          `json:"MessageUUID"`
	MessageID   json.RawMessage `json:"MessageID"`
	MessageHref string          `json:"MessageHref"`
}

// APIError is a Mailjet error object, used both at the top level and per message.
type APIError struct {
	ErrorIdentifier string   `json:"ErrorIdentifier"`
	ErrorCode       string   `json:"ErrorCode"`
	StatusCode      int      `json:"StatusCode"`
	ErrorMessage    string   `json:"ErrorMessage"`
	ErrorRelatedTo  []string `json:"ErrorRelatedTo,omitempty"`
}

// Errors is the list of per-message errors.
type Errors []APIError

func (e Errors) String() string {
	if len(e) == 0 {
		return "message rejected"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msg := err.ErrorMessage
		if len(err.ErrorRelatedTo) > 0 {
			msg += " (" + strings.Join(err.ErrorRelatedTo, ", ") + ")"
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// MessageID returns the identifier of the first recipient of the first
// message: MessageUUID when set, else MessageID. It is empty when the
// response carries neither.
func (r *SendResponse) MessageID() string {
	if r == nil || len(r.Messages) == 0 || len(r.Messages[0].To) == 0 {
		return ""
	}
	to := r.Messages[0].To[0]
	if to.MessageUUID != "" {
		return to.MessageUUID
	}
	return formatID(to.MessageID)
}

// formatID renders a JSON number as plain decimal digits and a JSON string
// as its contents. Anything else reads as absent.
func formatID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := string(raw)
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if u, err := strconv.ParseUint(n, 10, 64); err == nil {
			return strconv.FormatUint(u, 10)
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}
