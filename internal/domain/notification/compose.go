package notification

import (
	"fmt"
	"strings"

	"storemail/internal/common"
)

// Compose normalizes a request into a Message. from is the configured
// default sender; the request may override its address but not its name.
// Every failure is a *common.ValidationError and happens before any
// provider is contacted.
func Compose(req *Request, from Address) (*Message, error) {
	var hints Hints
	if err := req.Data.Decode(&hints); err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	var content Content
	if req.Content != nil {
		content = *req.Content
	}

	subject := firstNonBlank(content.Subject, hints.Subject)
	if subject == "" {
		return nil, common.NewValidationError("subject is required in content.subject or data.subject")
	}

	var html string
	if strings.TrimSpace(content.HTML) != "" {
		html = content.HTML
	}

	text := content.Text
	if text == "" {
		text = hints.Text
	}

	if html == "" && text == "" {
		return nil, common.NewValidationError("either HTML content or text content is required")
	}

	sender := Address{Email: strings.TrimSpace(from.Email), Name: from.Name}
	if override := strings.TrimSpace(req.From); override != "" {
		sender.Email = override
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		return nil, common.NewValidationError("recipient email address is required")
	}

	msg := &Message{
		From:    sender,
		To:      Address{Email: to, Name: hints.ToName},
		Subject: subject,
		HTML:    html,
		Text:    text,
	}

	if email := strings.TrimSpace(hints.ReplyToEmail); email != "" {
		msg.ReplyTo = &Address{Email: email, Name: hints.ReplyToName}
	}

	for _, att := range req.Attachments {
		if att.ContentType == "" {
			att.ContentType = DefaultContentType
		}
		if att.Inline() {
			if strings.TrimSpace(att.ID) == "" {
				return nil, common.NewValidationError(fmt.Sprintf("inline attachment %q requires a content id", att.Filename))
			}
			msg.Inline = append(msg.Inline, att)
			continue
		}
		att.ID = ""
		msg.Attachments = append(msg.Attachments, att)
	}

	return msg, nil
}

// firstNonBlank returns the first value that is non-empty after trimming, trimmed.
func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
