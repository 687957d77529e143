package notification

import (
	"errors"
	"testing"

	"storemail/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultFrom = Address{Email: "shop@example.com", Name: "Cyber Maker"}

func baseRequest() *Request {
	return &Request{
		Channel:  ChannelEmail,
		To:       "sam@example.com",
		Template: TemplateCustomerRegistered,
		Content:  &Content{Subject: "Welcome", HTML: "<p>Hi</p>"},
	}
}

func requireValidation(t *testing.T, err error) *common.ValidationError {
	t.Helper()
	var validation *common.ValidationError
	require.True(t, errors.As(err, &validation), "expected validation error, got %v", err)
	return validation
}

func TestCompose_Subject(t *testing.T) {
	tests := []struct {
		name    string
		content *Content
		data    Data
		want    string
		wantErr bool
	}{
		{"content subject is trimmed", &Content{Subject: "  Hello  ", Text: "x"}, nil, "Hello", false},
		{"data subject used as fallback", &Content{Text: "x"}, Data{"subject": "Sale!"}, "Sale!", false},
		{"blank content subject falls back", &Content{Subject: "   ", Text: "x"}, Data{"subject": " Sale! "}, "Sale!", false},
		{"non-string data subject ignored", &Content{Text: "x"}, Data{"subject": 42}, "", true},
		{"neither present", &Content{Text: "x"}, nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Content = tt.content
			req.Data = tt.data

			msg, err := Compose(req, defaultFrom)
			if tt.wantErr {
				requireValidation(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Subject)
		})
	}
}

func TestCompose_DataKeysAreCaseSensitive(t *testing.T) {
	req := baseRequest()
	req.Content = &Content{HTML: "<p>Hi</p>"}
	req.Data = Data{"Subject": "Upper", "TEXT": "shout", "To_Name": "Mixed", "Reply_To_Email": "r@example.com"}

	_, err := Compose(req, defaultFrom)
	v := requireValidation(t, err)
	assert.Contains(t, v.Message, "subject is required")

	req.Content.Subject = "Hello"
	msg, err := Compose(req, defaultFrom)
	require.NoError(t, err)
	assert.Empty(t, msg.Text)
	assert.Empty(t, msg.To.Name)
	assert.Nil(t, msg.ReplyTo)
}

func TestCompose_Body(t *testing.T) {
	t.Run("html kept untrimmed", func(t *testing.T) {
		req := baseRequest()
		req.Content.HTML = "  <p>Hi</p>\n"
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Equal(t, "  <p>Hi</p>\n", msg.HTML)
		assert.Empty(t, msg.Text)
	})

	t.Run("whitespace html is absent", func(t *testing.T) {
		req := baseRequest()
		req.Content.HTML = "   "
		req.Content.Text = "plain"
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Empty(t, msg.HTML)
		assert.Equal(t, "plain", msg.Text)
	})

	t.Run("text from data bag", func(t *testing.T) {
		req := baseRequest()
		req.Content.HTML = ""
		req.Data = Data{"text": "from data"}
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Equal(t, "from data", msg.Text)
	})

	t.Run("content text preferred over data", func(t *testing.T) {
		req := baseRequest()
		req.Content.Text = "from content"
		req.Data = Data{"text": "from data"}
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Equal(t, "from content", msg.Text)
	})

	t.Run("missing html and text", func(t *testing.T) {
		req := baseRequest()
		req.Content.HTML = ""
		req.Data = Data{"text": 12}
		_, err := Compose(req, defaultFrom)
		v := requireValidation(t, err)
		assert.Contains(t, v.Message, "HTML content or text content")
	})
}

func TestCompose_Addresses(t *testing.T) {
	t.Run("default sender and recipient name", func(t *testing.T) {
		req := baseRequest()
		req.To = "  sam@example.com "
		req.Data = Data{"to_name": "Sam Lee"}
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Equal(t, defaultFrom, msg.From)
		assert.Equal(t, Address{Email: "sam@example.com", Name: "Sam Lee"}, msg.To)
		assert.Nil(t, msg.ReplyTo)
	})

	t.Run("sender override keeps configured name", func(t *testing.T) {
		req := baseRequest()
		req.From = " orders@example.com "
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Equal(t, Address{Email: "orders@example.com", Name: "Cyber Maker"}, msg.From)
	})

	t.Run("blank recipient", func(t *testing.T) {
		for _, to := range []string{"", "   ", "\t\n"} {
			req := baseRequest()
			req.To = to
			_, err := Compose(req, defaultFrom)
			v := requireValidation(t, err)
			assert.Equal(t, "recipient email address is required", v.Message)
		}
	})

	t.Run("reply-to only with non-blank email", func(t *testing.T) {
		req := baseRequest()
		req.Data = Data{"reply_to_email": " help@example.com ", "reply_to_name": "Support"}
		msg, err := Compose(req, defaultFrom)
		require.NoError(t, err)
		require.NotNil(t, msg.ReplyTo)
		assert.Equal(t, Address{Email: "help@example.com", Name: "Support"}, *msg.ReplyTo)

		req.Data = Data{"reply_to_email": "  ", "reply_to_name": "Support"}
		msg, err = Compose(req, defaultFrom)
		require.NoError(t, err)
		assert.Nil(t, msg.ReplyTo)
	})
}

func TestCompose_Attachments(t *testing.T) {
	req := baseRequest()
	req.Attachments = []Attachment{
		{Filename: "logo.png", ContentType: "image/png", Content: "aGk=", Disposition: "inline", ID: "cid1"},
		{Filename: "invoice.pdf", ContentType: "application/pdf", Content: "cGRm", Disposition: "attachment", ID: "ignored"},
		{Filename: "notes.bin", Content: "Ymlu"},
	}

	msg, err := Compose(req, defaultFrom)
	require.NoError(t, err)

	require.Len(t, msg.Inline, 1)
	assert.Equal(t, "logo.png", msg.Inline[0].Filename)
	assert.Equal(t, "cid1", msg.Inline[0].ID)

	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "invoice.pdf", msg.Attachments[0].Filename)
	assert.Empty(t, msg.Attachments[0].ID)
	assert.Equal(t, "notes.bin", msg.Attachments[1].Filename)
	assert.Equal(t, DefaultContentType, msg.Attachments[1].ContentType)
}

func TestCompose_InlineAttachmentNeedsContentID(t *testing.T) {
	req := baseRequest()
	req.Attachments = []Attachment{{Filename: "logo.png", Content: "aGk=", Disposition: "inline"}}

	_, err := Compose(req, defaultFrom)
	v := requireValidation(t, err)
	assert.Contains(t, v.Message, "logo.png")
}
