package notification

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Data is the free-form bag of template values carried by a Request.
// Consumers read it through typed views (Hints, CustomerRegisteredData)
// instead of poking at keys; unknown keys are ignored.
type Data map[string]any

// Decode fills out, a pointer to a struct tagged with `mapstructure`, from
// the bag. Keys match tag names exactly; a value whose type does not fit a
// string field reads as absent.
func (d Data) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(lenientStrings),
		MatchName:  exactName,
		Result:     out,
	})
	if err != nil {
		return fmt.Errorf("creating data decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(d)); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}

func exactName(mapKey, fieldName string) bool {
	return mapKey == fieldName
}

func lenientStrings(from, to reflect.Type, data any) (any, error) {
	if to.Kind() == reflect.String && from.Kind() != reflect.String {
		return "", nil
	}
	return data, nil
}

// Hints are the data entries an email provider reads besides the content.
type Hints struct {
	Subject      string `mapstructure:"subject"`
	Text         string `mapstructure:"text"`
	ToName       string `mapstructure:"to_name"`
	ReplyToEmail string `mapstructure:"reply_to_email"`
	ReplyToName  string `mapstructure:"reply_to_name"`
}

// CustomerRegisteredData is the input of the customer_registered template.
type CustomerRegisteredData struct {
	CustomerID  string  `mapstructure:"customer_id"`
	Email       string  `mapstructure:"email"`
	FirstName   *string `mapstructure:"first_name"`
	LastName    *string `mapstructure:"last_name"`
	ToName      string  `mapstructure:"to_name"`
	PreviewText string  `mapstructure:"preview_text"`
	Intro       string  `mapstructure:"intro"`
	Body        string  `mapstructure:"body"`
	Signature   string  `mapstructure:"signature"`
	Subject     string  `mapstructure:"subject"`
}

// Data converts the template input back into a bag for a Request.
// Optional overrides are only set when present.
func (c CustomerRegisteredData) Data() Data {
	d := Data{
		"customer_id": c.CustomerID,
		"email":       c.Email,
		"first_name":  derefOrNil(c.FirstName),
		"last_name":   derefOrNil(c.LastName),
		"to_name":     c.ToName,
	}
	optional := map[string]string{
		"preview_text": c.PreviewText,
		"intro":        c.Intro,
		"body":         c.Body,
		"signature":    c.Signature,
		"subject":      c.Subject,
	}
	for key, value := range optional {
		if value != "" {
			d[key] = value
		}
	}
	return d
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
