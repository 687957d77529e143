package template

import "strings"

// OrderPlacedDoc is the order confirmation email.
type OrderPlacedDoc struct {
	Preview string
	Heading string
	Lines   []string
}

// OrderPlaced returns the order confirmation document. Its content is fixed.
func OrderPlaced() OrderPlacedDoc {
	return OrderPlacedDoc{
		Preview: "Your order is confirmed",
		Heading: "Thanks for your order!",
		Lines: []string{
			"Order #12345 has been confirmed.",
			"Total: $59.99",
		},
	}
}

// OrderPlacedSubject returns the localized subject. ok is false for
// locales without a translation.
func OrderPlacedSubject(locale string) (subject string, ok bool) {
	switch locale {
	case "zh":
		return "订单确认", true
	case "en":
		return "Order Confirmation", true
	}
	return "", false
}

// PlainText renders the document as a text part.
func (doc OrderPlacedDoc) PlainText() string {
	return doc.Heading + "\n\n" + strings.Join(doc.Lines, "\n")
}
