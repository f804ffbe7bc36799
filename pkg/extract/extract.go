// Package extract finds order identifiers in free-form chat text.
package extract

import (
	"regexp"
	"strings"
)

var (
	// orderNumberPattern matches a standalone run of 5 to 10 digits. Longer runs
	// have no word boundary inside them and therefore never match.
	orderNumberPattern = regexp.MustCompile(`\b\d{5,10}\b`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Identifiers holds what was found in a message. Both fields are optional.
type Identifiers struct {
	OrderNumber string
	Email       string
}

// Empty reports whether neither identifier was found.
func (i Identifiers) Empty() bool {
	return i.OrderNumber == "" && i.Email == ""
}

// Extract returns the first order number and the first email address in message.
// A six-digit phone fragment is indistinguishable from an order number here.
func Extract(message string) Identifiers {
	return Identifiers{
		OrderNumber: orderNumberPattern.FindString(message),
		Email:       findEmail(message),
	}
}

func findEmail(message string) string {
	match := emailPattern.FindString(message)
	if match == "" {
		return ""
	}
	// The local-part class admits punctuation that commonly precedes an address
	// in prose ("...me@x.com", "-me@x.com").
	email := strings.TrimLeft(match, "._%+-")
	if strings.HasPrefix(email, "@") {
		return ""
	}
	return email
}
