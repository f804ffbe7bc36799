// Package reply turns lookup outcomes into customer-facing text, either
// directly (fast path) or as a system prompt for the completion model.
package reply

import (
	"fmt"
	"strings"
	"time"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/extract"
	"github.com/thundertactical/thunder-ai-backend/pkg/llm"
	"github.com/thundertactical/thunder-ai-backend/pkg/order"
)

// FallbackReply is returned when the model produces no usable text.
const FallbackReply = "I'm not sure how to answer that."

const (
	notConfiguredReply  = "Order lookup is not configured correctly."
	transportErrorReply = "I had trouble reaching the order system. Please try again in a moment."
	moreDetailsSuffix   = " If you need more details (items, totals, or tracking), please let me know."

	askForOrderNumber = "If the customer asks about an order but does NOT include an order number, " +
		"politely ask them to provide the order number so we can look it up."
)

// Composer renders replies for one storefront persona. Stateless after construction.
type Composer struct {
	storeName string
	persona   string
}

// NewComposer creates a composer from the assistant settings.
func NewComposer(cfg *config.AssistantConfig) *Composer {
	return &Composer{
		storeName: cfg.StoreName,
		persona:   cfg.Persona,
	}
}

// Render produces the fast-path reply for a lookup outcome.
func (c *Composer) Render(outcome order.Outcome, orderNumber string) string {
	switch o := outcome.(type) {
	case *order.Found:
		return renderFound(o.Record, orderNumber)
	case *order.NotFound:
		if orderNumber == "" && o.Email != "" {
			return fmt.Sprintf("I couldn't find an order for %s. Please double-check the email address.", o.Email)
		}
		return fmt.Sprintf("I couldn't find an order with the number %s. Please double-check the number.", orderNumber)
	case *order.NotConfigured:
		return notConfiguredReply
	case *order.TransportError:
		return transportErrorReply
	default:
		return FallbackReply
	}
}

func renderFound(r order.Record, orderNumber string) string {
	if orderNumber == "" {
		orderNumber = r.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found order #%s. Current status: %s.", orderNumber, r.Status)
	if r.HasDate() {
		fmt.Fprintf(&b, " It was created on %s.", FormatDate(r.DateCreated))
	}
	if r.PaymentStatus != "" {
		fmt.Fprintf(&b, " Payment status: %s.", r.PaymentStatus)
	}
	if r.ShippingStatus != "" {
		fmt.Fprintf(&b, " Shipping status: %s.", r.ShippingStatus)
	}
	if r.TrackingNumber != "" {
		fmt.Fprintf(&b, " Tracking number: %s.", r.TrackingNumber)
	}
	b.WriteString(moreDetailsSuffix)
	return b.String()
}

// SystemPrompt builds the slow-path instructions. A nil outcome means no
// lookup was attempted.
func (c *Composer) SystemPrompt(outcome order.Outcome, ids extract.Identifiers) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful %s store assistant.", c.storeName)
	if c.persona != "" {
		b.WriteString(" ")
		b.WriteString(c.persona)
	}

	switch o := outcome.(type) {
	case *order.Found:
		b.WriteString("\n\nThe customer's order was looked up in the store system. ")
		b.WriteString("Use these facts exactly as written and do not add order details that are not listed:\n")
		writeFacts(&b, o.Record, ids.OrderNumber)
	case *order.NotFound:
		b.WriteString("\n\nAn order lookup was attempted for ")
		b.WriteString(describeIdentifiers(ids))
		b.WriteString(" but no matching order was found. Do not invent order details. ")
		b.WriteString("Ask the customer to double-check the order number or share the email address used at checkout.")
	case *order.NotConfigured, *order.TransportError:
		b.WriteString("\n\nOrder lookup is currently unavailable. Do not guess or invent an order status. ")
		b.WriteString("Tell the customer you cannot check orders right now and suggest trying again shortly.")
	default:
		b.WriteString(" ")
		b.WriteString(askForOrderNumber)
	}
	return b.String()
}

func writeFacts(b *strings.Builder, r order.Record, orderNumber string) {
	if orderNumber == "" {
		orderNumber = r.ID
	}
	fmt.Fprintf(b, "- Order number: %s\n", orderNumber)
	fmt.Fprintf(b, "- Status: %s\n", r.Status)
	if r.HasDate() {
		fmt.Fprintf(b, "- Created: %s\n", FormatDate(r.DateCreated))
	}
	if r.PaymentStatus != "" {
		fmt.Fprintf(b, "- Payment status: %s\n", r.PaymentStatus)
	}
	if r.ShippingStatus != "" {
		fmt.Fprintf(b, "- Shipping status: %s\n", r.ShippingStatus)
	}
	if r.TrackingNumber != "" {
		fmt.Fprintf(b, "- Tracking number: %s\n", r.TrackingNumber)
	}
}

func describeIdentifiers(ids extract.Identifiers) string {
	switch {
	case ids.OrderNumber != "" && ids.Email != "":
		return fmt.Sprintf("order number %s (email %s)", ids.OrderNumber, ids.Email)
	case ids.OrderNumber != "":
		return "order number " + ids.OrderNumber
	default:
		return "email " + ids.Email
	}
}

// Messages assembles the two-message completion conversation.
func Messages(systemPrompt, userMessage string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}
}

// OrFallback returns text, or FallbackReply when text is blank.
func OrFallback(text string) string {
	if strings.TrimSpace(text) == "" {
		return FallbackReply
	}
	return text
}

// FormatDate renders t as a US short date, e.g. 1/2/2025.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
