package devserver

import (
	"context"
	"strings"
)

// Topic is the support area a message is routed to.
type Topic string

const (
	TopicOrder    Topic = "order"
	TopicDelivery Topic = "delivery"
	TopicPayment  Topic = "payment"
	TopicAccount  Topic = "account"
)

// Responder produces the reply text for one message. An empty reply makes
// the server fall back to a fixed apology.
type Responder interface {
	Respond(ctx context.Context, message, conversationID string) (string, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, message, conversationID string) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, message, conversationID string) (string, error) {
	return f(ctx, message, conversationID)
}

var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicDelivery, []string{"ship", "track", "deliver", "courier", "arrive"}},
	{TopicPayment, []string{"pay", "refund", "charge", "card", "bill", "invoice"}},
	{TopicAccount, []string{"login", "log in", "password", "account", "profile", "email"}},
	{TopicOrder, []string{"order", "return", "cancel", "exchange"}},
}

// Classify routes a message to a topic by keyword. Messages that match
// nothing go to TopicOrder.
func Classify(message string) Topic {
	lower := strings.ToLower(message)
	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				return tk.topic
			}
		}
	}
	return TopicOrder
}

var cannedReplies = map[Topic]string{
	TopicOrder:    "I can help with your order. Please share your order number and I will check its status, or start a return or cancellation.",
	TopicDelivery: "Deliveries usually arrive within 3-5 business days. Share your tracking number and I will look up the latest scan.",
	TopicPayment:  "For billing questions I need the last four digits of the card used. Refunds are returned to the original payment method within 5-7 days.",
	TopicAccount:  "You can reset your password from the sign-in page. If you still cannot log in, tell me the email on the account.",
}

// CannedResponder answers from a fixed reply per topic.
type CannedResponder struct{}

func (CannedResponder) Respond(_ context.Context, message, _ string) (string, error) {
	return cannedReplies[Classify(message)], nil
}
