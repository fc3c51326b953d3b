package devserver

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/linanwx/supportchat/logger"
)

const routerPrompt = `You read a customer message and decide which support expert should handle it.
Answer with ONE WORD ONLY, one of: order, delivery, payment, account.

- order: order status, cancellations, returns, modifications
- delivery: shipping, tracking, delivery times, lost packages
- payment: payment methods, billing, invoices, refunds
- account: login, password, profile and account settings`

var expertPrompts = map[Topic]string{
	TopicOrder: `You are the order support expert of an e-commerce shop.
You handle order status and tracking, cancellations and modifications, returns and refunds,
order history, product availability and bulk orders.
Answer clearly and briefly. If you need an order number or other details, ask for them politely.`,

	TopicDelivery: `You are the delivery and shipping expert of an e-commerce shop.
You handle shipping methods and delivery times, package tracking, delays, international
shipping, shipping costs, lost or damaged packages and address changes before delivery.
Answer clearly and briefly. If you need a tracking number or order details, ask for them politely.`,

	TopicPayment: `You are the payment support expert of an e-commerce shop.
You handle accepted payment methods, failed payments, billing questions and invoices,
refund timelines, payment security, currencies and promotional codes.
Answer clearly and briefly. If you need transaction details or an order number, ask for them politely.`,

	TopicAccount: `You are the account support expert of an e-commerce shop.
You handle sign-up and login problems, password resets, profile settings, email
verification, two-factor authentication and account deletion.
Answer clearly and briefly. If you need account details, ask for them politely.`,
}

const synthesizerPrompt = `You are a senior customer support agent. Rewrite the expert notes into a
friendly, professional reply to the customer.
- Briefly acknowledge the customer's situation.
- Answer the question using the expert notes.
- Keep it short and easy to understand.
- Suggest the next step when it helps.
Never show the expert notes section itself.`

// ParseTopic maps a router answer to a topic. Anything unrecognised is
// TopicOrder.
func ParseTopic(label string) Topic {
	word := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(word) > 0 {
		switch t := Topic(word[0]); t {
		case TopicOrder, TopicDelivery, TopicPayment, TopicAccount:
			return t
		}
	}
	return TopicOrder
}

// LLMResponder answers in three model calls: route the message to a topic,
// ask that topic's expert, then rewrite the expert answer for the customer.
type LLMResponder struct {
	llm Completer
}

// NewLLMResponder creates a responder backed by llm.
func NewLLMResponder(llm Completer) *LLMResponder {
	return &LLMResponder{llm: llm}
}

func (r *LLMResponder) Respond(ctx context.Context, message, conversationID string) (string, error) {
	label, err := r.llm.Complete(ctx, routerPrompt, message)
	if err != nil {
		return "", fmt.Errorf("route: %w", err)
	}
	topic := ParseTopic(label)
	logger.Info("message routed", "conversationId", conversationID, "topic", topic, "label", label)

	notes, err := r.llm.Complete(ctx, expertPrompts[topic], message)
	if err != nil {
		return "", fmt.Errorf("%s expert: %w", topic, err)
	}
	if strings.TrimSpace(notes) == "" {
		return "", nil
	}

	reply, err := r.llm.Complete(ctx, synthesizerPrompt, synthesizerInput(message, notes))
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	return reply, nil
}

func synthesizerInput(message, notes string) string {
	return "Customer question:\n" + message + "\n\nExpert notes (do not show to the customer):\n" + notes
}

// NewResponder returns an LLMResponder when opts carries an API key and
// CannedResponder otherwise.
func NewResponder(opts LLMOptions) (Responder, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return CannedResponder{}, nil
	}
	llm, err := NewCompleter(opts)
	if err != nil {
		return nil, err
	}
	return NewLLMResponder(llm), nil
}
