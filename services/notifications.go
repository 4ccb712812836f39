package services

import (
	"fmt"
	"strings"

	"fashionstore/mailer"
	"fashionstore/models"
)

func orderRef(o *models.Order) string {
	hex := o.ID.Hex()
	return strings.ToUpper(hex[len(hex)-8:])
}

func writeSummary(b *strings.Builder, o *models.Order) {
	b.WriteString("Items:\n")
	for _, it := range o.OrderItems {
		line := fmt.Sprintf("  - %s x%d", it.Name, it.Quantity)
		if it.Size != "" {
			line += ", size " + it.Size
		}
		if it.Color != "" {
			line += ", " + it.Color
		}
		fmt.Fprintf(b, "%s  %.2f TND\n", line, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(b, "Total: %.2f TND (%s)\n", o.TotalPrice, o.PaymentMethod)

	a := o.ShippingAddress
	fmt.Fprintf(b, "\nShipping to:\n  %s\n  %s %s\n  %s\n", a.Street, a.PostalCode, a.City, a.Country)
}

func confirmationMessage(o *models.Order) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour order #%s has been confirmed and is being prepared.\n\n", o.CustomerName, orderRef(o))
	writeSummary(&b, o)
	b.WriteString("\nPayment is collected on delivery. Thank you for shopping with us.\n")
	return mailer.Message{
		To:      o.CustomerEmail,
		Subject: "Your order #" + orderRef(o) + " is confirmed",
		Body:    b.String(),
	}
}

func cancellationMessage(o *models.Order) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour order #%s has been cancelled. Nothing will be charged.\n\n", o.CustomerName, orderRef(o))
	writeSummary(&b, o)
	b.WriteString("\nIf this was unexpected, reply to this email and we will look into it.\n")
	return mailer.Message{
		To:      o.CustomerEmail,
		Subject: "Your order #" + orderRef(o) + " was cancelled",
		Body:    b.String(),
	}
}

func shipmentMessage(o *models.Order) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nGood news, your order #%s is on its way.\n\n", o.CustomerName, orderRef(o))
	writeSummary(&b, o)
	return mailer.Message{
		To:      o.CustomerEmail,
		Subject: "Your order #" + orderRef(o) + " has shipped",
		Body:    b.String(),
	}
}

func deliveryMessage(o *models.Order) mailer.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour order #%s has been delivered. We hope you love it.\n", o.CustomerName, orderRef(o))
	return mailer.Message{
		To:      o.CustomerEmail,
		Subject: "Your order #" + orderRef(o) + " was delivered",
		Body:    b.String(),
	}
}
