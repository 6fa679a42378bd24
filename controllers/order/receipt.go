package orderControllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jabney/pizza-api/models"
	"github.com/jabney/pizza-api/services"
)

const receiptWidth = 40

// buildReceipt renders the plain-text body of the order confirmation email.
func buildReceipt(summary []models.SummaryItem, total float64, user *models.User, card services.CardInfo) string {
	var b strings.Builder

	b.WriteString(center("Big Bear's Pizza") + "\n")
	b.WriteString(center("Thanks for your order!") + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", user.FirstName, user.LastName))
	if addr := user.Address; addr != nil {
		b.WriteString(addr.Line1 + "\n")
		if addr.Line2 != "" {
			b.WriteString(addr.Line2 + "\n")
		}
		b.WriteString(fmt.Sprintf("%s, %s %s\n", addr.City, addr.State, addr.Zip))
	}
	b.WriteString("\n")

	for _, item := range summary {
		name := item.Name
		if item.Size != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Size)
		}
		b.WriteString(line(name, item.Price))
		for _, add := range item.Add {
			b.WriteString(line("  With: "+add.Name, add.Price))
		}
	}

	b.WriteString(strings.Repeat("-", receiptWidth) + "\n")
	b.WriteString(line("Total", total))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Charged to card ending in %s\n", lastFour(card.Number)))

	return b.String()
}

func line(label string, amount float64) string {
	price := fmt.Sprintf("%.2f", amount)
	pad := receiptWidth - len(label) - len(price)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + price + "\n"
}

func center(s string) string {
	pad := (receiptWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func lastFour(number int64) string {
	digits := strconv.FormatInt(number, 10)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
