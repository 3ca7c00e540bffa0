package router

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"food-assistant/internal/models"
)

const orderDateLayout = "2 Jan 2006, 3:04 PM"

const orderingHelpText = `Here's how to place an order:
1. Browse the menu and tap "Add to cart" on the items you want.
2. Open your cart and review the quantities.
3. Proceed to checkout and enter your delivery address.
4. Choose a payment method and confirm your order.
5. Ask me "track my order" any time to follow it.`

const greetingHints = `You can ask me about:
• Menu
• Delivery time
• Track my order`

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price as whole rupees with thousands grouping,
// e.g. "Rs 1,250".
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("Rs %d", int64(math.Round(price)))
}

func formatItem(item models.MenuItem) string {
	return fmt.Sprintf("• %s - %s", item.Name, FormatPrice(item.Price))
}

func formatItems(items []models.MenuItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, formatItem(item))
	}
	return strings.Join(lines, "\n")
}

// formatLimited lists at most limit items and summarises the rest.
func formatLimited(items []models.MenuItem, limit int) string {
	if len(items) <= limit {
		return formatItems(items)
	}
	return fmt.Sprintf("%s\n...and %d more", formatItems(items[:limit]), len(items)-limit)
}

func formatGroups(groups []models.CategoryGroup) string {
	blocks := make([]string, 0, len(groups))
	for _, g := range groups {
		blocks = append(blocks, fmt.Sprintf("*%s*\n%s", g.Category, formatItems(g.Items)))
	}
	return strings.Join(blocks, "\n\n")
}

func formatOrder(o models.OrderSummary) string {
	payment := "Pending ❌"
	if o.Payment {
		payment = "Paid ✅"
	}

	items := "-"
	if len(o.Items) > 0 {
		parts := make([]string, 0, len(o.Items))
		for _, line := range o.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", line.Name, line.Quantity))
		}
		items = strings.Join(parts, ", ")
	}

	address := strings.TrimSpace(o.Address)
	if address == "" {
		address = "-"
	}

	date := "-"
	if !o.Date.IsZero() {
		date = o.Date.Format(orderDateLayout)
	}

	return strings.Join([]string{
		"📦 Order ID: " + o.ID,
		"Status: " + o.Status,
		"Payment: " + payment,
		"Amount: " + FormatPrice(o.Amount),
		"Items: " + items,
		"Address: " + address,
		"Date: " + date,
	}, "\n")
}

func greetingText(msg, region, restaurant string) string {
	var opener string
	switch {
	case islamicGreeting.MatchString(msg):
		opener = "Wa Alaikum Assalam! 👋 Welcome to " + restaurant + "."
	case howAreYou.MatchString(msg):
		opener = "I'm doing great, thanks for asking! 😊 How can I help you today?"
	default:
		opener = "Hello! 👋 Welcome to " + restaurant + ". How can I help you today?"
	}
	area := fmt.Sprintf("🚚 We deliver across %s.", region)
	return opener + "\n\n" + area + "\n\n" + greetingHints
}
