package notifier

import (
	"fmt"
	"html"
	"strings"

	"sjsage522/shoetracker/internal/policy"
)

// Subject builds the alert email subject line
func Subject(alerts []policy.AlertEvent) string {
	return fmt.Sprintf("Shoe Price Alert: %d product(s) below threshold", len(alerts))
}

// TextBody builds the plain-text summary of all alerts
func TextBody(alerts []policy.AlertEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Shoe price alert: %d product(s) below threshold.\n\n", len(alerts))
	for i, a := range alerts {
		fmt.Fprintf(&sb, "#%d: %s\n", i+1, a.ItemName)
		fmt.Fprintf(&sb, "Price: $%.2f\n", a.Price)
		fmt.Fprintf(&sb, "Save: $%.2f (threshold: $%.2f)\n", a.Savings(), a.Threshold)
		fmt.Fprintf(&sb, "URL: %s\n\n", a.URL)
	}
	return sb.String()
}

// HTMLBody builds the HTML summary of all alerts
func HTMLBody(alerts []policy.AlertEvent) string {
	var sb strings.Builder
	sb.WriteString(`<html><head><style>
body { font-family: Arial, sans-serif; }
.header { background-color: #f44336; color: white; padding: 20px; }
.product { border: 1px solid #ddd; margin: 10px 0; padding: 15px; }
.price { font-size: 24px; font-weight: bold; color: #4CAF50; }
.savings { color: #ff5722; }
</style></head><body>`)
	fmt.Fprintf(&sb, `<div class="header"><h1>Shoe Price Alert</h1><p>Found %d product(s) below your threshold</p></div>`, len(alerts))
	sb.WriteString(`<div style="padding: 20px;">`)
	for i, a := range alerts {
		fmt.Fprintf(&sb, `<div class="product"><h2>#%d: %s</h2>`, i+1, html.EscapeString(a.ItemName))
		fmt.Fprintf(&sb, `<p class="price">Price: $%.2f</p>`, a.Price)
		fmt.Fprintf(&sb, `<p class="savings">Save: $%.2f (Threshold: $%.2f)</p>`, a.Savings(), a.Threshold)
		fmt.Fprintf(&sb, `<p><a href="%s">View Product</a></p></div>`, html.EscapeString(a.URL))
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}
