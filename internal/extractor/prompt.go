package extractor

import (
	"strings"

	"sjsage522/shoetracker/config"
	"sjsage522/shoetracker/helpers"
)

const truncationMarker = "\n\n[Content truncated due to length...]"

// NotFoundSentinel is the exact marker the model is instructed to return
// when no price is visible for the product.
const NotFoundSentinel = "NOT_FOUND"

// BuildPrompt assembles the extraction prompt for one tracked item. The
// contract asks the model for exactly one line, either "PRICE: <number>"
// or the not-found sentinel, so the parser has a fixed grammar to work
// against. Page content is truncated to maxContentChars.
func BuildPrompt(itemName, content, locale string, maxContentChars int) string {
	var sb strings.Builder

	sb.WriteString("You are analyzing HTML/text content from an e-commerce product page.\n")
	sb.WriteString("Find the current displayed selling price of this product: ")
	sb.WriteString(itemName)
	sb.WriteString("\n\n")

	sb.WriteString("Rules:\n")
	sb.WriteString("1. Look for the current selling price, not crossed-out or 'before' prices\n")
	sb.WriteString("2. Remove all currency symbols ($, AR$, US$, etc)\n")
	if locale == config.LocaleEU {
		sb.WriteString("3. Prices may use periods as thousands separators: \"99.999\" means 99999, not 99.99\n")
		sb.WriteString("4. If the price uses a comma as decimal separator (e.g. \"99,99\"), write it as 99.99\n")
	} else {
		sb.WriteString("3. Prices may use commas as thousands separators: \"1,234.50\" means 1234.50\n")
		sb.WriteString("4. Keep the period as the decimal separator\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Respond with EXACTLY ONE line and nothing else:\n")
	sb.WriteString("PRICE: <number>\n")
	sb.WriteString("or, if no price for this product is visible:\n")
	sb.WriteString(NotFoundSentinel)
	sb.WriteString("\n\nNo markdown, no code blocks, no explanation.\n")

	sb.WriteString("\nPage content:\n")
	sb.WriteString(helpers.TruncateWithMarker(content, maxContentChars, truncationMarker))
	sb.WriteString("\n")

	return sb.String()
}
