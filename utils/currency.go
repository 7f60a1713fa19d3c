package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frPrinter = message.NewPrinter(language.French)

// FormatCents renders integer minor-currency-units as a locale-aware
// euro amount with a net/brut suffix, e.g. 5000 -> "50,00 € (net)".
func FormatCents(cents int, isNet bool) string {
	amount := frPrinter.Sprintf("%.2f", float64(cents)/100)
	suffix := "(net)"
	if !isNet {
		suffix = "(brut)"
	}
	return amount + " € " + suffix
}
