package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatAmount groups thousands the Indonesian way, e.g. 1500000 as "1.500.000".
func FormatAmount(amount int64) string {
	return rupiahPrinter.Sprintf("%d", amount)
}

func FormatRupiah(amount int64) string {
	return "Rp " + FormatAmount(amount)
}
