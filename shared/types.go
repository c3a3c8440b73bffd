package shared

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// Locale is a BCP 47 language tag such as "en-US" or "pt-PT".
type Locale string

const (
	EnUS Locale = "en-US"
	EnGB Locale = "en-GB"
	PtPT Locale = "pt-PT"
	DeDE Locale = "de-DE"
)
