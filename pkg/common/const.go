package common

// Cache data types. Keys are "<SYMBOL>_<data type>".
const (
	DataTypeQuote        = "quote"
	DataTypeFundamentals = "fundamentals"
	DataTypeHistory      = "history"
	DataTypeOptions      = "options"
	DataTypeSentiment    = "sentiment"
)

const (
	KEY_CACHE_DATA   = "%s_%s"
	KEY_CACHE_PERIOD = "%s_%s_%s"
	KEY_YAHOO_CRUMB  = "yahoo_crumb"
)
