package extractor

import "time"

// PriceRecord is the outcome of one price check for one tracked item.
// Either Price is set with Success=true, or Success=false with a nil Price
// and the raw model output kept for diagnostics. Never mutated after creation.
type PriceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Price     *float64  `json:"price"`
	RawText   string    `json:"raw_text,omitempty"`
	Success   bool      `json:"success"`
}

// OutcomeKind tags the parser result.
type OutcomeKind int

const (
	// OutcomeParsed means a valid price was extracted
	OutcomeParsed OutcomeKind = iota
	// OutcomeNotFound means the model reported no visible price
	OutcomeNotFound
	// OutcomeMalformed means the response matched neither the price
	// grammar nor the not-found sentinel
	OutcomeMalformed
)

// Outcome is the tagged result of parsing one model response. The parser
// produces exactly one variant deterministically from its input.
type Outcome struct {
	Kind  OutcomeKind
	Price float64
	Raw   string
}

// Record converts the outcome into a PriceRecord stamped with now.
func (o Outcome) Record(now time.Time) PriceRecord {
	if o.Kind == OutcomeParsed {
		price := o.Price
		return PriceRecord{Timestamp: now, Price: &price, Success: true}
	}
	return PriceRecord{Timestamp: now, RawText: o.Raw, Success: false}
}

// FailedRecord builds a success=false record carrying a diagnostic reason,
// used when the extraction call itself errored.
func FailedRecord(now time.Time, reason string) PriceRecord {
	return PriceRecord{Timestamp: now, RawText: reason, Success: false}
}
