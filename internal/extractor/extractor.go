// Package extractor turns raw page content into structured price records by
// prompting a Gemini model and parsing its free-text answer through a fixed
// grammar. This is the defensive core of the tracker: model output is
// non-deterministic text and every malformed shape must degrade to a
// success=false record instead of failing the run.
package extractor

import (
	"context"
	"strings"
	"time"

	"sjsage522/shoetracker/logger"
)

// TextGenerator is the AI backend contract. Satisfied by *gemini.Client.
type TextGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// Extractor sends page content to the model and parses the response.
type Extractor struct {
	gen             TextGenerator
	model           string
	locale          string
	maxContentChars int
	log             *logger.Logger
	now             func() time.Time
}

// New creates an Extractor using the given backend and model identifier.
func New(gen TextGenerator, model, locale string, maxContentChars int) *Extractor {
	return &Extractor{
		gen:             gen,
		model:           model,
		locale:          locale,
		maxContentChars: maxContentChars,
		log:             logger.ForExtractor(),
		now:             time.Now,
	}
}

// Extract asks the model for the price of itemName within content and
// returns the resulting record. Transport and quota errors are retried
// once, then degrade to a failed record; this method never returns an
// error because no extraction problem is fatal to the run.
func (e *Extractor) Extract(ctx context.Context, itemName, content string) PriceRecord {
	prompt := BuildPrompt(itemName, content, e.locale, e.maxContentChars)

	response, err := e.gen.GenerateContent(ctx, e.model, prompt)
	if err != nil {
		e.log.Warn().Err(err).Str("item", itemName).Msg("Model call failed, retrying once")
		response, err = e.gen.GenerateContent(ctx, e.model, prompt)
	}
	if err != nil {
		e.log.Error().Err(err).Str("item", itemName).Msg("Model call failed")
		return FailedRecord(e.now(), "model call failed: "+err.Error())
	}

	outcome := ParseResponse(response, e.locale)
	switch outcome.Kind {
	case OutcomeParsed:
		e.log.Debug().Str("item", itemName).Float64("price", outcome.Price).Msg("Price extracted")
	case OutcomeNotFound:
		e.log.Info().Str("item", itemName).Msg("Model reported no visible price")
	case OutcomeMalformed:
		e.log.Warn().Str("item", itemName).Str("raw", outcome.Raw).Msg("Unparseable model response")
	}
	return outcome.Record(e.now())
}

// ParseResponse maps one model response to exactly one Outcome:
//  1. markdown code fences are stripped (models wrap answers despite
//     instructions)
//  2. the not-found sentinel, with or without the PRICE: prefix and in any
//     case, yields NotFound
//  3. a "PRICE: <value>" line is parsed through the price grammar
//  4. otherwise the first price-shaped token is taken, preferring tokens
//     adjacent to a currency marker
//
// Anything else is Malformed with the raw response preserved.
func ParseResponse(response, locale string) Outcome {
	raw := response
	text := stripCodeFences(strings.TrimSpace(response))

	upper := strings.ToUpper(text)
	if strings.Contains(upper, NotFoundSentinel) || strings.Contains(upper, "NOT FOUND") {
		return Outcome{Kind: OutcomeNotFound, Raw: raw}
	}

	if len(text) >= 6 && strings.EqualFold(text[:6], "PRICE:") {
		value := strings.TrimSpace(text[6:])
		if price, err := ParsePriceToken(firstLine(value), locale); err == nil {
			return Outcome{Kind: OutcomeParsed, Price: price}
		}
		return Outcome{Kind: OutcomeMalformed, Raw: raw}
	}

	if token, ok := ExtractPriceCandidate(text); ok {
		if price, err := ParsePriceToken(token, locale); err == nil {
			return Outcome{Kind: OutcomeParsed, Price: price}
		}
	}
	return Outcome{Kind: OutcomeMalformed, Raw: raw}
}

// stripCodeFences removes surrounding markdown code fences if present
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// firstLine returns s up to the first newline
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
