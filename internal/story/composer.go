package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verdantworks/soilstory/pkg/types"
)

// DefaultTitle is used when generated content carries no heading line
const DefaultTitle = "The Story of Your Soil"

// Composer builds the story prompt and dispatches it to the configured
// text provider. When no provider is configured, the provider call fails,
// or the response body is empty, it falls through to a deterministic
// template so the caller always receives a story.
type Composer struct {
	logger   zerolog.Logger
	provider Provider // may be nil when no provider is configured
}

// NewComposer creates a composer over an optional text provider
func NewComposer(logger zerolog.Logger, provider Provider) *Composer {
	return &Composer{
		logger:   logger.With().Str("component", "story-composer").Logger(),
		provider: provider,
	}
}

// Compose returns story text for the analysis. It never fails: the
// deterministic fallback is always available.
func (c *Composer) Compose(ctx context.Context, analysis types.AnalysisResult, weather *types.WeatherSnapshot, location *types.Location) string {
	if c.provider != nil && c.provider.IsEnabled() {
		prompt := BuildPrompt(analysis, weather, location)
		content, err := c.provider.GenerateStory(ctx, prompt)
		if err != nil {
			c.logger.Warn().Err(err).Str("provider", c.provider.Name()).Msg("story generation failed, using template fallback")
		} else if strings.TrimSpace(content) == "" {
			c.logger.Warn().Str("provider", c.provider.Name()).Msg("story generation returned empty body, using template fallback")
		} else {
			return strings.TrimSpace(content)
		}
	}

	return FallbackStory(analysis, weather)
}

// FallbackStory is the deterministic templated story: a pure function of
// (analysis, weather). It greets the user, restates every available
// analysis value by name, appends the weather clause when present and
// closes with a fixed set of actionable tips.
func FallbackStory(analysis types.AnalysisResult, weather *types.WeatherSnapshot) string {
	ph := valueOrUnknown(analysis, "pH")
	moisture := valueOrUnknown(analysis, "moisture")
	om := valueOrUnknown(analysis, "OM")
	p := valueOrUnknown(analysis, "P")
	ec := valueOrUnknown(analysis, "EC")

	weatherLine := ""
	if weather != nil {
		weatherLine = fmt.Sprintf("Current weather: %s°C, %s with humidity %s%%. ",
			formatValue(weather.TempC), weather.Description, formatValue(weather.Humidity))
	}

	return fmt.Sprintf(
		"Hello there, fellow gardener! I've analyzed your soil sample and here's what I discovered about your garden's foundation.\n\n"+
			"Your soil shows pH %s, moisture %s, organic matter %s, phosphorus %s, and electrical conductivity %s. %s\n\n"+
			"To improve your soil health, I recommend watering early in the morning, adding compost to boost organic matter, and adjusting pH with lime (for acidic) or sulfur (for alkaline) as needed. "+
			"Mulch 5-7 cm to retain moisture and protect beneficial microbes. Check a small area weekly and re-test pH in 4-6 weeks.\n\n"+
			"You're on the right track to creating a thriving garden! Keep observing and learning from your soil - it's the foundation of everything beautiful that will grow.",
		ph, moisture, om, p, ec, weatherLine,
	)
}

// ExtractTitle derives a persistence title from generated content: a first
// line starting with a heading marker becomes the title, marker stripped
// and trimmed. The deterministic fallback opens with a fixed greeting, so
// it always yields DefaultTitle.
func ExtractTitle(content string) string {
	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.HasPrefix(firstLine, "#") {
		if title := strings.TrimSpace(strings.TrimLeft(firstLine, "#")); title != "" {
			return title
		}
	}
	return DefaultTitle
}
