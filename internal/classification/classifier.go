package classification

import (
	"strings"

	"go.uber.org/zap"
)

type registration struct {
	typ     EventType
	matcher EventMatcher
}

// Classifier resolves a (gene, event) pair to exactly one EventType.
type Classifier struct {
	matchers []registration
	logger   *zap.Logger
}

// New creates a Classifier with the standard matcher set built from cfg.
func New(cfg Config) *Classifier {
	c := &Classifier{logger: zap.NewNop()}
	conf := &cfg
	c.Register(Hotspot, HotspotMatcher(conf))
	c.Register(Codon, CodonMatcher(conf))
	c.Register(Exon, ExonMatcher(conf))
	c.Register(FusionPairAndExon, FusionPairAndExonMatcher(conf))
	c.Register(GeneLevel, GeneLevelMatcher(conf))
	c.Register(Amplification, AmplificationMatcher(conf))
	c.Register(OverExpression, OverExpressionMatcher(conf))
	c.Register(Deletion, DeletionMatcher(conf))
	c.Register(UnderExpression, UnderExpressionMatcher(conf))
	c.Register(FusionPair, FusionPairMatcher(conf))
	c.Register(PromiscuousFusion, PromiscuousFusionMatcher(conf))
	c.Register(Characteristic, CharacteristicMatcher(conf))
	c.Register(WildType, WildTypeMatcher(conf))
	c.Register(ImmunoHLA, ImmunoHLAMatcher(conf))
	c.Register(Complex, ComplexMatcher(conf))
	return c
}

// Register adds a matcher for typ. Registering a type twice keeps both
// matchers; either firing counts as a single match for typ.
func (c *Classifier) Register(typ EventType, m EventMatcher) {
	c.matchers = append(c.matchers, registration{typ: typ, matcher: m})
}

// SetLogger sets the logger for ambiguity and unrecognized-event messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Matches returns every type whose matcher fires, in registration order.
func (c *Classifier) Matches(gene, event string) []EventType {
	var types []EventType
	for _, r := range c.matchers {
		if !r.matcher.Matches(gene, event) {
			continue
		}
		if len(types) > 0 && containsType(types, r.typ) {
			continue
		}
		types = append(types, r.typ)
	}
	return types
}

// Classify returns the single matching type, or Unknown when no matcher or
// more than one matcher fires.
func (c *Classifier) Classify(gene, event string) EventType {
	if strings.TrimSpace(event) == "" {
		c.logger.Debug("empty event", zap.String("gene", gene))
		return Unknown
	}
	types := c.Matches(gene, event)
	switch len(types) {
	case 1:
		return types[0]
	case 0:
		c.logger.Debug("unrecognized event",
			zap.String("gene", gene),
			zap.String("event", event))
	default:
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		c.logger.Warn("ambiguous event classification",
			zap.String("gene", gene),
			zap.String("event", event),
			zap.Strings("types", names))
	}
	return Unknown
}

func containsType(types []EventType, t EventType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
