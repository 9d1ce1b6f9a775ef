package extraction

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// progress logs completion roughly every 10% of total. Totals below 10 are
// not reported.
type progress struct {
	total  int64
	step   int64
	done   atomic.Int64
	logger *zap.Logger
	source string
}

func newProgress(total int, source string, logger *zap.Logger) *progress {
	p := &progress{total: int64(total), logger: logger, source: source}
	if total >= 10 {
		// Round up so no total logs more than ten times.
		p.step = (p.total + 9) / 10
	}
	return p
}

// inc records one finished entry and returns the new count.
func (p *progress) inc() int64 {
	n := p.done.Add(1)
	if p.step > 0 && n%p.step == 0 {
		p.logger.Info("extraction progress",
			zap.String("source", p.source),
			zap.Int64("done", n),
			zap.Int64("total", p.total),
			zap.Int64("percent", n*100/p.total))
	}
	return n
}
