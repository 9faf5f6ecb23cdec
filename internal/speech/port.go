package speech

import "context"

// Engine: конкретный движок синтеза, пишет аудио в outPath
type Engine interface {
	Synthesize(ctx context.Context, text, langCode, outPath string) error
	Ext() string
}
