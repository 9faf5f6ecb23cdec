package ports

import "context"

// Базовый (бесплатный) переводчик, работает с кодами языков
type BasicTranslator interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}

// AI-переводчик, работает с человеческими названиями языков.
// credential живёт только на время вызова.
type AITranslator interface {
	Translate(ctx context.Context, text, sourceName, targetName, credential string) (string, error)
}
