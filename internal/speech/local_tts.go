package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// голоса espeak-ng, где код отличается от кода реестра
var espeakVoices = map[string]string{
	"zh-cn": "cmn",
}

// EspeakClient: локальный движок, вызов блокирует до конца синтеза
type EspeakClient struct {
	binary string
}

func NewEspeakClient(binary string) *EspeakClient {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &EspeakClient{binary: binary}
}

func (c *EspeakClient) Ext() string { return "wav" }

func (c *EspeakClient) Synthesize(ctx context.Context, text, langCode, outPath string) error {
	voice := strings.ToLower(langCode)
	if v, ok := espeakVoices[voice]; ok {
		voice = v
	}

	// текст через stdin, чтобы он не попал в разбор флагов
	cmd := exec.CommandContext(ctx, c.binary, "-v", voice, "-w", outPath, "--stdin")
	cmd.Stdin = strings.NewReader(text)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("local tts timed out")
		}
		return fmt.Errorf("local tts failed: %w, output: %s", err, string(output))
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("local tts generated empty file")
	}
	return nil
}
