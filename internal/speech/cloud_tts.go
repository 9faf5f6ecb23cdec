package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// эндпоинт translate_tts не принимает больше ~100 символов за раз
const cloudChunkLimit = 100

// GoogleTTSClient: облачный синтез через translate_tts (как gTTS)
type GoogleTTSClient struct {
	baseURL string
	httpCli *http.Client
}

func NewGoogleTTSClient(baseURL string) *GoogleTTSClient {
	return &GoogleTTSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: http.DefaultClient,
	}
}

func (c *GoogleTTSClient) Ext() string { return "mp3" }

// TEXT → SPEECH
func (c *GoogleTTSClient) Synthesize(ctx context.Context, text, langCode, outPath string) error {
	chunks := splitText(text, cloudChunkLimit)
	if len(chunks) == 0 {
		return fmt.Errorf("nothing to speak")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	// mp3-кадры можно склеивать подряд
	for i, chunk := range chunks {
		if err := c.fetchChunk(ctx, out, chunk, langCode, i, len(chunks)); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

func (c *GoogleTTSClient) fetchChunk(ctx context.Context, w io.Writer, chunk, langCode string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", langCode)
	q.Set("q", chunk)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tts failed: %s: %s", resp.Status, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tts returned empty audio")
	}
	return nil
}

// splitText режет текст на куски не длиннее limit рун, по пробелам где можно
func splitText(text string, limit int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		s := strings.TrimSpace(string(cur))
		if s != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)

		// слово длиннее лимита режем жёстко
		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}
		if len(w) == 0 {
			continue
		}

		extra := len(w)
		if len(cur) > 0 {
			extra++
		}
		if len(cur)+extra > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()

	return chunks
}
