package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GoogleClient: бесплатный веб-эндпоинт Google Translate (translate_a/single)
type GoogleClient struct {
	baseURL string
	httpCli *http.Client
}

func NewGoogleClient(baseURL string) *GoogleClient {
	return &GoogleClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: http.DefaultClient,
	}
}

// Translate: ровно один GET, дедлайн берётся из ctx
func (c *GoogleClient) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sourceCode)
	q.Set("tl", targetCode)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_a/single?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate failed: %s: %s", resp.Status, string(b))
	}

	var raw []any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	return parseSegments(raw)
}

// parseSegments собирает перевод из [[["Hola","Hello",...], ...], ...]
func parseSegments(raw []any) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("malformed reply: empty")
	}
	segments, ok := raw[0].([]any)
	if !ok || len(segments) == 0 {
		return "", fmt.Errorf("malformed reply: no segments")
	}

	var sb strings.Builder
	for i, s := range segments {
		seg, ok := s.([]any)
		if !ok || len(seg) == 0 {
			return "", fmt.Errorf("malformed reply: segment %d", i)
		}
		part, ok := seg[0].(string)
		if !ok {
			return "", fmt.Errorf("malformed reply: segment %d has no text", i)
		}
		sb.WriteString(part)
	}
	return sb.String(), nil
}
