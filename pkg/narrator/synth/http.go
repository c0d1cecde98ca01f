package synth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/emotion"
)

// ----------------------------------------------------------------------
// HTTP バックエンド (piper HTTP サーバー互換)
// ----------------------------------------------------------------------

// HTTPEngine はHTTPサーバーとして動作する合成エンジンへリクエストを送る
// Synthesizer 実装です。httpkit.Client を利用してリトライ機能を内包します。
//
// サーバーはテキストをボディで受け取り、WAV形式の音声を返すことを
// 前提とします。応答のWAVはデコードして生PCMクリップへ変換するため、
// アセンブラへの入力はプロセスバックエンドと同じ固定フォーマットになります。
type HTTPEngine struct {
	client *httpkit.Client // リトライ機能付きHTTPクライアント
	apiURL string
}

// NewHTTPEngine は新しい HTTPEngine インスタンスを初期化します。
func NewHTTPEngine(apiURL string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		client: httpkit.New(timeout),
		apiURL: apiURL,
	}
}

// buildURL はベースURLに合成パラメータのクエリを付与します。
func (h *HTTPEngine) buildURL(profile emotion.Profile) (string, error) {
	u, err := url.Parse(h.apiURL)
	if err != nil {
		return "", fmt.Errorf("API URLのパース失敗: %w", err)
	}

	q := u.Query()
	q.Set("length_scale", formatScale(profile.LengthScale))
	q.Set("noise_scale", formatScale(profile.NoiseScale))
	q.Set("noise_w", formatScale(profile.NoiseW))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Synthesize はテキストをサーバーへ送信し、応答のWAVをデコードして返します。
// 空テキストはリクエストを送らず、空のクリップを返します。
func (h *HTTPEngine) Synthesize(ctx context.Context, text string, profile emotion.Profile) (audio.Clip, error) {
	if strings.TrimSpace(text) == "" {
		return audio.NewClip(nil), nil
	}

	endpoint, err := h.buildURL(profile)
	if err != nil {
		return audio.Clip{}, &ErrSynthesis{Backend: "http", WrappedErr: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(text))
	if err != nil {
		return audio.Clip{}, &ErrSynthesis{Backend: "http", WrappedErr: fmt.Errorf("リクエスト構築失敗: %w", err)}
	}

	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "audio/wav")

	// h.client.DoRequest() がリトライ、ステータスチェック、ボディ読み取りを処理
	wavData, err := h.client.DoRequest(req)
	if err != nil {
		return audio.Clip{}, &ErrSynthesis{Backend: "http", WrappedErr: err}
	}

	clip, err := audio.DecodeWAV(wavData)
	if err != nil {
		return audio.Clip{}, &ErrSynthesis{Backend: "http", Details: "応答WAVのデコード", WrappedErr: err}
	}

	// アセンブラへの入力を均一に保つため、固定フォーマット以外は受け付けない
	if clip.SampleRate != audio.DefaultSampleRate ||
		clip.Channels != audio.DefaultChannels ||
		clip.BitDepth != audio.DefaultBitDepth {
		return audio.Clip{}, &ErrSynthesis{
			Backend: "http",
			Details: fmt.Sprintf("応答の音声フォーマットが不正です (%dHz/%dch/%dbit)",
				clip.SampleRate, clip.Channels, clip.BitDepth),
			WrappedErr: errUnexpectedFormat,
		}
	}

	return clip, nil
}
