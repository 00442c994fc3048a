// Package weather は外部天気APIのクライアントを提供する。
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// dateFormat は天気APIが返す日付の形式（月-日）。
const dateFormat = "01-02"

// weatherEntry は天気APIのレスポンス1件を表す。
type weatherEntry struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

// Client は天気APIのクライアント。
// 日付と天気の一覧を返すエンドポイントから今日の天気を取得する。
type Client struct {
	httpClient *http.Client
	endpoint   string
	now        func() time.Time // テスト用に差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		now:        time.Now,
	}
}

// GetTodayWeather は今日の天気を取得する。
// APIの呼び出し失敗、または今日の日付に対応するデータがない場合は
// WEATHER_UNAVAILABLEエラーを返す。呼び出し側（タスク作成フロー）は
// このエラーをそのまま伝搬する。
func (c *Client) GetTodayWeather(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("weather API call failed",
			slog.String("error", err.Error()),
		)
		return "", model.NewWeatherUnavailableError("APIへの接続に失敗しました")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("weather API returned error status",
			slog.Int("http_status", resp.StatusCode),
		)
		return "", model.NewWeatherUnavailableError(fmt.Sprintf("APIがステータス %d を返しました", resp.StatusCode))
	}

	var entries []weatherEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", model.NewWeatherUnavailableError("レスポンスの解析に失敗しました")
	}
	if len(entries) == 0 {
		return "", model.NewWeatherUnavailableError("天気データがありません")
	}

	today := c.now().Format(dateFormat)
	for _, entry := range entries {
		if entry.Date == today {
			return entry.Weather, nil
		}
	}

	return "", model.NewWeatherUnavailableError("今日の天気データがありません")
}
