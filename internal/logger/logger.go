package logger

import (
	"io"
	"log/slog"
	"os"
)

// serviceName は全ログレコードに付与されるサービス識別子。
// 集約基盤で他サービスのログと区別するために使う。
const serviceName = "taskman"

// Setup はJSON構造化ログ出力のslog.Loggerを生成して返す。
// すべてのレコードにservice属性が付与される。
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler).With(slog.String("service", serviceName))
}

// SetupDefault はJSON構造化ログ出力をグローバルロガーとして設定する。
// writerが指定された場合はそのwriterに出力する。
// 本番ではos.Stdoutを渡すことを想定している。
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
}
