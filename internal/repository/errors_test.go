package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

// unique制約違反の判定がラップ済みエラーでも機能すること。
func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique制約違反",
			err:  &pq.Error{Code: uniqueViolation},
			want: true,
		},
		{
			name: "ラップされたunique制約違反",
			err:  fmt.Errorf("failed to insert: %w", &pq.Error{Code: uniqueViolation}),
			want: true,
		},
		{
			name: "別のpqエラーコード",
			err:  &pq.Error{Code: "23503"},
			want: false,
		},
		{
			name: "pq以外のエラー",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
