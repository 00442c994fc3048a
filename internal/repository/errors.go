package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation はPostgreSQLのunique_violationエラーコード。
const uniqueViolation = "23505"

// isUniqueViolation はエラーがunique制約違反かどうかを判定する。
// チェック後の挿入で競合しうるレース（重複メール登録や担当者の二重登録）を
// 500ではなく競合エラーとして返すために使う。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
