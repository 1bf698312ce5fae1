package analysis

import "errors"

var (
	// ErrVariableNotFound は要求された変数がデータセットに存在しないことを表す
	ErrVariableNotFound = errors.New("variable not found")

	// ErrNoData は要求に合致するデータが存在しないことを表す
	// 例外的な障害ではなく、問い合わせ可能な「見つからない」結果として扱う。
	ErrNoData = errors.New("no data available")
)
