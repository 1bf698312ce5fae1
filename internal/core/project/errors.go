package project

import "errors"

var (
	// ErrPathNotFound はプロジェクトルートが存在しないことを表す
	ErrPathNotFound = errors.New("project path not found")

	// ErrNotProject はディレクトリがSWATプロジェクトの指標ファイルを持たないことを表す
	ErrNotProject = errors.New("not a SWAT project")
)
