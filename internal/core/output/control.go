package output

import (
	"fmt"
	"os"
	"strings"
)

// ReadControl は制御ファイル（file.cio）からシミュレーションパラメータを抽出する
// 構造はSWATのバージョンによって異なるため、抽出はベストエフォートで行い、
// 結果は不透明なメタデータとして扱う。ファイルが短すぎる場合は空のマップを返す。
func ReadControl(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read control file: %w", err)
	}

	params := make(map[string]string)
	lines := strings.Split(string(content), "\n")
	if len(lines) < 10 {
		return params, nil
	}

	params["master_watershed"] = strings.TrimSpace(lines[0])

	// 「<値>    | KEY : 説明」形式の注釈付きフィールドを拾う
	for _, line := range lines {
		value, annot, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(annot, ":")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if _, exists := params[key]; !exists {
			params[key] = value
		}
	}

	return params, nil
}
