package pantry

import (
	"lumine-kitchen/internal/pkg/common"
)

// Normalize 將採買品項名稱比對到食材詞彙表。
// 完全比對且區分大小寫，不做任何字串整理；
// 兩個輸出都保留輸入順序與重複項，每個品項恰好落入其中一邊
func Normalize(productNames []string, vocabulary []common.Ingredient) (matched, unmatched []string) {
	known := make(map[string]bool, len(vocabulary))
	for _, ingredient := range vocabulary {
		known[ingredient.Name] = true
	}

	matched = make([]string, 0, len(productNames))
	unmatched = make([]string, 0)

	for _, name := range productNames {
		if known[name] {
			matched = append(matched, name)
		} else {
			unmatched = append(unmatched, name)
		}
	}

	return matched, unmatched
}
