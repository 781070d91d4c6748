// Package memory 负责用户记忆的写入与检索编排
package memory

import (
	"fmt"
	"sort"
	"strings"
)

// FormatRecord 把结构化的用户数据拍平成一条可检索的记忆句子：
// "User preferences for {userID}: key is value, key is value"
// key 按字典序排序，保证同一份数据生成的句子稳定。
func FormatRecord(userID string, data map[string]any) string {
	if len(data) == 0 {
		return fmt.Sprintf("User preferences for %s:", userID)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s is %s", k, formatValue(data[k])))
	}
	return fmt.Sprintf("User preferences for %s: %s", userID, strings.Join(parts, ", "))
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, " ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, formatValue(val[k])))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
