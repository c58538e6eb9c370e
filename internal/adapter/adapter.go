package adapter

import (
	"strings"
	"time"
)

// TimeLayout 统一的开赛时间输出格式：带显式偏移的 ISO-8601，保证按字符串排序即按时间排序
const TimeLayout = "2006-01-02T15:04:05-07:00"

// NormalizeTime 统一把数据源返回的 UTC 时间字符串转成带显式偏移的 ISO-8601 表示。
// 末尾的 Z 先替换为 +00:00 再解析；解析失败时原样返回，排序时按普通字符串处理。
func NormalizeTime(value string) string {
	if value == "" {
		return ""
	}
	cleaned := value
	if strings.HasSuffix(cleaned, "Z") {
		cleaned = strings.TrimSuffix(cleaned, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339, cleaned)
	if err != nil {
		return value
	}
	return t.Format(TimeLayout)
}

// ParseStartTime 解析数据源时间字符串，拉取阶段过滤已开赛比赛用。
// 第二个返回值表示是否解析成功。
func ParseStartTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	cleaned := value
	if strings.HasSuffix(cleaned, "Z") {
		cleaned = strings.TrimSuffix(cleaned, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339, cleaned)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
