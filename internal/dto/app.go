// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// VersionDTO 版本信息 API 响应对象
type VersionDTO struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// AdminStatsDTO 管理端统计信息
type AdminStatsDTO struct {
	UserCount  int64 `json:"userCount"`
	QueueCount int   `json:"queueCount"`
	ActiveOps  int64 `json:"activeOps"`

	// 主机运行情况
	Goroutines     int     `json:"goroutines"`
	MemUsedPercent float64 `json:"memUsedPercent"`
	HostUptime     uint64  `json:"hostUptime"`
}
