package global

import (
	"github.com/artifacts-oss/daylog/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT          string
	Name          string = "Daylog"
	WebClientName string = "Web"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
