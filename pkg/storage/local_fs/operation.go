package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/artifacts-oss/daylog/pkg/fileurl"
)

// SendFile 将上传流写入本地存储, 返回落盘路径
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	dir := filepath.Dir(dstFileKey)
	if !fileurl.IsExist(dir) {
		if err := fileurl.CreatePath(dir, os.ModePerm); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", err
		}
	}
	return dstFileKey, nil
}

// SendContent 将内容写入本地存储, 返回落盘路径
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	dir := filepath.Dir(dstFileKey)
	if !fileurl.IsExist(dir) {
		if err := fileurl.CreatePath(dir, os.ModePerm); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(dstFileKey, content, 0o644); err != nil {
		return "", err
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", err
		}
	}
	return dstFileKey, nil
}
