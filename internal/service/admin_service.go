// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"runtime"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/code"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminService defines the admin business service interface
// AdminService 定义管理端业务服务接口
type AdminService interface {
	// RequireAdmin 校验用户是否具有管理员权限
	RequireAdmin(ctx context.Context, uid int64) error

	// Stats 获取服务运行统计
	Stats(ctx context.Context) (*dto.AdminStatsDTO, error)
}

// adminService implementation of AdminService interface
// adminService 实现 AdminService 接口
type adminService struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

// NewAdminService creates AdminService instance
// NewAdminService 创建 AdminService 实例
func NewAdminService(userRepo domain.UserRepository, logger *zap.Logger) AdminService {
	return &adminService{userRepo: userRepo, logger: logger}
}

// RequireAdmin 校验用户是否具有管理员权限
func (s *adminService) RequireAdmin(ctx context.Context, uid int64) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !user.IsAdmin {
		return code.ErrorUserNotAdminAuth
	}
	return nil
}

// Stats 获取服务运行统计
func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	stats := &dto.AdminStatsDTO{
		UserCount:  count,
		Goroutines: runtime.NumGoroutine(),
	}

	// 主机指标拿不到时只记日志，不影响统计接口本身
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemUsedPercent = vm.UsedPercent
	} else {
		s.logger.Warn("read host memory stats failed", zap.Error(err))
	}
	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		stats.HostUptime = uptime
	} else {
		s.logger.Warn("read host uptime failed", zap.Error(err))
	}

	return stats, nil
}
