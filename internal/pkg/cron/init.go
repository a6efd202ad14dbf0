package cron

import log "log/slog"

// InitCron 注册定时任务并启动调度器，
// 目前仅有未读摘要校准任务
func InitCron(mgr *Manager) error {
	log.Info("定时任务启动", "jobs", "unread_calibration")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
