package config

// SyncJobName is the scheduled full reconciliation pass.
const SyncJobName = "inventorysync"

// CronSchedules maps job names to cron specs for jobs whose schedule is configurable.
func CronSchedules(cfg *Config) map[string]string {
	return map[string]string{
		SyncJobName: cfg.SyncSchedule,
	}
}
