package storage

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Reaper untuk file staging di temp/ yang tidak pernah di-commit
// (form multi-step yang ditinggal user). File permanen tidak disentuh.

type TempReaperConfig struct {
	RetentionHours int
	CronSchedule   string
	DryRun         bool
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// ── ENTRYPOINT: panggil dari main.go
func StartTempReaperCron(store *DiskStore) {
	cfg := TempReaperConfig{
		RetentionHours: getEnvInt("TEMP_RETENTION_HOURS", 24),
		CronSchedule:   getEnvOrDefault("TEMP_REAPER_SCHEDULE", "15 2 * * *"),
		DryRun:         getEnvBool("TEMP_REAPER_DRY_RUN", false),
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		removed, kept := ReapTempOnce(store, cfg)
		log.Printf("[TEMP-REAPER] selesai: removed=%d kept=%d dry_run=%v", removed, kept, cfg.DryRun)
	}); err != nil {
		log.Printf("[TEMP-REAPER] schedule tidak valid %q: %v", cfg.CronSchedule, err)
		return
	}
	c.Start()
	log.Printf("[TEMP-REAPER] aktif: schedule=%q retention=%dh", cfg.CronSchedule, cfg.RetentionHours)
}

// ReapTempOnce menghapus file temp yang lebih tua dari retention.
func ReapTempOnce(store *DiskStore, cfg TempReaperConfig) (removed, kept int) {
	cutoff := time.Now().Add(-time.Duration(cfg.RetentionHours) * time.Hour)
	tempRoot := filepath.Join(store.Root(), DirTemp)

	err := filepath.WalkDir(tempRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			kept++
			return nil
		}
		if cfg.DryRun {
			log.Printf("[TEMP-REAPER] (dry-run) kandidat hapus: %s", path)
			removed++
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.Printf("[TEMP-REAPER] gagal hapus %s: %v", path, err)
			kept++
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		log.Printf("[TEMP-REAPER] walk err: %v", err)
	}
	return removed, kept
}
