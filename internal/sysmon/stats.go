package sysmon

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// Stats is a snapshot of system resource usage.
type Stats struct {
	CPUPercent  float64
	RAMPercent  float64
	RAMUsedGB   float64
	RAMTotalGB  float64
	DiskPercent float64
	DiskUsedGB  float64
	DiskTotalGB float64
	Uptime      string
	OS          string
	OSVersion   string
}

// diskPath returns the disk to report usage for on the current OS.
func diskPath() string {
	if runtime.GOOS == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive
		}
		return "C:"
	}
	return "/"
}

// toGB converts bytes to gigabytes rounded to two decimals.
func toGB(bytes uint64) float64 {
	return math.Round(float64(bytes)/(1<<30)*100) / 100
}

// formatUptime renders seconds as H:MM:SS, with a day count prefix past
// 24 hours.
func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%d days, %d:%02d:%02d", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// Collect gathers current CPU, RAM, disk, uptime, and OS statistics.
// Partial failures are logged and reported as zero values rather than
// failing the whole snapshot.
func Collect() Stats {
	var stats Stats

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = math.Round(percents[0]*10) / 10
	} else if err != nil {
		logger.Warn("Could not get CPU usage: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.RAMPercent = math.Round(vm.UsedPercent*10) / 10
		stats.RAMUsedGB = toGB(vm.Used)
		stats.RAMTotalGB = toGB(vm.Total)
	} else {
		logger.Warn("Could not get memory usage: %v", err)
	}

	if du, err := disk.Usage(diskPath()); err == nil {
		stats.DiskPercent = math.Round(du.UsedPercent*10) / 10
		stats.DiskUsedGB = toGB(du.Used)
		stats.DiskTotalGB = toGB(du.Total)
	} else {
		logger.Warn("Could not get disk usage: %v", err)
	}

	if info, err := host.Info(); err == nil {
		stats.Uptime = formatUptime(info.Uptime)
		stats.OS = info.Platform
		stats.OSVersion = info.PlatformVersion
	} else {
		logger.Warn("Could not get host info: %v", err)
		stats.OS = runtime.GOOS
	}

	return stats
}
