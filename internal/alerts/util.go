package alerts

import (
	"StorWatch/internal/pkg/logger"
	"fmt"
	"net"
	"time"

	"github.com/shirou/gopsutil/host"
)

// GetServerInfoForAlert retrieves host information for inclusion in alerts
func GetServerInfoForAlert() *ServerInfo {
	info, err := host.Info()
	if err != nil {
		logger.Error("Failed to get host information for alert",
			logger.String("error", err.Error()))
		return nil
	}

	return &ServerInfo{
		Hostname:        info.Hostname,
		IPAddress:       primaryIPAddress(),
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Uptime:          formatUptime(info.Uptime),
	}
}

// primaryIPAddress returns the first non-loopback IPv4 address, or "unknown"
func primaryIPAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "unknown"
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() && ipNet.IP.To4() != nil {
			return ipNet.IP.String()
		}
	}
	return "unknown"
}

// formatUptime renders an uptime in seconds as a short human string
func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
