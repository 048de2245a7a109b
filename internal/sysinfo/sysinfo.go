// Package sysinfo takes a snapshot of the local machine using the same
// vocabulary the remote computer inventory uses, so a host can be
// compared against its Landscape record.
package sysinfo

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type Snapshot struct {
	Hostname      string
	Distribution  string
	UptimeSeconds uint64
	CPUCores      int
	TotalMemory   uint64
	TotalSwap     uint64
}

func Collect() (*Snapshot, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("get host info: %w", err)
	}

	cores, err := cpu.Counts(true)
	if err != nil {
		return nil, fmt.Errorf("get cpu cores: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("get memory info: %w", err)
	}

	swap, err := mem.SwapMemory()
	if err != nil {
		return nil, fmt.Errorf("get swap info: %w", err)
	}

	return &Snapshot{
		Hostname:      hostname,
		Distribution:  fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		UptimeSeconds: info.Uptime,
		CPUCores:      cores,
		TotalMemory:   vm.Total,
		TotalSwap:     swap.Total,
	}, nil
}
