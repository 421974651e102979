//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package sysinfo provides a tool that reports the runtime environment of
// the agent host: current time in a requested timezone, OS and hardware
// facts, and statistics about the running process.
package sysinfo

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

const defaultName = "sysinfo"

const timeLayout = "2006-01-02 15:04:05"

// SysInfoToolSet implements the ToolSet interface for environment lookups.
type SysInfoToolSet struct {
	tools []tool.Tool
}

// NewToolSet creates a new system information tool set.
func NewToolSet() (*SysInfoToolSet, error) {
	return &SysInfoToolSet{
		tools: []tool.Tool{createEnvironmentTool()},
	}, nil
}

// Tools implements the ToolSet interface.
func (s *SysInfoToolSet) Tools(_ context.Context) []tool.Tool {
	return s.tools
}

// Name implements the ToolSet interface.
func (s *SysInfoToolSet) Name() string {
	return defaultName
}

// Close implements the ToolSet interface.
func (s *SysInfoToolSet) Close() error {
	// No resources to clean up for sysinfo tools.
	return nil
}

type environmentRequest struct {
	IncludeSystemInfo  *bool  `json:"include_system_info,omitempty" jsonschema:"description=Include OS, CPU, memory and disk facts, default true"`
	IncludeProcessInfo *bool  `json:"include_process_info,omitempty" jsonschema:"description=Include statistics about the agent process, default true"`
	IncludeRuntimeInfo *bool  `json:"include_runtime_info,omitempty" jsonschema:"description=Include Go runtime facts, default true"`
	Timezone           string `json:"timezone,omitempty" jsonschema:"description=Timezone such as UTC or Asia/Shanghai, default local"`
}

type datetimeInfo struct {
	Local     string  `json:"local"`
	UTC       string  `json:"utc"`
	ISOFormat string  `json:"iso_format"`
	Timestamp float64 `json:"timestamp"`
	Timezone  string  `json:"timezone"`
}

type systemInfo struct {
	Platform    map[string]any `json:"platform"`
	CPU         map[string]any `json:"cpu"`
	Memory      map[string]any `json:"memory"`
	Disk        map[string]any `json:"disk"`
	Network     map[string]any `json:"network"`
	BootTime    string         `json:"boot_time,omitempty"`
	UptimeHours float64        `json:"uptime_hours,omitempty"`
}

type processInfo struct {
	CurrentProcess map[string]any `json:"current_process"`
	SystemLoad     map[string]any `json:"system_load"`
	TotalProcesses int            `json:"total_processes"`
}

type runtimeInfo struct {
	GoVersion  string `json:"go_version"`
	Compiler   string `json:"compiler"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
	NumCPU     int    `json:"num_cpu"`
	Goroutines int    `json:"num_goroutines"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	WorkingDir string `json:"working_directory,omitempty"`
}

type environmentInfo struct {
	Datetime datetimeInfo `json:"datetime"`
	System   *systemInfo  `json:"system,omitempty"`
	Process  *processInfo `json:"process,omitempty"`
	Runtime  *runtimeInfo `json:"runtime,omitempty"`
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func toGB(bytes uint64) float64 {
	return round2(float64(bytes) / (1 << 30))
}

func collectDatetime(timezone string) datetimeInfo {
	now := time.Now()
	loc := now.Location()
	if timezone != "" && timezone != "local" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			loc = parsed
		} else {
			log.Warnf("sysinfo: unknown timezone %q, falling back to local", timezone)
		}
	}
	localized := now.In(loc)
	return datetimeInfo{
		Local:     localized.Format(timeLayout),
		UTC:       now.UTC().Format(timeLayout) + " UTC",
		ISOFormat: localized.Format(time.RFC3339),
		Timestamp: float64(now.UnixMilli()) / 1000,
		Timezone:  loc.String(),
	}
}

func collectSystem(ctx context.Context) *systemInfo {
	info := &systemInfo{
		Platform: map[string]any{},
		CPU:      map[string]any{},
		Memory:   map[string]any{},
		Disk:     map[string]any{},
		Network:  map[string]any{},
	}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		info.Platform = map[string]any{
			"system":  hostInfo.OS,
			"release": hostInfo.PlatformVersion,
			"version": hostInfo.KernelVersion,
			"machine": hostInfo.KernelArch,
			"node":    hostInfo.Hostname,
		}
		info.BootTime = time.Unix(int64(hostInfo.BootTime), 0).Format(timeLayout)
		info.UptimeHours = round2(float64(hostInfo.Uptime) / 3600)
	}

	cpuInfo := map[string]any{
		"cpu_count_logical": runtime.NumCPU(),
	}
	if counts, err := cpu.CountsWithContext(ctx, false); err == nil {
		cpuInfo["cpu_count_physical"] = counts
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		cpuInfo["processor"] = infos[0].ModelName
		cpuInfo["cpu_freq_mhz"] = infos[0].Mhz
	}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		cpuInfo["cpu_usage_percent"] = round2(percents[0])
	}
	info.CPU = cpuInfo

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.Memory = map[string]any{
			"total_gb":      toGB(vm.Total),
			"available_gb":  toGB(vm.Available),
			"used_gb":       toGB(vm.Used),
			"free_gb":       toGB(vm.Free),
			"usage_percent": round2(vm.UsedPercent),
		}
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.Disk = map[string]any{
			"total_gb":      toGB(usage.Total),
			"used_gb":       toGB(usage.Used),
			"free_gb":       toGB(usage.Free),
			"usage_percent": round2(usage.UsedPercent),
		}
	}

	if counters, err := gopsnet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		info.Network = map[string]any{
			"bytes_sent":       counters[0].BytesSent,
			"bytes_received":   counters[0].BytesRecv,
			"packets_sent":     counters[0].PacketsSent,
			"packets_received": counters[0].PacketsRecv,
		}
	} else {
		info.Network = map[string]any{"status": "network statistics unavailable"}
	}

	return info
}

func collectProcess(ctx context.Context) *processInfo {
	info := &processInfo{
		CurrentProcess: map[string]any{"pid": os.Getpid()},
		SystemLoad:     map[string]any{},
	}

	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if name, err := proc.NameWithContext(ctx); err == nil {
			info.CurrentProcess["name"] = name
		}
		if status, err := proc.StatusWithContext(ctx); err == nil {
			info.CurrentProcess["status"] = status
		}
		if created, err := proc.CreateTimeWithContext(ctx); err == nil {
			info.CurrentProcess["create_time"] = time.UnixMilli(created).Format(timeLayout)
		}
		if cpuPercent, err := proc.CPUPercentWithContext(ctx); err == nil {
			info.CurrentProcess["cpu_percent"] = round2(cpuPercent)
		}
		if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
			info.CurrentProcess["memory_info"] = map[string]any{
				"rss_mb": round2(float64(memInfo.RSS) / (1 << 20)),
				"vms_mb": round2(float64(memInfo.VMS) / (1 << 20)),
			}
		}
		if memPercent, err := proc.MemoryPercentWithContext(ctx); err == nil {
			info.CurrentProcess["memory_percent"] = round2(float64(memPercent))
		}
		if threads, err := proc.NumThreadsWithContext(ctx); err == nil {
			info.CurrentProcess["num_threads"] = threads
		}
	}

	if loadAvg, err := load.AvgWithContext(ctx); err == nil {
		info.SystemLoad = map[string]any{
			"load_1min":  loadAvg.Load1,
			"load_5min":  loadAvg.Load5,
			"load_15min": loadAvg.Load15,
		}
	} else {
		info.SystemLoad = map[string]any{"status": "load average unavailable"}
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		info.TotalProcesses = len(pids)
	}

	return info
}

func collectRuntime() *runtimeInfo {
	info := &runtimeInfo{
		GoVersion:  runtime.Version(),
		Compiler:   runtime.Compiler,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
	if wd, err := os.Getwd(); err == nil {
		info.WorkingDir = wd
	}
	return info
}

func createEnvironmentTool() tool.CallableTool {
	handler := func(ctx context.Context, req environmentRequest) response.Response {
		log.Debugf("sysinfo: collecting environment information")

		env := environmentInfo{
			Datetime: collectDatetime(req.Timezone),
		}
		if boolOr(req.IncludeSystemInfo, true) {
			env.System = collectSystem(ctx)
		}
		if boolOr(req.IncludeProcessInfo, true) {
			env.Process = collectProcess(ctx)
		}
		if boolOr(req.IncludeRuntimeInfo, true) {
			env.Runtime = collectRuntime()
		}

		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return response.Textf("failed to collect environment information: %v", err)
		}
		return response.Textf("Environment information collected:\n%s", data)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_environment"),
		function.WithDescription("Report the agent host environment: current time in a requested "+
			"timezone, OS and hardware facts, process statistics and Go runtime details."),
	)
}
