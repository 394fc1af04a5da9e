package ui

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

type StatsProvider interface {
	RSS() (uint64, error)
}

// ProcessStats reads the resident memory of the running process.
type ProcessStats struct{}

func (ProcessStats) RSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}
