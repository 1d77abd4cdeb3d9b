package metrics

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// Usage is a snapshot of the process's own resource consumption, logged at
// the end of a run so operators can size the job.
type Usage struct {
	RSSBytes  uint64
	CPUUser   float64
	CPUSystem float64
}

func SelfUsage() (*Usage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return nil, err
	}
	times, err := p.Times()
	if err != nil {
		return nil, err
	}
	return &Usage{
		RSSBytes:  mem.RSS,
		CPUUser:   times.User,
		CPUSystem: times.System,
	}, nil
}
