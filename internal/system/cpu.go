package system

import (
	"os"
	"strconv"
)

const cpuDir = "sys/devices/system/cpu"

func (r *SystemReader) CPUFreqPath(cpu int) string {
	return r.path(cpuDir, "cpu"+strconv.Itoa(cpu), "cpufreq", "scaling_cur_freq")
}

// IsCPUOnline reports whether the cpu exposes a current frequency. Any stat
// failure counts as offline.
func (r *SystemReader) IsCPUOnline(cpu int) bool {
	if cpu < 0 {
		return false
	}
	_, err := os.Stat(r.CPUFreqPath(cpu))
	return err == nil
}

// CPUFreqKHz reads scaling_cur_freq for the cpu. ok is false when the file
// is missing or does not start with an integer.
func (r *SystemReader) CPUFreqKHz(cpu int) (khz int, ok bool) {
	if cpu < 0 {
		return 0, false
	}

	khz, err := r.readInt(r.CPUFreqPath(cpu))
	if err != nil {
		r.log.Debug("failed to read cpu core frequency", "core", cpu, "error", err.Error())
		return 0, false
	}

	return khz, true
}

// KernelMaxCPUs returns kernel_max+1, the number of cpu ids the kernel was
// built to handle.
func (r *SystemReader) KernelMaxCPUs() (int, bool) {
	n, err := r.readInt(r.path(cpuDir, "kernel_max"))
	if err != nil || n < 0 {
		if err != nil {
			r.log.Debug("failed to read kernel_max", "error", err.Error())
		}
		return 0, false
	}
	return n + 1, true
}
