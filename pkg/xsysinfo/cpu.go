package xsysinfo

import (
	"sort"

	"github.com/jaypipes/ghw"
	"github.com/klauspost/cpuid/v2"
)

// CPUCapabilities returns the sorted set of CPU feature flags reported by
// the host. Used for the startup diagnostics log only.
func CPUCapabilities() ([]string, error) {
	cpu, err := ghw.CPU()
	if err != nil {
		return nil, err
	}

	caps := map[string]struct{}{}
	for _, proc := range cpu.Processors {
		for _, c := range proc.Capabilities {
			caps[c] = struct{}{}
		}
	}

	ret := []string{}
	for c := range caps {
		ret = append(ret, c)
	}

	sort.Strings(ret)
	return ret, nil
}

func HasCPUCaps(ids ...cpuid.FeatureID) bool {
	return cpuid.CPU.Supports(ids...)
}

// CPUPhysicalCores reports the hardware parallelism used for inference
// threads. Never returns less than 1.
func CPUPhysicalCores() int {
	if cpuid.CPU.PhysicalCores <= 0 {
		return 1
	}
	return cpuid.CPU.PhysicalCores
}
