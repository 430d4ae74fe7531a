package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/disk"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read open file limit: %v", err)
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise open file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// CheckFFmpeg verifies that an ffmpeg binary is callable and returns its
// version line.
func CheckFFmpeg(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", bin, err)
	}

	out, err := exec.Command(path, "-hide_banner", "-version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s -version failed: %w", bin, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// CheckFreeSpace fails if the filesystem holding dir has less than minMB free.
// Zero disables the check.
func CheckFreeSpace(dir string, minMB uint64) (uint64, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, fmt.Errorf("disk usage of %s: %w", dir, err)
	}

	freeMB := usage.Free / (1024 * 1024)
	if minMB > 0 && freeMB < minMB {
		return freeMB, fmt.Errorf("only %d MB free in %s, need at least %d MB", freeMB, dir, minMB)
	}
	return freeMB, nil
}
