package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency vidforge can delegate to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the dependency set for the given tool binaries. Both
// are optional: the strategy chain degrades without them.
func Requirements(ffmpegBinary, neuralBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Media encoder for procedural renders and frame muxing",
			Optional:    true,
		},
		{
			Name:        "Neural helper",
			Command:     neuralBinary,
			Description: "Prompt-to-image and image-to-motion inference helper",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
