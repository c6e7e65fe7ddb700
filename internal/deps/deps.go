// Package deps reports whether the external programs an encoder backend
// shells out to can be found on this host.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external program a backend relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency. Path is the resolved
// executable when Available is true; Detail explains a failed lookup.
type Status struct {
	Name        string
	Command     string
	Description string
	Path        string
	Available   bool
	Detail      string
}

// Check resolves a single requirement against PATH.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Path = path
	status.Available = true
	return status
}
