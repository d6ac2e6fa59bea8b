package dispatch

import (
	"path/filepath"
	"strings"

	"github.com/cellery-io/cellery-dev/internal/config"
)

// commandSeparator chains command lines so each one only runs if the
// previous one succeeded.
const commandSeparator = " && "

// BuildCommandLine formats the command that builds cellName from filePath.
func BuildCommandLine(tool config.ToolConfig, filePath, cellName string) string {
	return tool.BuildCommand + " " + filePath + " " + cellName
}

// RunCommandLine formats the chained build, detached run and log-follow
// commands for one instance.
func RunCommandLine(tool config.ToolConfig, filePath, cellName, instanceName string) string {
	return strings.Join([]string{
		BuildCommandLine(tool, filePath, cellName),
		tool.RunCommand + " " + cellName + " -n " + instanceName + " -d",
		tool.LogsCommand + " " + instanceName,
	}, commandSeparator)
}

// DefaultInstanceName suggests an instance name: the base name of the
// active file without its extension, or fallback when no file is active.
func DefaultInstanceName(filePath string, hasFile bool, fallback string) string {
	if !hasFile || filePath == "" {
		return fallback
	}
	base := filepath.Base(filePath)
	// A dotfile such as ".profile" has no extension, only a name.
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
