// Package version exposes build metadata injected with -ldflags "-X".
package version

import (
	"bytes"
	"runtime"
	"strings"
	"text/template"

	"github.com/erth-network/anml-cli/common/check"
)

var (
	gitTag      string
	gitCommit   string
	gitRevision string
)

const (
	unknownRevision = "0"
	unknownVersion  = "<unknown>"
)

var versionTmpl = template.Must(template.New("version").Parse(`{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch: 	{{ .OS }}/{{ .Arch }}
 Git commit:	{{ .Commit }}
 Revision:	{{ .Revision }}`))

// Version is the release tag without the pre-release suffix.
func Version() string {
	ver := gitTag
	if ver == "" {
		return unknownVersion
	}
	parts := strings.SplitN(ver, "-", 2)
	check.PanicIfNot(len(parts) > 0)
	return parts[0]
}

func GetGitRevision() string {
	if gitRevision == "" {
		return unknownRevision
	}
	return gitRevision
}

func BuildVersionString(appTitle string) string {
	var buf bytes.Buffer
	check.PanicIfErr(versionTmpl.Execute(&buf, map[string]string{
		"Title":    appTitle,
		"Version":  Version(),
		"OS":       runtime.GOOS,
		"Arch":     runtime.GOARCH,
		"Commit":   gitCommit,
		"Revision": GetGitRevision(),
	}))
	return buf.String()
}

// UserAgent identifies the CLI to remote nodes.
func UserAgent() string {
	return "anml-cli/" + GetGitRevision()
}
