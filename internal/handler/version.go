package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
)

// Version is stamped at link time with -ldflags "-X .../handler.Version=v1.2.3"
var Version = "dev"

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

var readBuildInfo = sync.OnceValue(func() BuildInfo {
	info := BuildInfo{Version: Version, GoVersion: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
})

// HandleVersion reports the module version and VCS stamp of the running binary
func HandleVersion(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := readBuildInfo()
		info.Service = serviceName
		respondJSON(w, http.StatusOK, info)
	}
}
