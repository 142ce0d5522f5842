package main

import (
	"fmt"
	"runtime/debug"
	"strings"
)

type buildInfo struct {
	Version     string
	Revision    string
	ReleaseDate string
	DirtyBuild  bool
}

func readBuildInfo() buildInfo {
	info := buildInfo{Version: "unknown", Revision: "unknown"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.ReleaseDate = s.Value
		case "vcs.modified":
			info.DirtyBuild = s.Value == "true"
		}
	}
	return info
}

func versionText() string {
	meta := readBuildInfo()
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("VERSION"))
	fmt.Fprintln(b, "  Version:", meta.Version)
	if meta.Revision != "unknown" {
		if meta.DirtyBuild {
			fmt.Fprintln(b, "  Dirty Build")
			fmt.Fprintln(b, "  Last commit:", meta.ReleaseDate)
		} else {
			fmt.Fprintln(b, "  Revision:", meta.Revision)
			fmt.Fprintln(b, "  Committed:", meta.ReleaseDate)
		}
	}
	return b.String()
}
