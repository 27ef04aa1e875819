package api

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voxelsplace/voxland/voxel"
)

// EditStats counts the effects of RunScript.
type EditStats struct {
	Built     int
	Destroyed int
	Rejected  int
}

// RunScript applies an edit script to m's world. One command per line:
//
//	mode spectator|principal
//	build x y z
//	destroy x y z
//
// Blank lines and lines starting with '#' are ignored. Scripts start in
// spectator mode. The first malformed line or failed edit stops the script.
func RunScript(m *Manager, r io.Reader) (EditStats, error) {
	var st EditStats
	principal := false
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 || strings.HasPrefix(f[0], "#") {
			continue
		}
		switch f[0] {
		case "mode":
			if len(f) != 2 || (f[1] != "spectator" && f[1] != "principal") {
				return st, fmt.Errorf("line %d: want \"mode spectator|principal\"", line)
			}
			principal = f[1] == "principal"
		case "build", "destroy":
			pos, err := parseCoord(f[1:])
			if err != nil {
				return st, fmt.Errorf("line %d: %w", line, err)
			}
			var ok bool
			if f[0] == "build" {
				ok, err = m.Build(pos, principal)
			} else {
				ok, err = m.Destroy(pos, principal)
			}
			if err != nil {
				return st, fmt.Errorf("line %d: %s %v: %w", line, f[0], pos, err)
			}
			switch {
			case !ok:
				st.Rejected++
			case f[0] == "build":
				st.Built++
			default:
				st.Destroyed++
			}
		default:
			return st, fmt.Errorf("line %d: unknown command %q", line, f[0])
		}
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("read script: %w: %v", voxel.ErrIO, err)
	}
	return st, nil
}

func parseCoord(f []string) (voxel.Coord, error) {
	if len(f) != 3 {
		return voxel.Coord{}, fmt.Errorf("want x y z, got %d fields: %w", len(f), voxel.ErrParse)
	}
	var v [3]int
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil {
			return voxel.Coord{}, fmt.Errorf("coordinate %q: %w", s, voxel.ErrParse)
		}
		v[i] = n
	}
	return voxel.C(v[0], v[1], v[2]), nil
}
