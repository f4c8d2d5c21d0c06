//go:build !(rp2040 || rp2350)

package sim

import (
	"bufio"
	"go/build/constraint"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConstraint(t *testing.T, path string) constraint.Expr {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if constraint.IsGoBuild(line) {
			expr, err := constraint.Parse(line)
			require.NoError(t, err)
			return expr
		}
		if line != "" && line[0] != '/' {
			break
		}
	}
	return nil
}

func TestSimulatorIsHostOnly(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	cmd, err := filepath.Glob(filepath.Join("..", "..", "cmd", "irrigation-sim", "*.go"))
	require.NoError(t, err)
	files = append(files, cmd...)
	require.NotEmpty(t, cmd)

	for _, tags := range []map[string]bool{
		{"rp2040": true, "baremetal": true, "tinygo": true},
		{"rp2350": true, "baremetal": true, "tinygo": true},
	} {
		for _, path := range files {
			expr := fileConstraint(t, path)
			if !assert.NotNil(t, expr, "%s has no build constraint", path) {
				continue
			}
			assert.False(t, expr.Eval(func(tag string) bool { return tags[tag] }), "%s builds for %v", path, tags)
		}
	}

	host := map[string]bool{"linux": true, "amd64": true}
	for _, path := range files {
		if expr := fileConstraint(t, path); expr != nil {
			assert.True(t, expr.Eval(func(tag string) bool { return host[tag] }), "%s skipped on host", path)
		}
	}
}
