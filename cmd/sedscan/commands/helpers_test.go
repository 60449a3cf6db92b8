// cmd/sedscan/commands/helpers_test.go
package commands

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// opalCapture is a revision 1 response with TPer, Locking and Opal 2.0 records.
func opalCapture() []byte {
	b := make([]byte, 48+16+16+20)
	binary.BigEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.BigEndian.PutUint32(b[4:8], 1)

	binary.BigEndian.PutUint16(b[48:50], 0x0001)
	b[51] = 12
	b[52] = 0x11 // sync, streaming

	binary.BigEndian.PutUint16(b[64:66], 0x0002)
	b[67] = 12
	b[68] = 0x07 // supported, enabled, locked

	binary.BigEndian.PutUint16(b[80:82], 0x0203)
	b[83] = 16
	binary.BigEndian.PutUint16(b[84:86], 0x1000)
	binary.BigEndian.PutUint16(b[86:88], 1)
	return b
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
