package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	bytes.Buffer
	closes int
}

func (c *fakeConn) Close() error {
	c.closes++
	return nil
}

func TestPlatformKey(t *testing.T) {
	win := PlatformKey{OS: OSWindows, Arch: ArchX64}
	mac := PlatformKey{OS: OSMacOS, Arch: ArchARM64}

	assert.Equal(t, "windows-x64", win.String())
	assert.Equal(t, "biome.exe", win.ExecutableName("biome"))
	assert.Equal(t, "biome", mac.ExecutableName("biome"))
}

func TestTransport_SharesOneConnection(t *testing.T) {
	conn := &fakeConn{}
	tr := NewTransport(conn)

	_, err := tr.Writer().Write([]byte("Content-Length: 2\r\n\r\n{}"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := tr.Reader().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "Content-Length: 2\r\n\r\n{}", string(buf[:n]))

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
	assert.Equal(t, 1, conn.closes)
}
