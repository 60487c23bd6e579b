package sandbox

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPrependsWrapperAndBinds(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "")

	cfg := Config{
		WrapperCommand: "bwrap",
		PluginRoot:     "/home/user/.kodi",
		ExtraReadOnly:  []string{"/opt/extra"},
		ReadWriteDir:   "/tmp/call-1",
	}

	argv := cfg.Wrap([]string{"python3", "helper.py"})

	assert.Equal(t, "bwrap", argv[0])
	assert.Contains(t, argv, "/home/user/.kodi")
	assert.Contains(t, argv, "/opt/extra")
	assert.Contains(t, argv, "--bind")
	assert.Contains(t, argv, "/tmp/call-1")
	assert.Equal(t, []string{"python3", "helper.py"}, argv[len(argv)-2:])
}

func TestMountsSplitsLibraryPath(t *testing.T) {
	os.Setenv("LD_LIBRARY_PATH", "/opt/lib:/opt/lib2")
	defer os.Unsetenv("LD_LIBRARY_PATH")

	cfg := Config{PluginRoot: "/root"}
	mounts := cfg.Mounts()

	var sources []string
	for _, m := range mounts {
		sources = append(sources, m.Source)
	}
	assert.Contains(t, sources, "/opt/lib")
	assert.Contains(t, sources, "/opt/lib2")
}
