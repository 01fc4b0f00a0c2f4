package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(8080, cfg.Port)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(10*time.Second, cfg.WriteWait)
	req.Equal(32, cfg.SendBuffer)
	req.Equal("Chatcord HR", cfg.BotName)
	req.Equal(10, cfg.RateLimit)
	req.Equal(5*time.Second, cfg.RateInterval)
	req.Equal(1<<20, cfg.MaxAttachmentBytes)
	req.Len(cfg.Secret, 64)
}

func TestLoadFile_SecretIsKeptOrGenerated(t *testing.T) {
	req := require.New(t)

	// Given a configured secret, it is used as is
	cfg, err := LoadFile(writeFile(t, "secret: s3cr3t\n"))
	req.NoError(err)
	req.Equal("s3cr3t", cfg.Secret)

	// Given none, every load gets its own random key
	first, err := LoadFile(writeFile(t, "mode: release\n"))
	req.NoError(err)
	second, err := LoadFile(writeFile(t, "mode: release\n"))
	req.NoError(err)
	req.NotEmpty(first.Secret)
	req.NotEqual(first.Secret, second.Secret)
}

func TestLoadFile_FileAndEnv(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "mode: debug\nport: 9000\nbot_name: Concierge\nrate_interval: 1s\n")
	t.Setenv("CHATCORD_PORT", "9100")

	cfg, err := LoadFile(path)

	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9100, cfg.Port)
	req.Equal("Concierge", cfg.BotName)
	req.Equal(time.Second, cfg.RateInterval)
}

func TestLoadFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"mode":       "mode: turbo\n",
		"port":       "port: 70000\n",
		"buffer":     "send_buffer: 0\n",
		"read limit": "read_limit: 4096\nmax_attachment_bytes: 8192\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, body))
			require.Error(t, err)
		})
	}
}
