package blogeditor

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ListenAddr joins host and port into a listen address. Empty parts fall
// back to 127.0.0.1 and 4322.
func ListenAddr(host, port string) string {
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "4322"
	}
	return net.JoinHostPort(host, port)
}

// RepoFs returns an OS filesystem rooted at the repository and the absolute
// path it is rooted at. BasePathFs rejects every path under a relative base
// such as ".", so the root is made absolute first.
func RepoFs(root string) (afero.Fs, string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, "", fmt.Errorf("resolve repo root %q: %w", root, err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), abs), abs, nil
}
