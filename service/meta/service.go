// Package meta loads declarative assets (task manifests, configuration)
// from any storage scheme the abstract file system supports - file, http,
// embed, in-memory - and decodes them from YAML. Values may reference
// environment variables as ${env.KEY}.
package meta

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Service loads and decodes YAML assets relative to a base URL.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service. baseURL may be empty, in which case URLs are
// used as given.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// Load downloads the asset at URL, expands ${env.KEY} references and
// decodes the YAML payload into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	if s.baseURL != "" && !strings.Contains(URL, "://") && !strings.HasPrefix(URL, "/") {
		URL = strings.TrimSuffix(s.baseURL, "/") + "/" + URL
	}
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", URL, err)
	}
	if err = yaml.Unmarshal([]byte(expandEnvExpr(string(data))), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}
