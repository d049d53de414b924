package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Service loads YAML (or JSON) documents from any afs URL
type Service struct {
	fs afs.Service
}

// New creates a meta service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

// Load downloads URL, expands ${env.KEY} expressions and decodes the
// document into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", URL, err)
	}
	if err = yaml.Unmarshal([]byte(ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}
