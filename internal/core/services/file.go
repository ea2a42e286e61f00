package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService manages the text files of the active project.
type FileService struct {
	ws          *Workspace
	normalisers driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
}

// NewFileService creates a new file service.
// The normaliser registry and post-processing pipeline are optional (can be nil);
// without a registry, imports are taken as UTF-8 text.
func NewFileService(
	ws *Workspace,
	normalisers driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
) *FileService {
	return &FileService{ws: ws, normalisers: normalisers, pipeline: pipeline}
}

// List returns the files of the active project in document order.
func (s *FileService) List() ([]*domain.TextFile, error) {
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	return p.Files.Values(), nil
}

// Get returns a file of the active project. An empty name means the active file.
func (s *FileService) Get(name string) (*domain.TextFile, error) {
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = s.ws.Selection().File
	}
	if name == "" {
		return nil, fmt.Errorf("no active file: %w", domain.ErrNotFound)
	}
	return p.File(name)
}

// Add creates a file from plain text and makes it active.
func (s *FileService) Add(ctx context.Context, name, content string) (string, error) {
	var stored string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		m := &mutations.AddFile{Project: sel.Project, File: name, Content: content}
		if err := tx.Apply(m); err != nil {
			return err
		}
		stored = m.File
		tx.Select(sel.Project, stored)
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.Info("Added file %q (%d bytes)", stored, len(content))
	return stored, nil
}

// Import normalises raw bytes by file extension and adds the result.
func (s *FileService) Import(ctx context.Context, name string, raw []byte) (string, error) {
	text, err := s.normalise(ctx, name, raw)
	if err != nil {
		return "", err
	}
	return s.Add(ctx, name, text)
}

// Reload normalises raw bytes like Import and replaces the content of an
// existing file with the result, re-deriving search occurrences.
func (s *FileService) Reload(ctx context.Context, name string, raw []byte) error {
	text, err := s.normalise(ctx, name, raw)
	if err != nil {
		return err
	}
	return s.Edit(ctx, name, text, true)
}

func (s *FileService) normalise(ctx context.Context, name string, raw []byte) (string, error) {
	text := string(raw)
	if s.normalisers != nil {
		var err error
		if text, err = s.normalisers.Normalise(ctx, name, raw); err != nil {
			return "", fmt.Errorf("normalise %s: %w", name, err)
		}
	}
	if s.pipeline != nil {
		var err error
		if text, err = s.pipeline.Process(ctx, text); err != nil {
			return "", fmt.Errorf("post-process %s: %w", name, err)
		}
	}
	return text, nil
}

// Remove deletes a file and its occurrences.
func (s *FileService) Remove(ctx context.Context, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		if err := tx.Apply(&mutations.RemoveFile{Project: sel.Project, File: name}); err != nil {
			return err
		}
		if tx.live.file == name {
			tx.live = liveSearch{}
		}
		return nil
	})
}

// Rename renames a file and returns the stored name.
func (s *FileService) Rename(ctx context.Context, from, to string) (string, error) {
	var stored string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		m := &mutations.RenameFile{Project: sel.Project, From: from, To: to}
		if err := tx.Apply(m); err != nil {
			return err
		}
		stored = m.To
		if sel.File == from {
			tx.Select(sel.Project, stored)
		}
		if tx.live.file == from {
			tx.live.file = stored
		}
		return nil
	})
	return stored, err
}

// Use makes a file active.
func (s *FileService) Use(ctx context.Context, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		if _, err := p.File(name); err != nil {
			return err
		}
		tx.Select(p.Name, name)
		return nil
	})
}

// Edit replaces a file's content, optionally re-deriving search occurrences.
func (s *FileService) Edit(ctx context.Context, name, content string, refresh bool) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		if name == "" {
			name = sel.File
		}
		if err := tx.Apply(&mutations.EditContent{Project: sel.Project, File: name, Content: content}); err != nil {
			return err
		}
		if !refresh {
			return nil
		}
		return tx.Apply(refreshMutation(tx))
	})
}

func refreshMutation(tx *Tx) *mutations.RefreshAllSearches {
	return &mutations.RefreshAllSearches{
		Project:  tx.Selection().Project,
		Options:  tx.Options(),
		LiveTerm: tx.live.term,
		LiveFile: tx.live.file,
	}
}
