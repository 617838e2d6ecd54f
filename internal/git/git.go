package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// RevisionReader reads file contents from a revision of a local repository.
type RevisionReader struct {
	logger hclog.Logger
}

// New creates a RevisionReader.
func New(logger hclog.Logger) *RevisionReader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &RevisionReader{logger: logger}
}

// ReadFile returns the contents of path as committed at revision. The
// repository is discovered by walking up from the file's directory; revision
// accepts anything go-git can resolve (branch, tag, HEAD~1, full hash).
func (r *RevisionReader) ReadFile(path, revision string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	root, err := findGitRepositoryPath(filepath.Dir(absPath))
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	if revision == "" {
		revision = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}

	rel, err := relativeToRoot(root, absPath)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("reading file at revision", "repo", root, "path", rel, "revision", revision, "commit", hash.String())

	file, err := commit.File(rel)
	if err != nil {
		if err == object.ErrFileNotFound {
			return nil, fmt.Errorf("%w: %s@%s", ErrFileNotInCommit, rel, revision)
		}
		return nil, fmt.Errorf("failed to read %s@%s: %w", rel, revision, err)
	}

	binary, err := file.IsBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s@%s: %w", rel, revision, err)
	}
	if binary {
		return nil, fmt.Errorf("%w: %s@%s", ErrBinaryFile, rel, revision)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s@%s: %w", rel, revision, err)
	}
	return []byte(contents), nil
}

func relativeToRoot(root, absPath string) (string, error) {
	within, err := files.EnsureWithinRoot(root, absPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, within)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %q: %w", absPath, err)
	}
	return filepath.ToSlash(rel), nil
}

// findGitRepositoryPath walks up from sourceFolder to the first folder git can open.
func findGitRepositoryPath(sourceFolder string) (string, error) {
	if sourceFolder == "" {
		return "", fmt.Errorf("source folder is not set")
	}

	for {
		_, err := git.PlainOpen(sourceFolder)
		if err == nil {
			return sourceFolder, nil
		}

		parent := filepath.Dir(sourceFolder)
		if parent == sourceFolder {
			break
		}
		sourceFolder = parent
	}

	return "", ErrNotRepository
}
