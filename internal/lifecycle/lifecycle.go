// Package lifecycle orchestrates one full scaffold generation cycle:
// allocate unique paths, build the tree, archive it, hand the archive to
// a deliverer, and remove everything that was created. Its central
// invariant: whatever stage a request dies in, neither the work
// directory nor the archive survives the request.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hermes08/FastMVP-Core/internal/archive"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
)

// Stage is the lifecycle state of one generation request.
type Stage int

const (
	StageAllocated Stage = iota
	StageBuilt
	StageArchived
	StageDelivered
	StageCleaned
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageAllocated:
		return "allocated"
	case StageBuilt:
		return "built"
	case StageArchived:
		return "archived"
	case StageDelivered:
		return "delivered"
	case StageCleaned:
		return "cleaned"
	case StageAborted:
		return "aborted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ErrArchiveMissing is returned when the archive is gone at delivery
// time. Outside of manual intervention this indicates a lifecycle bug
// and is logged at the highest severity we use.
var ErrArchiveMissing = errors.New("archive missing at delivery time")

// Builder populates a freshly allocated work directory with a scaffold.
type Builder interface {
	Build(ctx context.Context, cfg scaffold.ProjectConfig, dir string) error
}

// Archiver packages a populated directory into an archive at dest.
type Archiver interface {
	Archive(ctx context.Context, srcDir, dest string) error
}

// ArchiverFunc adapts a function to the Archiver interface.
type ArchiverFunc func(ctx context.Context, srcDir, dest string) error

func (f ArchiverFunc) Archive(ctx context.Context, srcDir, dest string) error {
	return f(ctx, srcDir, dest)
}

// Deliverer consumes the finished archive, e.g. by streaming it into an
// HTTP response or copying it to a destination path. The archive is
// deleted as soon as Deliverer returns, success or not.
type Deliverer func(ctx context.Context, archivePath string) error

// Manager runs generation cycles. It holds no per-request state, so one
// Manager serves concurrent requests; requests never collide because
// every cycle allocates its own unique paths.
type Manager struct {
	workRoot string
	builder  Builder
	archiver Archiver
	logger   *zap.Logger
}

// New creates a Manager that allocates work directories and archives
// under workRoot. A nil logger disables logging.
func New(workRoot string, builder Builder, archiver Archiver, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		workRoot: workRoot,
		builder:  builder,
		archiver: archiver,
		logger:   logger,
	}
}

// Generate runs one full cycle for cfg and hands the finished archive to
// deliver. On return — whatever succeeded or failed, including caller
// cancellation — the work directory and the archive are gone from disk.
func (m *Manager) Generate(ctx context.Context, cfg scaffold.ProjectConfig, deliver Deliverer) (err error) {
	token := uuid.NewString()[:8]
	workDir := filepath.Join(m.workRoot, fmt.Sprintf("%s-%s", cfg.Slug, token))
	archivePath := workDir + ".zip"

	stage := StageAllocated
	log := m.logger.With(
		zap.String("slug", cfg.Slug),
		zap.String("token", token),
	)

	// Cleanup must run on every exit path, including panics in the
	// deliverer. Both removals are idempotent.
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			log.Error("failed to remove work directory", zap.String("path", workDir), zap.Error(rmErr))
		}
		if rmErr := os.Remove(archivePath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Error("failed to remove archive", zap.String("path", archivePath), zap.Error(rmErr))
		}
		if err != nil {
			stage = StageAborted
		} else {
			stage = StageCleaned
		}
		log.Debug("generation finished", zap.Stringer("stage", stage))
	}()

	if err = os.MkdirAll(workDir, 0755); err != nil {
		return &scaffold.WriteError{Path: workDir, Err: err}
	}

	if err = m.builder.Build(ctx, cfg, workDir); err != nil {
		log.Error("scaffold build failed", zap.Error(err))
		return err
	}
	stage = StageBuilt

	if err = m.archiver.Archive(ctx, workDir, archivePath); err != nil {
		log.Error("archiving failed", zap.Error(err))
		return err
	}
	stage = StageArchived

	// The tree is no longer needed once the archive exists. Removing
	// it before delivery keeps the ephemeral footprint to one
	// artifact at a time.
	if rmErr := os.RemoveAll(workDir); rmErr != nil {
		log.Error("failed to remove work directory", zap.String("path", workDir), zap.Error(rmErr))
	}

	if err = deliver(ctx, archivePath); err != nil {
		if errors.Is(err, ErrArchiveMissing) {
			log.Error("archive vanished before delivery", zap.String("path", archivePath), zap.Stringer("stage", stage))
		} else {
			log.Error("delivery failed", zap.Error(err))
		}
		return err
	}
	stage = StageDelivered

	return nil
}

// NewDefault wires a Manager over the real scaffold builder and zip
// archiver.
func NewDefault(workRoot string, builder Builder, logger *zap.Logger) *Manager {
	return New(workRoot, builder, ArchiverFunc(archive.Create), logger)
}
