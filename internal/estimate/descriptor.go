package estimate

import (
	"errors"
	"fmt"
)

// ErrInvalidDescriptor is returned for malformed or incomplete descriptors.
// Callers are expected to reject these before any analysis runs.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// SourceKind describes how a project was submitted.
type SourceKind string

// Source kinds.
const (
	KindRepository SourceKind = "repository"
	KindArchive    SourceKind = "archive"
)

// Platform identifies the source-control host a project was submitted from.
type Platform string

// Supported platforms.
const (
	PlatformGitHub      Platform = "github"
	PlatformGitLab      Platform = "gitlab"
	PlatformBitbucket   Platform = "bitbucket"
	PlatformSourceForge Platform = "sourceforge"
	PlatformApacheSVN   Platform = "apache-svn"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformGitHub,
	PlatformGitLab,
	PlatformBitbucket,
	PlatformSourceForge,
	PlatformApacheSVN,
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Valid reports whether k is a supported source kind.
func (k SourceKind) Valid() bool {
	return k == KindRepository || k == KindArchive
}

// Descriptor is the normalized input the engine works from. It is passed
// by value and never modified by estimators.
type Descriptor struct {
	Kind     SourceKind `json:"source_kind" yaml:"source_kind"`
	Platform Platform   `json:"platform,omitempty" yaml:"platform,omitempty"`

	// SizeBytes is set only for archives.
	SizeBytes *int64 `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`

	// Source is the repository URL or archive name. Informational only.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewRepository returns a validated repository descriptor.
func NewRepository(platform Platform, source string) (Descriptor, error) {
	d := Descriptor{Kind: KindRepository, Platform: platform, Source: source}
	return d, d.Validate()
}

// NewArchive returns a validated archive descriptor.
func NewArchive(source string, size int64) (Descriptor, error) {
	d := Descriptor{Kind: KindArchive, SizeBytes: &size, Source: source}
	return d, d.Validate()
}

// Size returns the archive size, or 0 when absent.
func (d Descriptor) Size() int64 {
	if d.SizeBytes == nil {
		return 0
	}
	return *d.SizeBytes
}

// Validate checks the descriptor invariants.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindRepository:
		if !d.Platform.Valid() {
			return fmt.Errorf("%w: unknown platform %q", ErrInvalidDescriptor, d.Platform)
		}
		if d.SizeBytes != nil {
			return fmt.Errorf("%w: repository descriptors carry no size", ErrInvalidDescriptor)
		}
	case KindArchive:
		if d.SizeBytes == nil {
			return fmt.Errorf("%w: archive size is required", ErrInvalidDescriptor)
		}
		if *d.SizeBytes < 0 {
			return fmt.Errorf("%w: negative archive size %d", ErrInvalidDescriptor, *d.SizeBytes)
		}
		if d.Platform != "" && !d.Platform.Valid() {
			return fmt.Errorf("%w: unknown platform %q", ErrInvalidDescriptor, d.Platform)
		}
	default:
		return fmt.Errorf("%w: unknown source kind %q", ErrInvalidDescriptor, d.Kind)
	}
	return nil
}
