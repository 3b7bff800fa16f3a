package estimate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorValidate(t *testing.T) {
	size := int64(2048)
	negative := int64(-1)

	tests := []struct {
		name    string
		d       Descriptor
		wantErr bool
	}{
		{"github repository", Descriptor{Kind: KindRepository, Platform: PlatformGitHub}, false},
		{"apache-svn repository", Descriptor{Kind: KindRepository, Platform: PlatformApacheSVN}, false},
		{"archive", Descriptor{Kind: KindArchive, SizeBytes: &size}, false},
		{"archive with platform", Descriptor{Kind: KindArchive, Platform: PlatformGitLab, SizeBytes: &size}, false},
		{"archive without size", Descriptor{Kind: KindArchive}, true},
		{"archive with negative size", Descriptor{Kind: KindArchive, SizeBytes: &negative}, true},
		{"archive with unknown platform", Descriptor{Kind: KindArchive, Platform: "codeberg", SizeBytes: &size}, true},
		{"repository with size", Descriptor{Kind: KindRepository, Platform: PlatformGitHub, SizeBytes: &size}, true},
		{"repository without platform", Descriptor{Kind: KindRepository}, true},
		{"unknown kind", Descriptor{Kind: "file"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDescriptor), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewArchive_ZeroSizeIsValid(t *testing.T) {
	d, err := NewArchive("empty.zip", 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), d.Size())
	assert.NotNil(t, d.SizeBytes)
}

func TestDescriptorSize_Repository(t *testing.T) {
	d, err := NewRepository(PlatformGitLab, "https://gitlab.com/a/b")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), d.Size())
}
