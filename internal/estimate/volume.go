package estimate

// DefaultFileCount is used when the source kind is not recognized.
const DefaultFileCount = 100

const mib = 1024 * 1024

// EstimateVolume derives file and line counts from the descriptor.
//
// Repositories on GitHub and GitLab draw from a wider range than other
// platforms. Archives pick a range by size tier; tiers are disjoint and
// increase with size. Line count is files times an average of 20-70 lines,
// sampled per call.
func EstimateVolume(d Descriptor, r Rand) Volume {
	files := estimateFiles(d, r)
	return Volume{
		Files: files,
		Lines: files * between(r, 20, 70),
	}
}

func estimateFiles(d Descriptor, r Rand) int {
	switch d.Kind {
	case KindRepository:
		if d.Platform == PlatformGitHub || d.Platform == PlatformGitLab {
			return between(r, 50, 500)
		}
		return between(r, 25, 225)
	case KindArchive:
		size := d.Size()
		switch {
		case size < 1*mib:
			return between(r, 5, 25)
		case size < 10*mib:
			return between(r, 25, 120)
		case size < 50*mib:
			return between(r, 120, 400)
		default:
			return between(r, 400, 800)
		}
	}
	return DefaultFileCount
}
