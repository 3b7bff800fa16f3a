package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand returns queued values in order, then zeros.
type scriptedRand struct {
	vals []int
	pos  int
}

func (s *scriptedRand) IntN(n int) int {
	if s.pos >= len(s.vals) {
		return 0
	}
	v := s.vals[s.pos]
	s.pos++
	if v >= n {
		panic("scripted value out of range")
	}
	return v
}

func script(vals ...int) *scriptedRand {
	return &scriptedRand{vals: vals}
}

func archive(size int64) Descriptor {
	return Descriptor{Kind: KindArchive, SizeBytes: &size}
}

func repo(p Platform) Descriptor {
	return Descriptor{Kind: KindRepository, Platform: p}
}

// --- Volume ---

func TestEstimateVolume_SmallArchive(t *testing.T) {
	for seed := uint64(0); seed < 300; seed++ {
		v := EstimateVolume(archive(500_000), NewRand(seed))
		require.GreaterOrEqual(t, v.Files, 5)
		require.Less(t, v.Files, 25)
		require.Zero(t, v.Lines%v.Files)
		avg := v.Lines / v.Files
		assert.GreaterOrEqual(t, avg, 20)
		assert.Less(t, avg, 70)
	}
}

func TestEstimateVolume_GitHubRepository(t *testing.T) {
	for seed := uint64(0); seed < 300; seed++ {
		v := EstimateVolume(repo(PlatformGitHub), NewRand(seed))
		require.GreaterOrEqual(t, v.Files, 50)
		require.Less(t, v.Files, 500)
	}
}

func TestEstimateVolume_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		d      Descriptor
		lo, hi int
	}{
		{"gitlab", repo(PlatformGitLab), 50, 500},
		{"bitbucket", repo(PlatformBitbucket), 25, 225},
		{"sourceforge", repo(PlatformSourceForge), 25, 225},
		{"apache-svn", repo(PlatformApacheSVN), 25, 225},
		{"empty archive", archive(0), 5, 25},
		{"1MB archive", archive(mib), 25, 120},
		{"9MB archive", archive(9 * mib), 25, 120},
		{"10MB archive", archive(10 * mib), 120, 400},
		{"50MB archive", archive(50 * mib), 400, 800},
		{"90MB archive", archive(90 * mib), 400, 800},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := uint64(0); seed < 200; seed++ {
				v := EstimateVolume(tc.d, NewRand(seed))
				require.GreaterOrEqual(t, v.Files, tc.lo)
				require.Less(t, v.Files, tc.hi)
				require.GreaterOrEqual(t, v.Lines, v.Files)
			}
		})
	}
}

func TestEstimateVolume_UnknownKindUsesDefault(t *testing.T) {
	v := EstimateVolume(Descriptor{Kind: "tarball"}, script(0))
	assert.Equal(t, DefaultFileCount, v.Files)
	assert.Equal(t, DefaultFileCount*20, v.Lines)
}

func TestEstimateVolume_Scripted(t *testing.T) {
	// files = 50 + 100, avg lines = 20 + 10
	v := EstimateVolume(repo(PlatformGitHub), script(100, 10))
	assert.Equal(t, Volume{Files: 150, Lines: 4500}, v)
}

// --- Languages ---

func TestEstimateLanguages_Scripted(t *testing.T) {
	// primary JavaScript 50%, secondary Python 25%, then HTML/CSS 5%,
	// Java 19% and C++ takes the last 1%.
	langs := EstimateLanguages(100, script(0, 10, 5, 0, 14, 3))

	assert.Equal(t, []LanguageShare{
		{Name: LangJavaScript, Percentage: 50, Files: 50},
		{Name: LangPython, Percentage: 25, Files: 25},
		{Name: LangHTMLCSS, Percentage: 5, Files: 5},
		{Name: LangJava, Percentage: 19, Files: 19},
		{Name: LangCPP, Percentage: 1, Files: 1},
	}, langs)
}

func TestDistribute_RoundingGoesToOther(t *testing.T) {
	shares := distribute(7, script(2, 0, 0))

	pct, files := 0, 0
	for _, s := range shares {
		pct += s.Percentage
		files += s.Files
	}
	assert.Equal(t, 100, pct)
	assert.Equal(t, 7, files)

	other := shares[len(shares)-1]
	assert.Equal(t, LangOther, other.Name)
	assert.Equal(t, 15, other.Percentage)
	assert.Equal(t, 4, other.Files)

	langs := EstimateLanguages(7, script(2, 0, 0))
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{LangHTMLCSS, LangJava, LangOther}, names)
}

func TestEstimateLanguages_ZeroFiles(t *testing.T) {
	assert.Empty(t, EstimateLanguages(0, NewRand(1)))
	assert.Empty(t, EstimateLanguages(-3, NewRand(1)))
}

func TestEstimateLanguages_SingleFile(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		langs := EstimateLanguages(1, NewRand(seed))
		require.Len(t, langs, 1)
		assert.Equal(t, 1, langs[0].Files)
	}
}

func TestEstimateLanguages_Invariants(t *testing.T) {
	for _, fileCount := range []int{1, 2, 3, 7, 13, 25, 99, 100, 250, 499, 799} {
		for seed := uint64(0); seed < 200; seed++ {
			all := distribute(fileCount, NewRand(seed))
			pct, files := 0, 0
			for _, s := range all {
				require.GreaterOrEqual(t, s.Percentage, 0)
				require.LessOrEqual(t, s.Percentage, 100)
				require.GreaterOrEqual(t, s.Files, 0)
				pct += s.Percentage
				files += s.Files
			}
			require.Equal(t, 100, pct, "files=%d seed=%d", fileCount, seed)
			require.Equal(t, fileCount, files, "files=%d seed=%d", fileCount, seed)

			langs := EstimateLanguages(fileCount, NewRand(seed))
			require.NotEmpty(t, langs)
			sum := 0
			last := -1
			for _, l := range langs {
				require.Positive(t, l.Files)
				idx := catalogIndex(l.Name)
				require.Greater(t, idx, last, "catalog order must be kept")
				last = idx
				sum += l.Files
			}
			require.LessOrEqual(t, sum, fileCount)
		}
	}
}

func catalogIndex(name string) int {
	for i, n := range LanguageCatalog {
		if n == name {
			return i
		}
	}
	return -1
}

// --- Quality ---

func TestEstimateQuality_Scripted(t *testing.T) {
	v := Volume{Files: 600, Lines: 60_000}
	langs := []LanguageShare{{Name: LangJavaScript, Percentage: 100, Files: 600}}

	q := EstimateQuality(v, langs, script(2, 0, 19, 10))

	assert.Equal(t, Quality{
		Complexity:      10, // 9 + 2, capped
		Maintainability: 20, // 80 - 45 - 10 - 10, floored
		TestCoverage:    89, // 50 + 10 + 15 + 5 + 9
		Documentation:   80, // 40 + 15 + 20 + 5 + 0
	}, q)
}

func TestEstimateQuality_PythonSmallProject(t *testing.T) {
	v := Volume{Files: 20, Lines: 400}
	langs := []LanguageShare{{Name: LangPython, Percentage: 100, Files: 20}}

	// complexity 1+0, maintainability jitter 0, coverage jitter -10, docs jitter +5
	q := EstimateQuality(v, langs, script(0, 10, 0, 15))

	assert.Equal(t, 1, q.Complexity)
	assert.Equal(t, 80, q.Maintainability)
	assert.Equal(t, 50, q.TestCoverage)
	assert.Equal(t, 55, q.Documentation)
}

func TestEstimateQuality_Ranges(t *testing.T) {
	for _, files := range []int{0, 1, 50, 150, 250, 350, 600, 1200} {
		for seed := uint64(0); seed < 200; seed++ {
			r := NewRand(seed)
			v := Volume{Files: files, Lines: files * between(r, 20, 70)}
			q := EstimateQuality(v, EstimateLanguages(files, r), r)
			require.True(t, q.Complexity >= 1 && q.Complexity <= 10, "complexity %d", q.Complexity)
			require.True(t, q.Maintainability >= 20 && q.Maintainability <= 100, "maintainability %d", q.Maintainability)
			require.True(t, q.TestCoverage >= 0 && q.TestCoverage <= 100, "coverage %d", q.TestCoverage)
			require.True(t, q.Documentation >= 10 && q.Documentation <= 100, "documentation %d", q.Documentation)
		}
	}
}

func TestComplexityBase_MonotonicInFiles(t *testing.T) {
	for _, lines := range []int{0, 5_000, 20_000, 80_000} {
		prev := ComplexityBase(0, lines)
		for files := 1; files <= 1500; files++ {
			cur := ComplexityBase(files, lines)
			require.GreaterOrEqual(t, cur, prev, "files=%d lines=%d", files, lines)
			prev = cur
		}
	}
}

func TestMaintainabilityBase_Monotonic(t *testing.T) {
	for c := 1; c <= 10; c++ {
		prev := MaintainabilityBase(c, 0)
		for files := 1; files <= 1500; files++ {
			cur := MaintainabilityBase(c, files)
			require.LessOrEqual(t, cur, prev, "complexity=%d files=%d", c, files)
			prev = cur
		}
	}
	for _, files := range []int{10, 400, 1200} {
		for c := 2; c <= 10; c++ {
			assert.Less(t, MaintainabilityBase(c, files), MaintainabilityBase(c-1, files))
		}
	}
}

// --- Security ---

func TestEstimateSecurity_ScriptedRepository(t *testing.T) {
	v := Volume{Files: 600, Lines: 30_000}
	langs := []LanguageShare{{Name: LangJavaScript, Percentage: 100, Files: 600}}

	s := EstimateSecurity(KindRepository, v, langs, script(2, 1, 1, 4, 7, 9, 1, 0))

	assert.Equal(t, Security{
		Vulnerabilities:      4,
		OutdatedDependencies: 20,
		License:              "Apache 2.0",
		Score:                30,
	}, s)
}

func TestEstimateSecurity_SmallArchive(t *testing.T) {
	v := Volume{Files: 50, Lines: 1000}
	langs := []LanguageShare{{Name: LangGo, Percentage: 100, Files: 50}}

	s := EstimateSecurity(KindArchive, v, langs, script(19))

	assert.Equal(t, 0, s.Vulnerabilities)
	assert.Equal(t, 0, s.OutdatedDependencies)
	assert.Equal(t, LicenseUnknown, s.License)
	assert.Equal(t, 100, s.Score)
}

func TestEstimateSecurity_Ranges(t *testing.T) {
	for _, kind := range []SourceKind{KindRepository, KindArchive} {
		for _, files := range []int{0, 1, 150, 350, 700} {
			for seed := uint64(0); seed < 200; seed++ {
				r := NewRand(seed)
				v := Volume{Files: files, Lines: files * 30}
				s := EstimateSecurity(kind, v, EstimateLanguages(files, r), r)
				require.GreaterOrEqual(t, s.Vulnerabilities, 0)
				require.LessOrEqual(t, s.Vulnerabilities, 4)
				require.GreaterOrEqual(t, s.OutdatedDependencies, 0)
				require.LessOrEqual(t, s.OutdatedDependencies, 20)
				require.True(t, s.Score >= 30 && s.Score <= 100, "score %d", s.Score)
				if kind == KindArchive {
					require.Equal(t, LicenseUnknown, s.License)
				} else {
					require.Contains(t, LicenseCatalog, s.License)
				}
			}
		}
	}
}

func TestSecurityScoreBase_Monotonic(t *testing.T) {
	for _, files := range []int{10, 600} {
		for v := 1; v <= 5; v++ {
			assert.Less(t, SecurityScoreBase(v, 0, files), SecurityScoreBase(v-1, 0, files))
		}
		for o := 1; o <= 30; o++ {
			assert.LessOrEqual(t, SecurityScoreBase(0, o, files), SecurityScoreBase(0, o-1, files))
		}
	}
}

// --- Contributors ---

func TestEstimateContributors_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		kind   SourceKind
		files  int
		lo, hi int
	}{
		{"small repository", KindRepository, 50, 1, 6},
		{"medium repository", KindRepository, 300, 5, 20},
		{"large repository", KindRepository, 500, 20, 70},
		{"archive", KindArchive, 700, 2, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := uint64(0); seed < 200; seed++ {
				n := EstimateContributors(tc.kind, tc.files, NewRand(seed))
				require.GreaterOrEqual(t, n, tc.lo)
				require.Less(t, n, tc.hi)
			}
		})
	}
}

// --- Seeds ---

func TestNewRand_Reproducible(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestSeedFor(t *testing.T) {
	d1, err := NewRepository(PlatformGitHub, "https://github.com/acme/widgets")
	require.NoError(t, err)
	d2, err := NewRepository(PlatformGitHub, "https://github.com/acme/gadgets")
	require.NoError(t, err)

	assert.Equal(t, SeedFor(d1), SeedFor(d1))
	assert.NotEqual(t, SeedFor(d1), SeedFor(d2))

	a1, _ := NewArchive("src.zip", 1000)
	a2, _ := NewArchive("src.zip", 1001)
	assert.NotEqual(t, SeedFor(a1), SeedFor(a2))
}
