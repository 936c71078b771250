package model

// Bundle is everything gathered for a reproducibility archive.
type Bundle struct {
	Version      string
	Sources      []Path // deduplicated, sorted
	Dependencies []string
}

// ArchiveMember is a single file stored in an archive.
type ArchiveMember struct {
	Name string
	Size uint64
}

// ArchiveContents is what a reproducibility archive holds once read back.
type ArchiveContents struct {
	Path         Path
	Members      []ArchiveMember
	Version      string
	Dependencies []string
}
