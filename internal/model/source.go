package model

// ContentSource is the content behind one destination path in a FileTable.
// Exactly two variants exist: FileSource references a file on disk and keeps
// its modification time available for incremental writes; BlobSource owns
// bytes generated during the build and has no prior timestamp.
type ContentSource interface {
	contentSource()
}

// FileSource is a ContentSource backed by a file on disk.
type FileSource struct {
	AbsPath Path
}

func (FileSource) contentSource() {}

// BlobSource is a ContentSource holding generated in-memory content.
type BlobSource struct {
	Data []byte
}

func (BlobSource) contentSource() {}

// Blob is a convenience constructor for a string-valued BlobSource.
func Blob(s string) BlobSource {
	return BlobSource{Data: []byte(s)}
}
