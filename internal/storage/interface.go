package storage

// ArchiveInterface persists delivered reports and their charts for later
// audit. Archival is best effort and never blocks a cycle.
type ArchiveInterface interface {
	Store(name string, data []byte) error
	Retrieve(name string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(name string) error
}
