package migration

import "github.com/0chain/s3mgrt/types"

const DefaultBufferSize = 32 * 1024

type MigrationConfig struct {
	SourceBucket      string
	DestinationBucket string
	// BufferSize is the size of the copy buffer used for every object.
	BufferSize int
	// Concurrency is the number of objects copied at once. 1 keeps the run
	// strictly sequential.
	Concurrency     int
	ContinueOnError bool
	ListOptions     types.ListOptions
}
