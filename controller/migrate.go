// Package controller runs one migration: it checks both buckets, loads and
// opens the progress ledger and hands the work to the transfer engine.
package controller

import (
	"context"
	"fmt"

	"github.com/0chain/s3mgrt/ledger"
	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/migration"
	"github.com/0chain/s3mgrt/types"
	zerrors "github.com/0chain/s3mgrt/zErrors"
)

const (
	SourceSide      = "source"
	DestinationSide = "destination"
)

// EndpointSide is a connected client and the bucket it is used with.
type EndpointSide struct {
	Name   string
	Client types.CloudStorageI
	Bucket string
}

type Controller struct {
	source      EndpointSide
	destination EndpointSide
	ledgerPath  string
	cfg         migration.MigrationConfig
}

// NewController prepares a run between source and destination. Bucket names
// in cfg are taken from the sides. A nil cfg uses the engine defaults.
func NewController(source, destination EndpointSide, ledgerPath string, cfg *migration.MigrationConfig) *Controller {
	c := &Controller{
		source:      source,
		destination: destination,
		ledgerPath:  ledgerPath,
	}
	if cfg != nil {
		c.cfg = *cfg
	}
	if c.ledgerPath == "" {
		c.ledgerPath = ledger.DefaultFileName
	}
	c.cfg.SourceBucket = source.Bucket
	c.cfg.DestinationBucket = destination.Bucket
	return c
}

// ValidatePreconditions checks that both buckets exist, source first.
func (c *Controller) ValidatePreconditions(ctx context.Context) error {
	for _, side := range []EndpointSide{c.source, c.destination} {
		exists, err := side.Client.BucketExists(ctx, side.Bucket)
		if err != nil {
			return zerrors.Wrap(zerrors.BucketCheckFailedErrCode,
				fmt.Sprintf("checking %s bucket %q", side.Name, side.Bucket), err)
		}
		if !exists {
			return zerrors.New(zerrors.BucketNotFoundErrCode,
				fmt.Sprintf("%s bucket %q does not exist", side.Name, side.Bucket))
		}
	}
	return nil
}

// Run performs the migration once. Nothing is listed, read or written when
// a precondition fails.
func (c *Controller) Run(ctx context.Context) (summary *migration.Summary, err error) {
	if err := c.ValidatePreconditions(ctx); err != nil {
		return nil, err
	}

	completed, err := ledger.Load(c.ledgerPath)
	if err != nil {
		return nil, err
	}
	zlogger.Logger.Info(fmt.Sprintf("Loaded %d completed keys from %s", completed.Len(), c.ledgerPath))

	l, err := ledger.Open(c.ledgerPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zlogger.Logger.Info(fmt.Sprintf("Migrating from %s bucket %q to %s bucket %q",
		c.source.Name, c.source.Bucket, c.destination.Name, c.destination.Bucket))

	return migration.NewMigration(c.source.Client, c.destination.Client, &c.cfg).Migrate(ctx, completed, l)
}
