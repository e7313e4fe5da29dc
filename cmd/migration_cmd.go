package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/0chain/s3mgrt/controller"
	"github.com/0chain/s3mgrt/ledger"
	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/migration"
	"github.com/0chain/s3mgrt/storage"
	"github.com/0chain/s3mgrt/types"
	"github.com/0chain/s3mgrt/util"
	"github.com/spf13/cobra"
)

var (
	ledgerPath                 string
	bufferSize                 int
	concurrency                int
	continueOnError            bool
	prefix                     string
	newerThanStr, olderThanStr string
)

// migrateCmd copies every object of the source bucket into the destination bucket.
func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVar(&ledgerPath, "ledger", ledger.DefaultFileName, "File where migrated object keys are recorded")
	migrateCmd.Flags().IntVar(&bufferSize, "buffer-size", migration.DefaultBufferSize, "size in bytes of the buffer used to stream each object")
	migrateCmd.Flags().IntVar(&concurrency, "concurrency", 1, "number of objects to copy concurrently")
	migrateCmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep migrating other objects when one of them fails")
	migrateCmd.Flags().StringVar(&prefix, "prefix", "", "migrate only objects whose key starts with this prefix")
	migrateCmd.Flags().StringVar(&newerThanStr, "newer-than", "", "eg; 7d10h --> migrate objects that is newer than 7 days 10 hours")
	migrateCmd.Flags().StringVar(&olderThanStr, "older-than", "", "eg; 7d10h --> migrate objects that is older than 7 days 10 hours")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate objects from the source bucket to the destination bucket",
	Long: `Migrate copies every object of the source bucket into the destination bucket, keeping
	its key, content type and user metadata. Each copied key is appended to the ledger file. When
	the command is run again with the same ledger, keys already in it are skipped, so an interrupted
	migration resumes where it stopped.

	Note: Addition of new object or modification of existing file while migrating is not recommended, as it cannot track such changes.
	`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := loadConfigFile(inConfigDir(cfgFile))
		if err != nil {
			return err
		}

		if bufferSize <= 0 {
			return fmt.Errorf("buffer-size must be positive. Provided value is %v", bufferSize)
		}
		if concurrency <= 0 {
			return fmt.Errorf("concurrency must be positive. Provided value is %v", concurrency)
		}

		newerThan, err := getTimeFromDHString(newerThanStr)
		if err != nil {
			return err
		}

		olderThan, err := getTimeFromDHString(olderThanStr)
		if err != nil {
			return err
		}

		path, err := util.ExpandPath(ledgerPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srcClient, err := storage.NewClient(ctx, appConfig.Source)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		dstClient, err := storage.NewClient(ctx, appConfig.Destination)
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}

		c := controller.NewController(
			controller.EndpointSide{Name: controller.SourceSide, Client: srcClient, Bucket: appConfig.Source.Bucket},
			controller.EndpointSide{Name: controller.DestinationSide, Client: dstClient, Bucket: appConfig.Destination.Bucket},
			path,
			&migration.MigrationConfig{
				BufferSize:      bufferSize,
				Concurrency:     concurrency,
				ContinueOnError: continueOnError,
				ListOptions: types.ListOptions{
					Prefix:    prefix,
					NewerThan: newerThan,
					OlderThan: olderThan,
				},
			},
		)

		summary, err := c.Run(ctx)
		if err != nil {
			zlogger.Logger.Error("Migration failed: ", err)
			return err
		}

		fmt.Printf("Migrated %d objects (%d bytes), skipped %d already migrated objects in %v\n",
			summary.Migrated, summary.Bytes, summary.Skipped, summary.Duration.Round(time.Millisecond))
		return nil
	},
}

//getTimeFromDHString get timestamp before days and hours mentioned in string; eg 7d10h.
// An empty string means no bound and yields nil.
func getTimeFromDHString(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	dhReg := `^(([0-9]*)d)?(([0-9]*)h)?$` //day hour regex; matches strings like: 7d10h, etc.
	re := regexp.MustCompile(dhReg)

	if !re.Match([]byte(s)) {
		return nil, fmt.Errorf("input string doesn't match regex %v", dhReg)
	}

	res := re.FindSubmatch([]byte(s))
	days, _ := strconv.Atoi(string(res[2]))
	hours, _ := strconv.Atoi(string(res[4]))

	duration := time.Hour*24*time.Duration(days) + time.Hour*time.Duration(hours)
	t := time.Now().Add(-duration)

	return &t, nil
}
