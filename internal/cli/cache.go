package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/pkg/cache"
)

// redisKeyPrefix namespaces keys in a shared Redis instance.
const redisKeyPrefix = appName + ":"

// openCache opens the configured diagram cache, wrapped with hooks. noCache
// forces the null backend.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	opts := cache.Options{
		Backend:  c.Config.Cache.Backend,
		Dir:      c.Config.Cache.Dir,
		RedisURL: c.Config.Cache.RedisURL,
	}
	if noCache {
		opts.Backend = cache.BackendNone
	}

	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if opts.Backend == cache.BackendRedis {
		keyer = cache.NewScopedKeyer(keyer, redisKeyPrefix)
	}
	c.Logger.Debug("Opened cache", "backend", opts.Backend)
	return cache.Instrument(store, "diagram"), keyer, nil
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local diagram cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(c.Config.Cache.Dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.Config.Cache.Dir)
			return nil
		},
	}
}
