/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/greenpress/apiserver/config"
	"github.com/greenpress/apiserver/internal/db"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/internal/storage"
	"github.com/greenpress/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// mediaCmd represents the media command.
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Media maintenance helpers",
}

var mediaVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that post thumbnails still exist in object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.LoadConfig()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		st, err := storage.FromConfig(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		media := services.NewMediaService(st)

		posts, err := store.NewPostRepository(dbConn).List(ctx, "")
		if err != nil {
			return err
		}

		var missing, unmanaged int
		for _, post := range posts {
			if post.Thumbnail == "" {
				continue
			}
			key, ok := media.KeyFromURL(post.Thumbnail)
			if !ok {
				unmanaged++
				fmt.Printf("post %d: thumbnail %s is outside managed storage\n", post.ID, post.Thumbnail)
				continue
			}
			exists, err := media.Exists(ctx, key)
			if err != nil {
				return fmt.Errorf("stat %s: %w", key, err)
			}
			if !exists {
				missing++
				fmt.Printf("post %d: missing object %s\n", post.ID, key)
			}
		}

		fmt.Printf("checked %d posts: %d missing, %d unmanaged\n", len(posts), missing, unmanaged)
		if missing > 0 {
			return fmt.Errorf("%d thumbnails missing from storage", missing)
		}
		return nil
	},
}

var mediaMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite thumbnail URLs from one prefix to another",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		if from == "" || to == "" {
			return errors.New("--from and --to are required")
		}

		ctx := cmd.Context()
		cfg := config.LoadConfig()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		n, err := store.NewPostRepository(dbConn).RewriteThumbnailPrefix(ctx, from, to)
		if err != nil {
			return err
		}
		fmt.Printf("rewrote %d thumbnails\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mediaCmd)
	mediaCmd.AddCommand(mediaVerifyCmd)
	mediaCmd.AddCommand(mediaMigrateCmd)

	mediaMigrateCmd.Flags().String("from", "", "URL prefix to replace")
	mediaMigrateCmd.Flags().String("to", "", "URL prefix to write instead")
}
