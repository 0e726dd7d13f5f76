package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/founderfit/internal/selfupdate"
)

// release is where founderfit builds are published.
var release = selfupdate.Release{
	Owner:        "abhisek",
	Repo:         "founderfit",
	Binary:       "founderfit",
	AssetPattern: "{binary}_{version}_{os}_{arch}",
	Checksums:    "checksums.txt",
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update founderfit to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		updater, err := selfupdate.New(release, selfupdate.WithTimeout(2*time.Minute))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := updater.Check(ctx, version)
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			if !res.UpdateAvailable {
				fmt.Printf("founderfit %s is up to date.\n", res.CurrentVersion)
				return nil
			}
			fmt.Printf("founderfit %s is available (running %s).\n%s\n",
				res.LatestVersion, res.CurrentVersion, res.ReleaseURL)
			return nil
		}

		err = updater.Update(ctx, version, func(p selfupdate.Progress) {
			fmt.Println(p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case errors.Is(err, selfupdate.ErrNoAsset):
			return fmt.Errorf("%w\n\nDownload a build manually from https://github.com/%s/%s/releases", err, release.Owner, release.Repo)
		case errors.Is(err, fs.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo founderfit update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
