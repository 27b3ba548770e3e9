package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/bnema/launcher-core/internal/fsutil"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{speed . }}`

func newDownloadCmd(state *appState) *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "download <url> <dest>",
		Short: "Download a file through the request queue",
		Long:  "Download a file through the paced request queue. Interrupted transfers are retried from the last byte written; --resume continues a partial file left by an earlier run.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.get(cmd)
			if err != nil {
				return err
			}

			file, offset, err := openDestination(args[1], resume)
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			buffered := bufio.NewWriter(file)
			var dst io.Writer = buffered

			var bar *pb.ProgressBar
			if isTerminal(cmd.ErrOrStderr()) {
				bar = pb.New64(0).SetTemplate(pb.ProgressBarTemplate(progressTemplate))
				bar.Set(pb.Bytes, true)
				bar.Set(pb.SIBytesPrefix, true)
				bar.Set("prefix", filepath.Base(args[1])+": ")
				bar.SetWriter(cmd.ErrOrStderr())
				bar.Start()
				dst = bar.NewProxyWriter(buffered)
			}

			written, err := app.client.DownloadFrom(cmd.Context(), args[0], dst, offset)
			if bar != nil {
				bar.Finish()
			}
			if flushErr := buffered.Flush(); err == nil && flushErr != nil {
				err = fmt.Errorf("flush download destination: %w", flushErr)
			}
			if err != nil {
				return fmt.Errorf("download %s: %w", args[0], err)
			}
			if err := file.Sync(); err != nil {
				return fmt.Errorf("sync download destination: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d bytes to %s\n", written, args[1])
			return err
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Continue a partial file instead of overwriting it")

	return cmd
}

// openDestination opens path for writing and reports how many bytes are
// already present. Without resume the file is truncated.
func openDestination(path string, resume bool) (*os.File, int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, 0, fmt.Errorf("create destination directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if resume {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, fsutil.PublicFileMode)
	if err != nil {
		return nil, 0, fmt.Errorf("open destination: %w", err)
	}
	if !resume {
		return file, 0, nil
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("stat destination: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = file.Close()
		return nil, 0, errors.New("destination is not a regular file")
	}
	return file, info.Size(), nil
}
