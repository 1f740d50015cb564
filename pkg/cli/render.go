package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/ok-face-mixer/pkg/config"
	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/server"
)

const stdoutPath = "-"

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one mixed face to a GIF file without starting the server",
		Example: "  okfacemixer render --left ok --right grin -o ok-grin.gif\n" +
			"  okfacemixer render --left sad --right smile > face.gif",
		Args: cobra.ExactArgs(0),
		RunE: runRender,
	}

	cmd.Flags().String("left", "", "Smile name for the left half")
	cmd.Flags().String("right", "", "Smile name for the right half")
	cmd.Flags().StringP("output", "o", stdoutPath, "Output file (- for stdout)")
	cmd.Flags().String("generator", "", "Generator backend: face or gemini (OKFACE_GENERATOR)")
	cmd.Flags().Int("size", 0, "Image size in pixels (OKFACE_IMAGE_SIZE)")
	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, stringFlags{
		"generator": func(c *config.Config) *string { return &c.Generator },
	})
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, cmd.ErrOrStderr()); err != nil {
		return err
	}

	left, _ := cmd.Flags().GetString("left")
	right, _ := cmd.Flags().GetString("right")
	req, err := domain.ParseMixRequest(
		domain.RawSmile{Value: left, Present: cmd.Flags().Changed("left")},
		domain.RawSmile{Value: right, Present: cmd.Flags().Changed("right")},
	)
	if err != nil {
		server.LogValidationError(cmd.Context(), err)
		return err
	}

	mx, err := newMixer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	payload, err := mx.Mix(cmd.Context(), req)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeOutput(cmd.OutOrStdout(), output, payload.Data); err != nil {
		return err
	}
	if output != stdoutPath {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(payload.Data))
	}
	return nil
}

// writeOutput は path が "-" のとき stdout に、それ以外はファイルに書き込みます。
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
