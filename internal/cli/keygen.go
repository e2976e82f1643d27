package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdvault/mdvaultd/internal/configloader"
	"github.com/mdvault/mdvaultd/internal/ui/pretty"
)

func newKeygenCommand(color *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new API key",
		Long: `Generate a random API key suitable for security.api_key.

The key is printed to stdout and not stored anywhere.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			key, err := configloader.GenerateAPIKey()
			if err != nil {
				return err
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(*color, os.Stdout))
			fmt.Fprint(os.Stdout, pretty.KeygenOutput(styles, key))
			return nil
		},
	}

	return cmd
}
