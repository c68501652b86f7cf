package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "botstone/internal/command/core"
	_ "botstone/internal/command/custom"
	_ "botstone/internal/command/message"

	"botstone/internal/config"
	"botstone/internal/docs"
	"botstone/internal/richmsg"
	v "botstone/internal/version"
	"botstone/pkg/cmd"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "botstone",
		Short:        "Offline tools for " + v.AppName + " messages",
		Version:      v.Get().Version,
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newColoursCmd(), newCommandsCmd())
	return root
}

func newCommandsCmd() *cobra.Command {
	var prefix string
	c := &cobra.Command{
		Use:   "commands",
		Short: "Print the bot's command reference as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return docs.WriteReference(c.OutOrStdout(), v.AppName, prefix, cmd.DefaultRegistry, config.CategoryWeights)
		},
	}
	c.Flags().StringVarP(&prefix, "prefix", "p", ".", "command prefix shown in usage lines")
	return c
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Validate a message and print the payload Discord would receive",
		Long: `Reads a message in the compact grammar, or plain text, from file or
standard input and prints the resulting payload as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in := c.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return render(in, c.OutOrStdout())
		},
	}
}

func render(in io.Reader, out io.Writer) error {
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	payload, err := richmsg.ParseContent(string(text))
	if err != nil {
		return err
	}
	if richmsg.IsEmpty(payload) {
		return fmt.Errorf("message is empty")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func newColoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "colours",
		Aliases: []string{"colors"},
		Short:   "List the named embed colours",
		Args:    cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			for _, name := range richmsg.ColourNames() {
				value, _ := richmsg.LookupColour(name)
				fmt.Fprintf(c.OutOrStdout(), "%-20s %s\n", name, richmsg.FormatHex(value))
			}
		},
	}
}
