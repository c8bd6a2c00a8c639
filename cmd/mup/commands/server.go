package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the server installation",
	}
	cmd.AddCommand(c.newServerInitCmd())
	cmd.AddCommand(c.newServerInstallCmd())
	cmd.AddCommand(c.newServerSignCmd())
	return cmd
}

func (c *CLI) newServerInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new server in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, _ := cmd.Flags().GetString("loader")
			minecraft, _ := cmd.Flags().GetString("minecraft-version")
			return c.app.Init(cmd.Context(), loader, minecraft)
		},
	}
	cmd.Flags().StringP("loader", "l", "paper", "Server loader (vanilla, fabric, forge, neoforge, paper)")
	cmd.Flags().StringP("minecraft-version", "m", "", "Minecraft version to install")
	_ = cmd.MarkFlagRequired("minecraft-version")
	return cmd
}

func (c *CLI) newServerInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the server jar and every locked plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Install(cmd.Context(), true)
		},
	}
}

func (c *CLI) newServerSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign",
		Short: "Accept the Minecraft EULA by writing eula.txt",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.Sign()
		},
	}
}
