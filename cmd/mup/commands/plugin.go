package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage declared plugins and mods",
	}
	cmd.AddCommand(c.newPluginAddCmd())
	cmd.AddCommand(c.newPluginRemoveCmd())
	cmd.AddCommand(c.newPluginUpdateCmd())
	cmd.AddCommand(c.newPluginInstallCmd())
	return cmd
}

func (c *CLI) newPluginAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Declare a plugin, resolve its dependencies and install it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, _ := cmd.Flags().GetString("repository")
			version, _ := cmd.Flags().GetString("version")
			return c.app.Add(cmd.Context(), repository, args[0], version)
		},
	}
	cmd.Flags().StringP("repository", "r", "modrinth", "Repository to resolve from (modrinth, hangar)")
	cmd.Flags().StringP("version", "v", "", "Pin an exact version instead of tracking the latest")
	return cmd
}

func (c *CLI) newPluginRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <project>",
		Short: "Drop a declared plugin and prune files it owned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepJar, _ := cmd.Flags().GetBool("keep-jarfile")
			return c.app.Remove(cmd.Context(), args[0], keepJar)
		},
	}
	cmd.Flags().Bool("keep-jarfile", false, "Keep installed files on disk, only drop the declaration")
	return cmd
}

func (c *CLI) newPluginUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [project]",
		Short: "Float plugins forward to the newest compatible versions",
		Long: `Float plugins forward to the newest compatible versions.

Without an argument every plugin tracking "latest" is updated. Plugins
pinned to an exact version are left untouched either way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := ""
			if len(args) == 1 {
				project = args[0]
			}
			return c.app.Update(cmd.Context(), project)
		},
	}
}

func (c *CLI) newPluginInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Reconcile the directory against the committed lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Install(cmd.Context(), false)
		},
	}
}
